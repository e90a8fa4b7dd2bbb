package commands

import (
	"fmt"

	"github.com/sandeepkv93/todolist/internal/store"
)

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Toggle func(TargetArgs) (Result, error)
	Edit   func(EditArgs) (Result, error)
	Delete func(TargetArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	Sort   func(SortArgs) (Result, error)
	Retry  func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Toggle(*cmd.Target)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Edit)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Target)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeSort:
		if handlers.Sort == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Sort(*cmd.Sort)
	case TypeRetry:
		if handlers.Retry == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Retry()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) *CommandError {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

// StoreHandlers binds the mutating commands to s. Callers fill in Filter,
// Sort and Retry themselves.
func StoreHandlers(s *store.Store) Handlers {
	return Handlers{
		Add: func(a AddArgs) (Result, error) {
			todo, ok := s.Add(a.Title)
			if !ok {
				return Result{}, Rejected("title cannot be empty")
			}
			return Result{Message: fmt.Sprintf("added #%d", todo.ID)}, nil
		},
		Toggle: func(a TargetArgs) (Result, error) {
			todo, ok := s.Toggle(a.ID)
			if !ok {
				return Result{}, Rejected("no todo #%d", a.ID)
			}
			state := "active"
			if todo.Completed {
				state = "done"
			}
			return Result{Message: fmt.Sprintf("#%d marked %s", todo.ID, state)}, nil
		},
		Edit: func(a EditArgs) (Result, error) {
			todo, ok := s.Edit(a.ID, a.Title)
			if !ok {
				return Result{}, Rejected("cannot edit #%d", a.ID)
			}
			return Result{Message: fmt.Sprintf("#%d renamed", todo.ID)}, nil
		},
		Delete: func(a TargetArgs) (Result, error) {
			if !s.Remove(a.ID) {
				return Result{}, Rejected("no todo #%d", a.ID)
			}
			return Result{Message: fmt.Sprintf("deleted #%d", a.ID)}, nil
		},
	}
}
