package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/todolist/internal/derive"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/remote"
)

type titleRequest struct {
	Title *string `json:"title"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"todos":  s.store.Len(),
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) listTodos(c *gin.Context) {
	filter, err := model.ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := model.ParseSortOrder(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, derive.Derive(s.store.Snapshot(), filter, order))
}

func (s *Server) getTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	todo, found := s.store.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) createTodo(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	todo, ok := s.store.Add(*req.Title)
	if !ok {
		s.log.Debug("add rejected", "title", *req.Title)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "title cannot be empty"})
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (s *Server) editTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	todo, applied := s.store.Edit(id, *req.Title)
	if !applied {
		if _, found := s.store.Get(id); !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		s.log.Debug("edit rejected", "id", id)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "title cannot be empty"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) toggleTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	todo, applied := s.store.Toggle(id)
	if !applied {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (s *Server) deleteTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !s.store.Remove(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) refresh(c *gin.Context) {
	res, err := s.Refresh(c.Request.Context())
	switch {
	case errors.Is(err, ErrNoSource):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrRefreshInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		fe := remote.AsFetchError(err)
		body := gin.H{"error": fe.Message}
		if fe.Status != 0 {
			body["status"] = fe.Status
		}
		c.JSON(http.StatusBadGateway, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loaded": res.Loaded, "skipped": res.Skipped, "next_id": s.store.NextID()})
}

func pathID(c *gin.Context) (model.TodoID, bool) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return model.TodoID(n), true
}
