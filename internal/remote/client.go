package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
)

const (
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultTimeout = 12 * time.Second
	todosPath      = "/todos"
)

// Source yields the remote listing used to seed the store. Every failure
// is returned as a *FetchError.
type Source interface {
	FetchTodos(ctx context.Context) ([]model.RemoteTodo, error)
}

// FetchError is the failure side of a fetch. Status is zero when no HTTP
// response was received.
type FetchError struct {
	Message string
	Status  int
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// AsFetchError converts any error into a *FetchError so callers can
// always read a message and an optional status.
func AsFetchError(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Message: err.Error()}
}

type Client struct {
	baseURL string
	http    *http.Client
	metrics *Metrics
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// FetchTodos issues one GET against {base}/todos. It does not retry.
func (c *Client) FetchTodos(ctx context.Context) ([]model.RemoteTodo, error) {
	start := time.Now()
	todos, err := c.fetch(ctx)
	elapsed := time.Since(start)

	if err != nil {
		fe := AsFetchError(err)
		c.metrics.observe(outcomeFailure, elapsed)
		c.log.Warn("remote fetch failed", "url", c.baseURL+todosPath, "error", fe.Message, "status", fe.Status, "elapsed", elapsed)
		return nil, fe
	}
	c.metrics.observe(outcomeSuccess, elapsed)
	c.metrics.setLastCount(len(todos))
	c.log.Info("remote fetch complete", "url", c.baseURL+todosPath, "count", len(todos), "elapsed", elapsed)
	return todos, nil
}

func (c *Client) fetch(ctx context.Context) (todos []model.RemoteTodo, err error) {
	defer func() {
		if r := recover(); r != nil {
			todos = nil
			err = &FetchError{Message: fmt.Sprintf("remote: %v", r)}
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+todosPath, nil)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Message: networkMessage(err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &FetchError{Message: fmt.Sprintf("HTTP %d", res.StatusCode), Status: res.StatusCode}
	}

	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	var out []model.RemoteTodo
	if err := dec.Decode(&out); err != nil {
		return nil, &FetchError{Message: fmt.Sprintf("decode todos: %v", err), Status: res.StatusCode}
	}
	return out, nil
}

func networkMessage(err error) string {
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	var ue interface{ Timeout() bool }
	if errors.As(err, &ue) && ue.Timeout() {
		return "request timed out"
	}
	return "Network error: " + err.Error()
}
