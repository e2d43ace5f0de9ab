// Package queue wraps asynq: the client side enqueues background tasks
// and the registry maps task types to their workers.
package queue

import "github.com/hibiken/asynq"

// HandlersRegistry collects the worker process's task handlers before
// the asynq server starts.
type HandlersRegistry struct {
	mux *asynq.ServeMux
}

func NewHandlersRegistry() *HandlersRegistry {
	return &HandlersRegistry{mux: asynq.NewServeMux()}
}

func (r *HandlersRegistry) Register(taskType string, handler asynq.Handler) {
	r.mux.Handle(taskType, handler)
}

func (r *HandlersRegistry) Mux() *asynq.ServeMux {
	return r.mux
}
