// Package tasks holds deferred post-processing work registered during an
// import. The registry records pending and completed tasks; it never runs
// anything itself. An external scheduler drains Pending and reports back
// through Complete.
//
// Registries are created per import session and passed explicitly to
// whatever consumes them. All lookups over completed tasks return the first
// match in completion order, or none.
package tasks

import (
	"errors"
	"reflect"
	"sync"
)

// Task is one unit of deferred work. Implementations carry their own
// parameters; the registry only stores them.
type Task interface {
	// Kind returns the stable name of the task type, used for lookups
	// and logs.
	Kind() string
}

// Registry is a thread-safe record of pending and completed tasks.
type Registry struct {
	mu        sync.RWMutex
	pending   []Task
	completed []Task
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Enqueue records task as pending work.
func (r *Registry) Enqueue(task Task) error {
	if task == nil {
		return errors.New("tasks: cannot enqueue nil task")
	}
	if task.Kind() == "" {
		return errors.New("tasks: task kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, task)
	return nil
}

// Complete records task as finished and releases the first pending entry of
// the same kind, if one is queued.
func (r *Registry) Complete(task Task) error {
	if task == nil {
		return errors.New("tasks: cannot complete nil task")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.pending {
		if p.Kind() == task.Kind() {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			break
		}
	}
	r.completed = append(r.completed, task)
	return nil
}

// Pending returns the queued tasks in enqueue order. The slice is a copy.
func (r *Registry) Pending() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Task, len(r.pending))
	copy(out, r.pending)
	return out
}

// Completed returns the first completed task with the given kind, in
// completion order.
func (r *Registry) Completed(kind string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, task := range r.completed {
		if task.Kind() == kind {
			return task, true
		}
	}
	return nil, false
}

// Done reports whether a task with the given kind has completed.
func (r *Registry) Done(kind string) bool {
	_, ok := r.Completed(kind)
	return ok
}

// Counts returns the number of pending and completed tasks.
func (r *Registry) Counts() (pending, completed int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending), len(r.completed)
}

// CompletedOf returns the first completed task whose dynamic type is T, in
// completion order. It is the type-identity form of Completed.
func CompletedOf[T Task](r *Registry) (T, bool) {
	want := reflect.TypeFor[T]()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, task := range r.completed {
		if reflect.TypeOf(task) == want {
			return task.(T), true
		}
	}
	var zero T
	return zero, false
}

// DoneOf reports whether a task of type T has completed.
func DoneOf[T Task](r *Registry) bool {
	_, ok := CompletedOf[T](r)
	return ok
}
