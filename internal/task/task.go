// Package task holds the task record as the list screen consumes it and the
// contract every remote task source implements.
package task

import (
	"context"
	"fmt"
)

// Task is one to-do item reduced to what the list renders.
type Task struct {
	ID             string
	Title          string
	DueDateDisplay string
	Completed      bool
}

// Source is a remote collaborator that can list every task.
// Implementations return tasks in their own order; callers never resort.
type Source interface {
	ListTasks(ctx context.Context) ([]Task, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]Task, error)

func (f SourceFunc) ListTasks(ctx context.Context) ([]Task, error) {
	return f(ctx)
}

// Result is the outcome of one fetch: either tasks or the reason it failed.
type Result struct {
	Tasks []Task
	Err   error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Fetch performs exactly one ListTasks call. A panicking source is reported
// as a failed result so callers always get to release their loading state.
func Fetch(ctx context.Context, src Source) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: fmt.Errorf("task source panicked: %v", p)}
		}
	}()
	tasks, err := src.ListTasks(ctx)
	if err != nil {
		return Result{Err: err}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return Result{Tasks: tasks}
}
