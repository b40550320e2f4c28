// Package async provides a small fan-out helper for running independent
// named tasks concurrently and collecting their results.
package async

import (
	"context"
	"sync"
)

// Task is a named unit of work.
type Task struct {
	Name    string
	Execute func() (interface{}, error)
}

// Result carries the outcome of one task, keyed by its name.
type Result struct {
	Name string
	Data interface{}
	Err  error
}

// Pool bounds how many tasks run at once.
type Pool struct {
	limit int
}

func NewPool(limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{limit: limit}
}

// Execute runs all tasks, at most limit at a time, and returns results keyed
// by task name. Tasks scheduled after the context is cancelled report the
// context error instead of running.
func (p *Pool) Execute(ctx context.Context, tasks []Task) map[string]Result {
	sem := make(chan struct{}, p.limit)
	results := make(map[string]Result, len(tasks))

	var mu sync.Mutex
	var wg sync.WaitGroup

	record := func(r Result) {
		mu.Lock()
		results[r.Name] = r
		mu.Unlock()
	}

	for _, task := range tasks {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			record(Result{Name: task.Name, Err: ctx.Err()})
			continue
		}

		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			defer func() { <-sem }()

			data, err := t.Execute()
			record(Result{Name: t.Name, Data: data, Err: err})
		}(task)
	}

	wg.Wait()
	return results
}
