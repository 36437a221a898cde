package testingutils

import (
	"context"
	"errors"
	"sync"

	"github.com/markusressel/temp2go/internal/util"
)

type FakeResult struct {
	Output string
	Err    error
}

// FakeRunner answers commands from a fixed table and records every call.
type FakeRunner struct {
	mu      sync.Mutex
	results map[string]FakeResult
	calls   []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		results: map[string]FakeResult{},
	}
}

func (r *FakeRunner) On(command util.SensorCommand, output string, err error) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[command.String()] = FakeResult{Output: output, Err: err}
	return r
}

func (r *FakeRunner) Run(ctx context.Context, command util.SensorCommand) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, command.String())

	result, ok := r.results[command.String()]
	if !ok {
		return "", &util.LaunchError{Executable: command.Executable(), Err: errors.New("executable file not found in $PATH")}
	}
	return result.Output, result.Err
}

func (r *FakeRunner) CallCount(command util.SensorCommand) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, call := range r.calls {
		if call == command.String() {
			count++
		}
	}
	return count
}

func (r *FakeRunner) TotalCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
