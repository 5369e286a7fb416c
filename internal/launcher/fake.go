package launcher

import (
	"context"
	"sync"
)

// Call is one recorded launch.
type Call struct {
	Dir  string
	Argv []string
}

// Recorder is a Launcher that records calls instead of running them.
// ExitCodes are returned in call order; missing entries mean success.
type Recorder struct {
	mu        sync.Mutex
	Calls     []Call
	ExitCodes []int
	Err       error
}

// Launch implements Launcher.
func (r *Recorder) Launch(_ context.Context, dir string, argv []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.Calls)
	r.Calls = append(r.Calls, Call{Dir: dir, Argv: append([]string(nil), argv...)})
	if r.Err != nil {
		return -1, r.Err
	}
	if n < len(r.ExitCodes) {
		return r.ExitCodes[n], nil
	}
	return 0, nil
}
