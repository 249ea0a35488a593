package testutils

import "sync"

// NotifyRecorder captures toast notifications so tests can assert on them.
type NotifyRecorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *NotifyRecorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.successes = append(r.successes, message)
}

func (r *NotifyRecorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, message)
}

func (r *NotifyRecorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.successes))
	copy(out, r.successes)

	return out
}

func (r *NotifyRecorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.errors))
	copy(out, r.errors)

	return out
}

func (r *NotifyRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.successes = nil
	r.errors = nil
}
