// Package steps gives units of test logic a named, reportable boundary.
//
// A step runs its action synchronously on the caller's goroutine and does not change the
// outcome: a successful action's result is returned as is, and a failed action's error is
// returned wrapped in a *StepError that carries the step's path. Steps can be nested; the
// names of the enclosing steps make up the path. There is no retry and no timeout.
package steps

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrAborted is recorded as the outcome of a step whose action did not return normally because
// the goroutine was exiting (as with testing.T.FailNow) or because a pass-through panic was
// raised.
var ErrAborted = errors.New("step was aborted")

// Config contains the options for NewRecorder.
type Config struct {
	// Listener receives step events. If nil, events are discarded.
	Listener Listener

	// PassThrough decides whether a recovered panic value is re-raised unchanged after the step
	// is recorded as failed. Values it rejects, and all values if it is nil, are converted into
	// a *PanicError and returned like any other failure.
	PassThrough func(recovered interface{}) bool
}

// Recorder tracks the steps of one test. It is not meant to be shared between tests.
type Recorder struct {
	listener    Listener
	passThrough func(interface{}) bool
	open        []*openStep
	lock        sync.Mutex
}

type openStep struct {
	path        []string
	start       time.Time
	attachments []Attachment
}

func NewRecorder(config Config) *Recorder {
	listener := config.Listener
	if listener == nil {
		listener = nullListener{}
	}
	return &Recorder{listener: listener, passThrough: config.PassThrough}
}

// Run executes an action that produces no value as a named step.
func (r *Recorder) Run(name string, action func() error) error {
	_, err := Do(r, name, func() (struct{}, error) {
		return struct{}{}, action()
	})
	return err
}

// Do executes an action as a named step and returns its result. If the action fails, the
// result it returned is passed through along with the wrapped error.
func Do[T any](r *Recorder, name string, action func() (T, error)) (result T, err error) {
	step := r.begin(name)
	completed := false
	defer func() {
		if completed {
			return
		}
		recovered := recover()
		if recovered == nil {
			r.end(step, ErrAborted)
			return
		}
		if r.passThrough != nil && r.passThrough(recovered) {
			r.end(step, ErrAborted)
			panic(recovered)
		}
		var zero T
		result = zero
		err = r.fail(step, &PanicError{Value: recovered, Stack: string(debug.Stack())})
	}()

	result, err = action()
	completed = true
	if err != nil {
		return result, r.fail(step, err)
	}
	r.end(step, nil)
	return result, nil
}

// Attach adds an attachment to the innermost step that is currently running. It returns false
// if no step is running.
func (r *Recorder) Attach(name, content string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if len(r.open) == 0 {
		return false
	}
	top := r.open[len(r.open)-1]
	top.attachments = append(top.attachments, Attachment{Name: name, Content: content})
	return true
}

// Path returns the path of the innermost running step, or nil.
func (r *Recorder) Path() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	if len(r.open) == 0 {
		return nil
	}
	return append([]string(nil), r.open[len(r.open)-1].path...)
}

func (r *Recorder) begin(name string) *openStep {
	r.lock.Lock()
	var path []string
	if len(r.open) > 0 {
		path = append(path, r.open[len(r.open)-1].path...)
	}
	s := &openStep{path: append(path, name), start: time.Now()}
	r.open = append(r.open, s)
	r.lock.Unlock()

	r.listener.StepStarted(append([]string(nil), s.path...))
	return s
}

func (r *Recorder) end(s *openStep, err error) {
	r.lock.Lock()
	for i := len(r.open) - 1; i >= 0; i-- {
		if r.open[i] == s {
			r.open = append(r.open[:i], r.open[i+1:]...)
			break
		}
	}
	record := StepRecord{
		Path:        s.path,
		Start:       s.start,
		Duration:    time.Since(s.start),
		Attachments: s.attachments,
		Err:         err,
	}
	r.lock.Unlock()

	r.listener.StepFinished(record)
}

// fail wraps err with the step's path, unless it already came from a nested step of this one,
// and records the step as failed.
func (r *Recorder) fail(s *openStep, err error) error {
	var se *StepError
	if !errors.As(err, &se) || !hasPrefix(se.Path, s.path) {
		err = &StepError{Path: append([]string(nil), s.path...), Err: err}
	}
	r.end(s, err)
	return err
}

func hasPrefix(path, prefix []string) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i, p := range prefix {
		if path[i] != p {
			return false
		}
	}
	return true
}

type recorderContextKey struct{}

// WithRecorder returns a context that carries the recorder, so that code which only sees the
// context, such as an HTTP filter, can add attachments to the current step.
func WithRecorder(ctx context.Context, r *Recorder) context.Context {
	return context.WithValue(ctx, recorderContextKey{}, r)
}

// FromContext returns the recorder carried by the context, or nil.
func FromContext(ctx context.Context) *Recorder {
	r, _ := ctx.Value(recorderContextKey{}).(*Recorder)
	return r
}
