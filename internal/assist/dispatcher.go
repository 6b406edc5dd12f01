package assist

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/csheth/chronicle/internal/editor"
	"github.com/csheth/chronicle/internal/llm"
	"github.com/csheth/chronicle/internal/logging"
	"github.com/csheth/chronicle/internal/metrics"
)

// Options configures a Dispatcher.
type Options struct {
	Store    *editor.Store
	Client   llm.Client
	Notifier Notifier
	Logger   logging.Logger
	// Timeout bounds a single generation call. Zero disables it.
	Timeout time.Duration
}

// Dispatcher validates AI requests, runs them one at a time and merges their
// results into the store.
type Dispatcher struct {
	store    *editor.Store
	client   llm.Client
	notifier Notifier
	logger   logging.Logger
	timeout  time.Duration

	counter int64

	mu     sync.Mutex
	active string
}

// New builds a dispatcher.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		store:    opts.Store,
		client:   opts.Client,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		timeout:  opts.Timeout,
	}
	if d.notifier == nil {
		d.notifier = NotifierFunc(func(Notice) {})
	}
	if d.logger == nil {
		d.logger = logging.Nop()
	}
	return d
}

// Job is a claimed request waiting to be run off the event loop.
type Job struct {
	ID         string
	Capability Capability
	StartedAt  time.Time

	timeout time.Duration
	target  editor.Selection
	call    func(ctx context.Context) (Result, error)
}

// Run calls the generator. It never touches the store and is safe to run on
// any goroutine.
func (j *Job) Run(ctx context.Context) Completion {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}
	result, err := j.call(ctx)
	return Completion{
		JobID:      j.ID,
		Capability: j.Capability,
		Result:     result,
		Err:        err,
		Duration:   time.Since(j.StartedAt),
		target:     j.target,
	}
}

// Start validates req and claims the busy flag. On rejection no state
// changes and a single info notice is raised.
func (d *Dispatcher) Start(req Request) (*Job, error) {
	state := d.store.State()
	if state.Busy {
		return nil, d.reject(req, ErrBusy, "An AI request is already running.")
	}

	call, err := d.prepare(req, state)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.store.Dispatch(editor.SetBusy{Busy: true}) {
		return nil, d.reject(req, ErrBusy, "An AI request is already running.")
	}
	job := &Job{
		ID:         d.nextID(req.Capability),
		Capability: req.Capability,
		StartedAt:  time.Now(),
		timeout:    d.timeout,
		target:     state.Selection,
		call:       call,
	}
	d.active = job.ID
	d.logger.Info("assist", "job started", map[string]any{
		"job":        job.ID,
		"capability": string(req.Capability),
		"backend":    d.client.Name(),
	})
	return job, nil
}

// Complete merges a finished job and clears the busy flag. Completions for
// jobs that are not in flight are ignored and reported as false.
func (d *Dispatcher) Complete(c Completion) bool {
	applied, _ := d.complete(c)
	return applied
}

// complete reports whether c belonged to the active job and the failure, if
// any, that was surfaced for it.
func (d *Dispatcher) complete(c Completion) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c.JobID == "" || c.JobID != d.active {
		d.logger.Debug("assist", "stale completion ignored", map[string]any{"job": c.JobID})
		return false, nil
	}
	d.active = ""
	defer d.store.Dispatch(editor.SetBusy{Busy: false})

	details := map[string]any{
		"job":        c.JobID,
		"capability": string(c.Capability),
		"duration":   c.Duration.String(),
	}
	err := c.Err
	if err == nil {
		err = d.merge(c)
	}
	if err != nil {
		// Failures clear earlier results too; nothing from before the call
		// is left showing next to the error.
		d.store.Dispatch(editor.ClearResults{})
		d.notifier.Notify(Notice{Level: NoticeError, Message: failureMessage})
		details["status"] = "failed"
		details["error"] = err
		d.logger.Error("assist", "job finished", details)
		return true, err
	}

	if msg := successMessage(c.Capability); msg != "" {
		d.notifier.Notify(Notice{Level: NoticeInfo, Message: msg})
	}
	details["status"] = "succeeded"
	d.logger.Info("assist", "job finished", details)
	return true, nil
}

// Run starts req, waits for the generator and merges the outcome. The
// returned error is a rejection, the generator failure or a merge failure.
func (d *Dispatcher) Run(ctx context.Context, req Request) error {
	job, err := d.Start(req)
	if err != nil {
		return err
	}
	_, err = d.complete(job.Run(ctx))
	return err
}

// Busy reports whether a job is in flight.
func (d *Dispatcher) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active != ""
}

func (d *Dispatcher) nextID(c Capability) string {
	idx := atomic.AddInt64(&d.counter, 1)
	return fmt.Sprintf("%s-%d", c, idx)
}

func (d *Dispatcher) reject(req Request, err error, message string) error {
	d.notifier.Notify(Notice{Level: NoticeInfo, Message: message})
	d.logger.Debug("assist", "request rejected", map[string]any{
		"capability": string(req.Capability),
		"reason":     err.Error(),
	})
	return err
}

// prepare checks preconditions and snapshots the operand so the job never
// reads the store.
func (d *Dispatcher) prepare(req Request, state editor.State) (func(context.Context) (Result, error), error) {
	client := d.client
	selection := state.Selection
	selected := strings.TrimSpace(metrics.StripMarkup(selection.Text))

	needSelection := func() error {
		if selected == "" {
			return d.reject(req, ErrNoSelection, "Select some text first.")
		}
		return nil
	}

	switch req.Capability {
	case ContinueWriting:
		if state.Empty {
			return nil, d.reject(req, ErrNothingToContinue, "Write something first so there is text to continue.")
		}
		text := metrics.StripMarkup(state.Content)
		return func(ctx context.Context) (Result, error) {
			out, err := client.ContinueWriting(ctx, text)
			return ResultText{Text: out}, err
		}, nil

	case RewriteToLength:
		if err := needSelection(); err != nil {
			return nil, err
		}
		words := req.Words
		if words <= 0 {
			return nil, d.reject(req, fmt.Errorf("%w: word count must be positive", ErrInvalidRequest), "Rewrite length must be a positive number.")
		}
		return func(ctx context.Context) (Result, error) {
			out, err := client.RewriteToLength(ctx, selected, words)
			return ResultText{Text: out}, err
		}, nil

	case ChangeStyle:
		if err := needSelection(); err != nil {
			return nil, err
		}
		style, err := llm.ParseStyle(string(req.Style))
		if err != nil {
			return nil, d.reject(req, fmt.Errorf("%w: %v", ErrInvalidRequest, err), "Choose a style: formal, casual or modern.")
		}
		return func(ctx context.Context) (Result, error) {
			out, err := client.ChangeStyle(ctx, selected, style)
			return ResultText{Text: out}, err
		}, nil

	case Humanize:
		if err := needSelection(); err != nil {
			return nil, err
		}
		return func(ctx context.Context) (Result, error) {
			out, err := client.Humanize(ctx, selected)
			return ResultText{Text: out}, err
		}, nil

	case Translate:
		if err := needSelection(); err != nil {
			return nil, err
		}
		language, err := llm.ParseLanguage(string(req.Language))
		if err != nil {
			return nil, d.reject(req, fmt.Errorf("%w: %v", ErrInvalidRequest, err), "Unsupported language.")
		}
		return func(ctx context.Context) (Result, error) {
			out, err := client.Translate(ctx, selected, language)
			return ResultText{Text: out}, err
		}, nil

	case FetchReferences:
		text := selected
		if text == "" {
			text = strings.TrimSpace(metrics.StripMarkup(state.Content))
		}
		if text == "" {
			return nil, d.reject(req, ErrNoSelection, "There is no text to find references for.")
		}
		return func(ctx context.Context) (Result, error) {
			refs, err := client.FetchReferences(ctx, text)
			return ResultReferences{List: refs}, err
		}, nil

	default:
		return nil, d.reject(req, fmt.Errorf("%w: unknown capability %q", ErrInvalidRequest, req.Capability), "Unknown AI action.")
	}
}

// merge applies a successful result using the capability's strategy.
// Replacements target the selection captured when the job started; if that
// text has disappeared the replace is a silent no-op.
func (d *Dispatcher) merge(c Completion) error {
	switch c.Capability {
	case FetchReferences:
		refs, ok := c.Result.(ResultReferences)
		if !ok {
			return fmt.Errorf("unexpected %T for %s", c.Result, c.Capability)
		}
		d.store.Dispatch(editor.SetReferences{List: refs.List})
		return nil
	}

	text, ok := c.Result.(ResultText)
	if !ok {
		return fmt.Errorf("unexpected %T for %s", c.Result, c.Capability)
	}
	switch c.Capability {
	case ContinueWriting:
		d.store.Dispatch(editor.AppendContent{Fragment: editor.EscapeText(text.Text)})
	case RewriteToLength, ChangeStyle:
		d.store.Dispatch(editor.ReplaceSelection{Text: editor.EscapeText(text.Text), Target: c.target})
	case Humanize, Translate:
		d.store.Dispatch(editor.SetResult{Text: text.Text})
	default:
		return fmt.Errorf("no merge strategy for %s", c.Capability)
	}
	return nil
}
