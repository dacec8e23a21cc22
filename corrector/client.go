// Package corrector is a client for a remote text-correction service.
//
// It validates user text, POSTs it to <base>/api/correct, and renders the
// result (best suggestion, grammar correction, per-word breakdown) for a
// display region it owns. The correction itself happens on the server.
package corrector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alfex4936/corrector/internal/model"
	"github.com/Alfex4936/corrector/internal/net"
	"github.com/Alfex4936/corrector/internal/parse"
	"github.com/Alfex4936/corrector/internal/render"
)

const (
	// Path is the correction endpoint, relative to the base URL.
	Path = "/api/correct"

	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 10 * time.Second
)

// Client runs correction checks and drives one Output.
type Client struct {
	tr      net.Transport
	out     Output
	in      Input
	log     *slog.Logger
	url     string
	timeout time.Duration

	render func(*model.Response) *render.Display

	mu     sync.Mutex
	seq    uint64             // generation of the latest SubmitCheck
	cancel context.CancelFunc // cancels the latest in-flight request
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the service base URL; Path is appended.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.url = strings.TrimRight(u, "/") + Path }
}

// WithTimeout bounds each request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the developer-facing diagnostics channel.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithInput binds the text control read by Trigger.
func WithInput(in Input) Option {
	return func(c *Client) { c.in = in }
}

// New creates a Client that sends over tr and shows results on out.
// out may be nil when only Check is used.
func New(tr net.Transport, out Output, opts ...Option) *Client {
	c := &Client{
		tr:      tr,
		out:     out,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		url:     DefaultBaseURL + Path,
		timeout: DefaultTimeout,
		render:  render.Build,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.out == nil {
		c.out = OutputFunc(func(State) {})
	}
	return c
}

// Endpoint is the full URL requests are sent to.
func (c *Client) Endpoint() string { return c.url }

// Result is a successful check.
type Result struct {
	RequestID string
	Response  *model.Response
	Display   *render.Display
	Warnings  []error // *RenderError for sections that were left out
}

// Outcome is what one SubmitCheck did.
type Outcome struct {
	Seq    uint64
	Result *Result // nil on error
	Err    error   // *ValidationError, *TransportError or *RenderError
	Stale  bool    // a newer check started first; the output was left alone
}

// Render maps a response onto its display. It is pure.
func (c *Client) Render(res *model.Response) *render.Display {
	return c.render(res)
}

// Trigger checks the text of the bound Input.
func (c *Client) Trigger(ctx context.Context) Outcome {
	var raw string
	if c.in != nil {
		raw = c.in.Value()
	}
	return c.SubmitCheck(ctx, raw)
}

// SubmitCheck checks rawInput and moves the output region through
// checking → result|error. Errors are reported in the Outcome and on the
// output; none escape as panics.
//
// Each call starts a new generation and cancels the previous request.
// Only the latest generation may update the output, so a slow older
// response never replaces a newer one.
func (c *Client) SubmitCheck(ctx context.Context, rawInput string) Outcome {
	seq, ctx, done := c.begin(ctx)
	defer done()

	text := strings.TrimSpace(rawInput)
	if text == "" {
		err := &ValidationError{Reason: "empty input", Err: ErrEmptyInput}
		stale := !c.publish(State{Seq: seq, Phase: PhaseError, Message: MsgEmptyInput, Err: err})
		return Outcome{Seq: seq, Err: err, Stale: stale}
	}

	if !c.publish(State{Seq: seq, Phase: PhaseChecking}) {
		return Outcome{Seq: seq, Stale: true, Err: &TransportError{Reason: "canceled", Err: context.Canceled}}
	}

	res, err := c.run(ctx, text)
	if err != nil {
		stale := !c.publish(State{Seq: seq, Phase: PhaseError, Message: UserMessage(err), Err: err})
		if !stale {
			c.log.Error("correction check failed", "seq", seq, "err", err)
		}
		return Outcome{Seq: seq, Err: err, Stale: stale}
	}

	stale := !c.publish(State{Seq: seq, Phase: PhaseResult, Display: res.Display})
	if stale {
		c.log.Debug("dropped stale correction result", "seq", seq, "request_id", res.RequestID)
	}
	return Outcome{Seq: seq, Result: res, Stale: stale}
}

// Check runs one check without touching the output region or the
// generation counter. Callers that own their own display (one-shot CLI,
// HTTP handlers) use it directly.
func (c *Client) Check(ctx context.Context, rawInput string) (*Result, error) {
	text := strings.TrimSpace(rawInput)
	if text == "" {
		return nil, &ValidationError{Reason: "empty input", Err: ErrEmptyInput}
	}
	return c.run(ctx, text)
}

func (c *Client) begin(parent context.Context) (uint64, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	c.cancel = cancel
	return c.seq, ctx, cancel
}

// publish shows s if it belongs to the latest generation.
func (c *Client) publish(s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.Seq != c.seq {
		return false
	}
	c.out.Update(s)
	return true
}

// run is validate-free: text is already trimmed and non-empty.
func (c *Client) run(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(model.Request{Text: text})
	if err != nil {
		return nil, &TransportError{Reason: "request", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	id := uuid.NewString()
	log := c.log.With("request_id", id)
	log.Debug("sending correction request", "url", c.url, "chars", len([]rune(text)))

	start := time.Now()
	reply, err := c.tr.PostJSON(ctx, c.url, body, id)
	if err != nil {
		terr := transportFailure(ctx, err)
		log.Warn("correction request failed", "reason", terr.Reason, "err", err, "elapsed", time.Since(start))
		return nil, terr
	}
	log.Debug("correction reply", "status", reply.Status, "bytes", len(reply.Body), "elapsed", time.Since(start))

	if reply.Status < 200 || reply.Status > 299 {
		return nil, &TransportError{Status: reply.Status, Reason: "status"}
	}

	res, issues, err := parse.Decode(reply.Body)
	if err != nil {
		log.Warn("correction reply did not match schema", "err", err, "body", truncate(reply.Body, 512))
		return nil, &TransportError{Status: reply.Status, Reason: "invalid response", Err: err}
	}

	var warnings []error
	for _, is := range issues {
		rerr := &RenderError{Section: is.Section, Index: is.Index, Err: is.Err}
		log.Warn("omitting malformed section", "err", rerr)
		warnings = append(warnings, rerr)
	}

	d, err := c.safeRender(res)
	if err != nil {
		log.Error("render failed", "err", err)
		return nil, err
	}
	return &Result{RequestID: id, Response: res, Display: d, Warnings: warnings}, nil
}

func (c *Client) safeRender(res *model.Response) (d *render.Display, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, &RenderError{Section: "response", Index: -1, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return c.render(res), nil
}

func transportFailure(ctx context.Context, err error) *TransportError {
	var te interface{ Timeout() bool }
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &te) && te.Timeout():
		return &TransportError{Reason: "timeout", Err: fmt.Errorf("%w: %w", ErrTimeout, err)}
	case errors.Is(ctx.Err(), context.Canceled):
		return &TransportError{Reason: "canceled", Err: err}
	}
	return &TransportError{Reason: "request", Err: err}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}
