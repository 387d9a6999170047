// Package pipeline runs a form submission end to end: validate, transform,
// call the backend and classify the outcome.
package pipeline

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/catalog"
	"github.com/dingolabs/dingo/internal/core/payload"
	"github.com/dingolabs/dingo/internal/metrics"
	"github.com/dingolabs/dingo/internal/observability"
)

// Submitter sends a payload for an operation.
type Submitter interface {
	Submit(ctx context.Context, op core.Operation, payload any) (*api.Response, error)
}

// BusyControl receives the in-flight state of a submission.
type BusyControl interface {
	SetBusy(busy bool)
}

// BusyFunc adapts a function to BusyControl.
type BusyFunc func(busy bool)

// SetBusy calls f.
func (f BusyFunc) SetBusy(busy bool) {
	f(busy)
}

// Pipeline submits forms through a backend client.
type Pipeline struct {
	Client Submitter
	Now    func() time.Time
}

// New creates a pipeline around client.
func New(client Submitter) *Pipeline {
	return &Pipeline{Client: client, Now: time.Now}
}

// Submit validates values against the operation's schema, builds the payload
// and posts it. busy (optional) is set before the request and always cleared
// once it settles. Unknown operations and invalid forms fail without any
// network call.
func (p *Pipeline) Submit(ctx context.Context, op core.Operation, values url.Values, busy BusyControl) (*api.Response, error) {
	if !op.Known() {
		return nil, core.NewError(core.ErrorUnknownOperation, "Unknown operation type", nil)
	}

	schema := catalog.SchemaFor(op)
	if err := catalog.Validate(schema, values); err != nil {
		metrics.RecordSubmission(string(op), string(core.KindOf(err)), 0)
		return nil, err
	}

	body := payload.Build(op, values)

	if busy != nil {
		busy.SetBusy(true)
		defer busy.SetBusy(false)
	}

	now := p.Now
	if now == nil {
		now = time.Now
	}
	started := now()

	if observability.CLILogger != nil {
		observability.CLILogger.Debug("Submitting operation",
			zap.String("operation", string(op)),
			zap.Int("fields", len(body)))
	}

	resp, err := p.Client.Submit(ctx, op, body)
	elapsed := now().Sub(started)
	if err != nil {
		classified := core.AsError(err)
		metrics.RecordSubmission(string(op), string(classified.Kind), elapsed)
		if observability.CLILogger != nil {
			observability.CLILogger.Debug("Submission failed",
				zap.String("operation", string(op)),
				zap.String("kind", string(classified.Kind)),
				zap.Int("status", classified.StatusCode),
				zap.Duration("elapsed", elapsed))
		}
		return nil, classified
	}

	metrics.RecordSubmission(string(op), "success", elapsed)
	return resp, nil
}
