package factcheck

import (
	"context"
	"time"

	"github.com/verilens/verilens/src/ai/core"
	"github.com/verilens/verilens/src/search"
)

// Checker runs the verdict pipeline: decide whether live evidence is needed,
// gather it, ask the model for a verdict and sanitize the answer. A Checker
// holds no per-request state and is safe for concurrent use.
type Checker struct {
	client    core.Client
	providers []search.Provider
	model     string
	now       func() time.Time
}

// NewChecker wires the pipeline. Providers are consulted in order; pass them
// primary first.
func NewChecker(client core.Client, providers []search.Provider) *Checker {
	return &Checker{
		client:    client,
		providers: providers,
		now:       time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// WithModel overrides the model for all pipeline calls.
func (c *Checker) WithModel(model string) *Checker {
	c.model = model
	return c
}

func (c *Checker) opts() core.Options {
	return core.Options{Model: c.model}
}

// Check runs one claim through the full pipeline. The claim must already be
// validated non-blank by the caller. Classification and verdict errors
// propagate; evidence and parse failures degrade instead.
func (c *Checker) Check(ctx context.Context, claim string) (*CanonicalVerdict, error) {
	needsLive, err := c.needsLiveEvidence(ctx, claim)
	if err != nil {
		return nil, err
	}

	evidence := c.gatherEvidence(ctx, claim, needsLive)

	candidate, err := c.judge(ctx, claim, evidence.Text, c.now())
	if err != nil {
		return nil, err
	}

	verdict := Sanitize(candidate, evidence.Mode, evidence.Sources)
	return &verdict, nil
}
