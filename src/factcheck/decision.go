package factcheck

import (
	"context"
	"strings"
)

const (
	sentinelSearch = "SEARCH_REQUIRED"
	sentinelStatic = "STATIC_OK"
)

const decisionSystem = `You classify whether a claim needs live web evidence to fact-check, or can be judged from static world knowledge alone.

A claim needs live evidence when it involves:
- recent events or anything after your training cutoff
- current office-holders, leadership or employment
- prices, statistics, rankings or other figures that change over time

Respond with exactly one token and nothing else:
` + sentinelSearch + ` if live web evidence is needed
` + sentinelStatic + ` if static knowledge suffices`

// needsLiveEvidence runs the binary classification prompt. The default bias
// on ambiguous or malformed output is the cheaper static path. Upstream
// errors propagate; classification is mandatory, not best-effort.
func (c *Checker) needsLiveEvidence(ctx context.Context, claim string) (bool, error) {
	completion, err := c.client.Complete(ctx, decisionSystem, "Claim: "+claim, c.opts())
	if err != nil {
		return false, err
	}
	return strings.Contains(completion.Content, sentinelSearch), nil
}
