package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const verdictSystemTemplate = `You are a fact-checking analyst. Today's date is %s; your training knowledge may be stale, so when evidence is supplied you must ground your verdict strictly in it. If the evidence is insufficient or conflicting, the verdict must be "uncertain". Never fabricate facts or sources.

Respond with a JSON object in exactly this shape and nothing else:
{"verdict": "real|fake|uncertain", "confidence": 0-100, "explanation": "...", "redFlags": ["..."]}`

// judge builds the final prompt and parses the model's answer into an
// untrusted candidate. Transport errors propagate unchanged; parse failures
// yield the deterministic uncertain default instead of failing the request.
func (c *Checker) judge(ctx context.Context, claim, evidenceText string, today time.Time) (VerdictCandidate, error) {
	system := fmt.Sprintf(verdictSystemTemplate, today.Format("January 2, 2006"))

	var user strings.Builder
	fmt.Fprintf(&user, "Claim to fact-check:\n%s\n\n", claim)
	if evidenceText != "" {
		fmt.Fprintf(&user, "Web evidence:\n%s\n\nGround your verdict in the evidence above.", evidenceText)
	} else {
		user.WriteString("No web evidence is available. Analyze from general knowledge alone.")
	}

	completion, err := c.client.Complete(ctx, system, user.String(), c.opts())
	if err != nil {
		return VerdictCandidate{}, err
	}

	return parseCandidate(completion.Content), nil
}

func defaultCandidate() VerdictCandidate {
	return VerdictCandidate{
		Verdict:     VerdictUncertain,
		Confidence:  50,
		Explanation: "unable to analyze",
		RedFlags:    []interface{}{},
	}
}

// parseCandidate unwraps optional code fencing and decodes the JSON payload.
// Malformed output becomes the deterministic default candidate.
func parseCandidate(content string) VerdictCandidate {
	payload := stripFences(content)

	var candidate VerdictCandidate
	if err := json.Unmarshal([]byte(payload), &candidate); err != nil {
		// Last resort: salvage the outermost object from surrounding prose.
		start := strings.Index(payload, "{")
		end := strings.LastIndex(payload, "}")
		if start < 0 || end <= start {
			return defaultCandidate()
		}
		if err := json.Unmarshal([]byte(payload[start:end+1]), &candidate); err != nil {
			return defaultCandidate()
		}
	}
	return candidate
}

// stripFences removes a surrounding markdown code fence, including an
// optional language tag after the opening marker.
func stripFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		// A bare language tag occupies the rest of the opening line.
		if firstLine != "" && !strings.ContainsAny(firstLine, "{[") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
