package factcheck

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const fallbackExplanation = "Analysis completed"

// textPolicy strips any markup the model sneaks into display text. Policies
// are safe for concurrent use once built.
var textPolicy = bluemonday.StrictPolicy()

// Sanitize coerces an untrusted candidate into the canonical output
// contract. It is total: any input shape yields a valid verdict.
func Sanitize(candidate VerdictCandidate, mode SourceMode, sources []Source) CanonicalVerdict {
	if sources == nil {
		sources = []Source{}
	}
	return CanonicalVerdict{
		Verdict:     sanitizeVerdict(candidate.Verdict),
		Confidence:  sanitizeConfidence(candidate.Confidence),
		Explanation: sanitizeExplanation(candidate.Explanation),
		RedFlags:    sanitizeRedFlags(candidate.RedFlags),
		SourceMode:  mode,
		Sources:     sources,
	}
}

func sanitizeVerdict(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return VerdictUncertain
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case VerdictReal:
		return VerdictReal
	case VerdictFake:
		return VerdictFake
	case VerdictUncertain:
		return VerdictUncertain
	default:
		return VerdictUncertain
	}
}

func sanitizeConfidence(v interface{}) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 50
		}
		f = parsed
	default:
		return 50
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 50
	}
	if f < 0 {
		f = 0
	}
	if f > 100 {
		f = 100
	}
	return int(math.Round(f))
}

func sanitizeExplanation(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return fallbackExplanation
	}
	s = strings.TrimSpace(textPolicy.Sanitize(s))
	if s == "" {
		return fallbackExplanation
	}
	return s
}

func sanitizeRedFlags(v interface{}) []string {
	flags := []string{}
	items, ok := v.([]interface{})
	if !ok {
		return flags
	}
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(textPolicy.Sanitize(s))
		if s != "" {
			flags = append(flags, s)
		}
	}
	return flags
}
