package factcheck

// Verdict values the service is allowed to emit.
const (
	VerdictReal      = "real"
	VerdictFake      = "fake"
	VerdictUncertain = "uncertain"
)

// SourceMode records which evidence path produced a verdict.
type SourceMode string

const (
	SourceStatic   SourceMode = "static"
	SourceLiveWeb  SourceMode = "live-web"
	SourceGrounded SourceMode = "grounded"
)

// Source is a citation attached to a verdict.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// VerdictCandidate is the model's raw proposed answer. Every field is
// untrusted until sanitized; the interface{} types tolerate whatever shape
// the model actually produced.
type VerdictCandidate struct {
	Verdict     interface{} `json:"verdict"`
	Confidence  interface{} `json:"confidence"`
	Explanation interface{} `json:"explanation"`
	RedFlags    interface{} `json:"redFlags"`
}

// CanonicalVerdict is the sanitized output contract. Verdict is always one
// of real/fake/uncertain, Confidence an integer in [0,100], Explanation
// non-empty and RedFlags non-nil.
type CanonicalVerdict struct {
	Verdict     string     `json:"verdict"`
	Confidence  int        `json:"confidence"`
	Explanation string     `json:"explanation"`
	RedFlags    []string   `json:"redFlags"`
	SourceMode  SourceMode `json:"sourceMode"`
	Sources     []Source   `json:"sources"`
}

// Evidence is the Evidence Gathering Stage's output: the mode that served
// the request, a rendered text block for prompt embedding, and citations.
type Evidence struct {
	Mode    SourceMode
	Text    string
	Sources []Source
}
