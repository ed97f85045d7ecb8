package webserver

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/verilens/verilens/src/ai/core"
	"github.com/verilens/verilens/src/cache"
	"github.com/verilens/verilens/src/factcheck"
)

const maxClaimBytes = 10000

// Analyze handles claim fact-check requests.
type Analyze struct {
	checker *factcheck.Checker
	cache   *cache.Manager
	history *cache.HistoryStore
	model   string
}

func NewAnalyze(deps Deps) Analyze {
	return Analyze{
		checker: deps.Checker,
		cache:   deps.Cache,
		history: deps.History,
		model:   deps.Model,
	}
}

func (a Analyze) Analyze(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide text to analyze"})
		return
	}

	claim := strings.TrimSpace(req.Text)
	if claim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide text to analyze"})
		return
	}
	if !utf8.ValidString(claim) || len(claim) > maxClaimBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide text to analyze"})
		return
	}

	if cached := a.cache.Get(c.Request.Context(), claim); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	verdict, err := a.checker.Check(c.Request.Context(), claim)
	if err != nil {
		status, message := mapPipelineError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	if err := a.cache.Put(c.Request.Context(), claim, verdict); err != nil {
		log.Printf("verdict cache write failed: %v", err)
	}
	if a.history != nil {
		if _, err := a.history.Save(claim, verdict, a.model); err != nil {
			log.Printf("verdict history write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, verdict)
}

// mapPipelineError turns a classified pipeline failure into the HTTP error
// contract. The classified message passes through verbatim; anything
// unclassified gets the generic fallback.
func mapPipelineError(err error) (int, string) {
	var ce *core.Error
	if errors.As(err, &ce) {
		return http.StatusInternalServerError, ce.Message
	}
	return http.StatusInternalServerError, "Failed to analyze content"
}
