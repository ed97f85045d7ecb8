package webserver

import (
	"github.com/gin-gonic/gin"

	"github.com/verilens/verilens/src/api/config"
	"github.com/verilens/verilens/src/cache"
	"github.com/verilens/verilens/src/factcheck"
)

// Deps carries the wired collaborators for the HTTP surface. Cache and
// history may be nil; the routes degrade to pipeline-only behavior.
type Deps struct {
	Checker *factcheck.Checker
	Cache   *cache.Manager
	History *cache.HistoryStore
	Model   string
}

func New(cfg config.Config, deps Deps) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(500, gin.H{"error": "Failed to analyze content"})
	}))
	attachRoutes(g, cfg, deps)
	return g
}
