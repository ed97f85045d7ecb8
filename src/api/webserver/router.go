package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/verilens/verilens/src/api/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, deps Deps) {
	// The endpoint is called from arbitrary front-ends; CORS stays permissive.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "apikey"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	analyzeH := NewAnalyze(deps)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/analyze", analyzeH.Analyze)

		if deps.History != nil && cfg.JWTSecret != "" {
			historyH := NewHistory(deps.History)
			secured := v1.Group("")
			secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
			secured.GET("/history", historyH.List)
		}
	}
}
