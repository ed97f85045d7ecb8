package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	aicore "github.com/verilens/verilens/src/ai/core"
	_ "github.com/verilens/verilens/src/ai/providers"
	"github.com/verilens/verilens/src/api/config"
	"github.com/verilens/verilens/src/api/webserver"
	"github.com/verilens/verilens/src/cache"
	"github.com/verilens/verilens/src/data"
	"github.com/verilens/verilens/src/factcheck"
	"github.com/verilens/verilens/src/search"
)

func main() {
	// Optional MySQL: enables DB-backed settings and verdict history.
	var db *gorm.DB
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		db = data.MustMySQL(dsn)
	}

	cfg := config.Load(db)

	if cfg.OpenRouterKey == "" {
		log.Fatal("OPENROUTER_API_KEY is required")
	}

	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:      "openrouter",
		Model:         cfg.AIModel,
		OpenRouterKey: cfg.OpenRouterKey,
	})
	if err != nil {
		log.Fatalf("ai client: %v", err)
	}

	// Primary keyed search first, model-simulated search as the degraded
	// fallback. The gatherer walks these in order.
	providers := []search.Provider{
		search.NewSerpAPI(cfg.SerpAPIKey),
		search.NewModel(client),
	}

	checker := factcheck.NewChecker(client, providers).WithModel(cfg.AIModel)

	deps := webserver.Deps{
		Checker: checker,
		Model:   cfg.AIModel,
	}

	if cfg.RedisURL != "" {
		deps.Cache = cache.NewManager(data.MustRedis(cfg.RedisURL), cfg.CacheTTL)
	}
	if db != nil {
		history := cache.NewHistoryStore(db)
		if err := history.Migrate(); err != nil {
			log.Printf("history migration failed: %v", err)
		} else {
			deps.History = history
		}
	}

	router := webserver.New(cfg, deps)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
