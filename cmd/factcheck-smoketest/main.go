package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	aicore "github.com/verilens/verilens/src/ai/core"
	_ "github.com/verilens/verilens/src/ai/providers"
	"github.com/verilens/verilens/src/factcheck"
	"github.com/verilens/verilens/src/search"
)

var (
	modelFlag   = flag.String("model", "", "Override model name")
	timeoutFlag = flag.Duration("timeout", 90*time.Second, "Pipeline timeout")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	claim := flag.Arg(0)
	if claim == "" {
		log.Fatal("usage: factcheck-smoketest [-model m] \"claim text\"")
	}

	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:      "openrouter",
		Model:         *modelFlag,
		OpenRouterKey: os.Getenv("OPENROUTER_API_KEY"),
	})
	if err != nil {
		log.Fatalf("ai client: %v", err)
	}

	providers := []search.Provider{
		search.NewSerpAPI(os.Getenv("SERPAPI_KEY")),
		search.NewModel(client),
	}
	checker := factcheck.NewChecker(client, providers).WithModel(*modelFlag)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	verdict, err := checker.Check(ctx, claim)
	if err != nil {
		log.Fatalf("check failed: %v", err)
	}

	out, _ := json.MarshalIndent(verdict, "", "  ")
	os.Stdout.Write(append(out, '\n'))
}
