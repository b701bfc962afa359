// tablegen generates synthetic Korean table HTML through an
// OpenAI-compatible batch API.
//
// The tool samples randomized prompts (domain, structure, styling and data
// constraints), submits them as one batch job, polls until the job finishes,
// and saves each returned table as prompt_NNNN.html in the output directory
// with the originating prompt text alongside. All sampled prompts are also
// written to generated_prompts.txt for inspection.
//
// Usage:
//
//	tablegen -config config.yml [-output-dir dir] [-num-prompts n] [-seed n]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/genbatch"
	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/prompt"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to YAML config file")
	outputDir := flag.String("output-dir", "", "Override the config output directory")
	numPrompts := flag.Int("num-prompts", 0, "Override the number of prompts to generate")
	seed := flag.Int64("seed", 0, "Random seed for prompt sampling (0 = time-based)")
	flag.Parse()

	cfg, err := genbatch.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *numPrompts > 0 {
		cfg.NumPrompts = *numPrompts
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	prompts := make([]string, cfg.NumPrompts)
	for i := range prompts {
		prompts[i] = prompt.Generate(rng)
	}
	fmt.Printf("Generated %d prompts (seed %d).\n", len(prompts), rngSeed)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	promptLog := filepath.Join(cfg.OutputDir, "generated_prompts.txt")
	if err := os.WriteFile(promptLog, []byte(strings.Join(prompts, "\n\n---\n\n")), 0644); err != nil {
		log.Fatalf("Failed to save prompts: %v", err)
	}

	gen, err := genbatch.NewGenerator(cfg)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	results, err := gen.Run(context.Background(), prompts)
	if err != nil {
		log.Fatalf("Batch generation failed: %v", err)
	}
	fmt.Printf("Batch finished with %d results.\n", len(results))

	saved, err := genbatch.SaveResults(cfg.OutputDir, results, prompts)
	if err != nil {
		log.Fatalf("Failed to save results: %v", err)
	}
	fmt.Printf("Saved %d HTML files to %s\n", saved, cfg.OutputDir)
}
