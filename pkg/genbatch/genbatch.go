// Package genbatch submits table-generation prompts to an OpenAI-compatible
// batch API and collects the raw HTML responses. Prompts are packed into a
// JSONL request file, uploaded, and executed as one batch job; the job is
// polled until it reaches a terminal state and the output file is parsed
// into per-prompt results.
package genbatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// requestLine is one JSONL line in the batch input file.
type requestLine struct {
	CustomID string      `json:"custom_id"`
	Method   string      `json:"method"`
	URL      string      `json:"url"`
	Body     requestBody `json:"body"`
}

// Temperature and top_p are always serialized: an explicit 0 in the config
// is a real sampling choice, not an absent value.
type requestBody struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	TopP        float32       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator drives one batch job end to end.
type Generator struct {
	client *openai.Client
	cfg    Config
}

// NewGenerator builds a generator from the config, reading the API key file.
func NewGenerator(cfg Config) (*Generator, error) {
	key, err := LoadAPIKey(cfg.APIKeyFile)
	if err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Generator{client: openai.NewClientWithConfig(clientCfg), cfg: cfg}, nil
}

// BuildRequests packs prompts into JSONL batch request lines. Each prompt is
// submitted AttemptsPerPrompt times under custom IDs of the form
// "prompt_0007|2" so results can be traced back to their prompt index.
func BuildRequests(prompts []string, cfg Config) ([]byte, error) {
	attempts := cfg.AttemptsPerPrompt
	if attempts < 1 {
		attempts = 1
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for idx, p := range prompts {
		for attempt := 0; attempt < attempts; attempt++ {
			line := requestLine{
				CustomID: fmt.Sprintf("prompt_%04d|%d", idx, attempt),
				Method:   "POST",
				URL:      "/v1/chat/completions",
				Body: requestBody{
					Model:       cfg.Model,
					Messages:    []chatMessage{{Role: "user", Content: p}},
					Temperature: cfg.Temperature,
					TopP:        cfg.TopP,
				},
			}
			if err := enc.Encode(line); err != nil {
				return nil, fmt.Errorf("failed to encode request %s: %w", line.CustomID, err)
			}
		}
	}
	return buf.Bytes(), nil
}

// Run uploads the prompts as a batch job, polls until it finishes, and
// returns the parsed results. The uploaded input file is not deleted on
// failure so a stuck batch can be inspected.
func (g *Generator) Run(ctx context.Context, prompts []string) ([]Result, error) {
	requests, err := BuildRequests(prompts, g.cfg)
	if err != nil {
		return nil, err
	}

	file, err := g.client.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    "batch_requests.jsonl",
		Bytes:   requests,
		Purpose: openai.PurposeBatch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload batch input: %w", err)
	}
	log.Printf("Uploaded batch input file %s (%d prompts)", file.ID, len(prompts))

	batch, err := g.client.CreateBatch(ctx, openai.CreateBatchRequest{
		InputFileID:      file.ID,
		Endpoint:         openai.BatchEndpointChatCompletions,
		CompletionWindow: "24h",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create batch job: %w", err)
	}
	log.Printf("Batch job started: %s", batch.ID)

	outputFileID, err := g.poll(ctx, batch.ID)
	if err != nil {
		return nil, err
	}

	raw, err := g.client.GetFileContent(ctx, outputFileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download batch output: %w", err)
	}
	defer raw.Close()

	data, err := io.ReadAll(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch output: %w", err)
	}

	return ParseResults(data), nil
}

// poll waits for the batch to reach a terminal state, checking every
// PollSeconds. Transient retrieval errors are logged and retried.
func (g *Generator) poll(ctx context.Context, batchID string) (string, error) {
	interval := time.Duration(g.cfg.PollSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := g.client.RetrieveBatch(ctx, batchID)
		if err != nil {
			log.Printf("Batch status check failed (will retry): %v", err)
		} else {
			log.Printf("Batch %s status: %s", batchID, status.Status)
			switch status.Status {
			case "completed":
				if status.OutputFileID == nil || *status.OutputFileID == "" {
					return "", fmt.Errorf("batch %s completed without an output file", batchID)
				}
				return *status.OutputFileID, nil
			case "failed", "cancelled", "expired":
				return "", fmt.Errorf("batch %s ended in state %s", batchID, status.Status)
			}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
