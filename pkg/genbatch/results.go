package genbatch

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/myunghakLee/synthetic-table-dataset-gen/pkg/htmlclean"
)

// Result is one model response mapped back to its originating prompt.
type Result struct {
	CustomID    string
	PromptIndex int // -1 when the custom ID could not be parsed
	HTML        string
}

// resultLine mirrors one JSONL line of the batch output file.
type resultLine struct {
	CustomID string `json:"custom_id"`
	Response struct {
		StatusCode int `json:"status_code"`
		Body       struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		} `json:"body"`
	} `json:"response"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResults decodes the batch output JSONL, skipping malformed or failed
// lines. Markdown fences around the returned HTML are stripped.
func ParseResults(data []byte) []Result {
	var results []Result
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var res resultLine
		if err := json.Unmarshal([]byte(line), &res); err != nil {
			log.Printf("Skipping malformed result line: %v", err)
			continue
		}
		if res.Error != nil {
			log.Printf("Request %s failed: %s", res.CustomID, res.Error.Message)
			continue
		}
		if res.Response.StatusCode != 0 && res.Response.StatusCode != 200 {
			log.Printf("Request %s returned status %d", res.CustomID, res.Response.StatusCode)
			continue
		}

		for _, choice := range res.Response.Body.Choices {
			content := htmlclean.StripFences(choice.Message.Content)
			if content == "" {
				continue
			}
			results = append(results, Result{
				CustomID:    res.CustomID,
				PromptIndex: promptIndex(res.CustomID),
				HTML:        content,
			})
		}
	}
	return results
}

// promptIndex extracts the prompt index from a "prompt_0007|2" custom ID.
func promptIndex(customID string) int {
	base := customID
	if i := strings.IndexByte(base, '|'); i >= 0 {
		base = base[:i]
	}
	num := base
	if i := strings.LastIndexByte(base, '_'); i >= 0 {
		num = base[i+1:]
	}
	idx, err := strconv.Atoi(num)
	if err != nil {
		return -1
	}
	return idx
}

// SaveResults writes each result as prompt_NNNN.html in dir, continuing from
// the highest existing number so repeated runs append rather than overwrite.
// The originating prompt text is saved alongside as prompt_NNNN.txt when the
// prompt index is known. Returns the number of HTML files written.
func SaveResults(dir string, results []Result, prompts []string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	next := nextIndex(dir)
	saved := 0
	for _, res := range results {
		htmlPath := filepath.Join(dir, fmt.Sprintf("prompt_%04d.html", next))
		for fileExists(htmlPath) {
			next++
			htmlPath = filepath.Join(dir, fmt.Sprintf("prompt_%04d.html", next))
		}

		if err := os.WriteFile(htmlPath, []byte(res.HTML), 0644); err != nil {
			return saved, fmt.Errorf("failed to write %s: %w", htmlPath, err)
		}

		if res.PromptIndex >= 0 && res.PromptIndex < len(prompts) {
			txtPath := filepath.Join(dir, fmt.Sprintf("prompt_%04d.txt", next))
			if err := os.WriteFile(txtPath, []byte(prompts[res.PromptIndex]), 0644); err != nil {
				log.Printf("Failed to save prompt for %s: %v", filepath.Base(htmlPath), err)
			}
		}

		saved++
		next++
	}
	return saved, nil
}

// nextIndex finds the highest prompt_NNNN.html number already in dir.
func nextIndex(dir string) int {
	matches, err := filepath.Glob(filepath.Join(dir, "prompt_*.html"))
	if err != nil {
		return 0
	}

	maxIdx := -1
	for _, m := range matches {
		stem := strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
		parts := strings.Split(stem, "_")
		idx, err := strconv.Atoi(parts[len(parts)-1])
		if err == nil && idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx + 1
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
