package genbatch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildRequests(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "test-model"
	cfg.AttemptsPerPrompt = 2

	data, err := BuildRequests([]string{"첫 번째", "두 번째"}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d request lines, want 4", len(lines))
	}

	var first requestLine
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 0 is not valid JSON: %v", err)
	}
	if first.CustomID != "prompt_0000|0" {
		t.Errorf("CustomID = %q", first.CustomID)
	}
	if first.Method != "POST" || first.URL != "/v1/chat/completions" {
		t.Errorf("method/url = %s %s", first.Method, first.URL)
	}
	if first.Body.Model != "test-model" {
		t.Errorf("model = %q", first.Body.Model)
	}
	if len(first.Body.Messages) != 1 || first.Body.Messages[0].Content != "첫 번째" {
		t.Errorf("messages = %+v", first.Body.Messages)
	}

	var last requestLine
	if err := json.Unmarshal([]byte(lines[3]), &last); err != nil {
		t.Fatal(err)
	}
	if last.CustomID != "prompt_0001|1" {
		t.Errorf("last CustomID = %q", last.CustomID)
	}
}

func TestBuildRequestsDefaultsAttempts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AttemptsPerPrompt = 0

	data, err := BuildRequests([]string{"p"}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(string(data)), "\n")); n != 1 {
		t.Errorf("got %d lines, want 1", n)
	}
}

func TestBuildRequestsKeepsZeroSampling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Temperature = 0
	cfg.TopP = 0

	data, err := BuildRequests([]string{"p"}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	line := strings.TrimSpace(string(data))
	for _, want := range []string{`"temperature":0`, `"top_p":0`} {
		if !strings.Contains(line, want) {
			t.Errorf("request body missing %s:\n%s", want, line)
		}
	}
}

func TestParseResults(t *testing.T) {
	input := strings.Join([]string{
		`{"custom_id":"prompt_0000|0","response":{"status_code":200,"body":{"choices":[{"message":{"content":"` +
			"```html\\n<table></table>\\n```" + `"}}]}}}`,
		`not json at all`,
		`{"custom_id":"prompt_0001|0","error":{"message":"rate limited"}}`,
		`{"custom_id":"prompt_0002|0","response":{"status_code":500,"body":{}}}`,
		`{"custom_id":"prompt_0003|0","response":{"status_code":200,"body":{"choices":[{"message":{"content":"<table><tr></tr></table>"}}]}}}`,
	}, "\n")

	results := ParseResults([]byte(input))
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}

	if results[0].PromptIndex != 0 || results[0].HTML != "<table></table>" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].PromptIndex != 3 {
		t.Errorf("results[1].PromptIndex = %d, want 3", results[1].PromptIndex)
	}
}

func TestPromptIndex(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"prompt_0007|2", 7},
		{"prompt_0123|0", 123},
		{"prompt_0000", 0},
		{"garbage", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := promptIndex(tt.id); got != tt.want {
			t.Errorf("promptIndex(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestSaveResultsNumbering(t *testing.T) {
	dir := t.TempDir()

	// Pre-existing output from an earlier run.
	if err := os.WriteFile(filepath.Join(dir, "prompt_0004.html"), []byte("<table></table>"), 0644); err != nil {
		t.Fatal(err)
	}

	prompts := []string{"프롬프트 A", "프롬프트 B"}
	results := []Result{
		{CustomID: "prompt_0000|0", PromptIndex: 0, HTML: "<table>1</table>"},
		{CustomID: "prompt_0001|0", PromptIndex: 1, HTML: "<table>2</table>"},
	}

	saved, err := SaveResults(dir, results, prompts)
	if err != nil {
		t.Fatal(err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}

	// Numbering continues past the existing file.
	for i, want := range map[string]string{
		"prompt_0005.html": "<table>1</table>",
		"prompt_0006.html": "<table>2</table>",
	} {
		data, err := os.ReadFile(filepath.Join(dir, i))
		if err != nil {
			t.Fatalf("missing %s: %v", i, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", i, data, want)
		}
	}

	// Prompt text saved alongside under the same number.
	txt, err := os.ReadFile(filepath.Join(dir, "prompt_0005.txt"))
	if err != nil {
		t.Fatalf("missing prompt text: %v", err)
	}
	if string(txt) != "프롬프트 A" {
		t.Errorf("prompt text = %q", txt)
	}
}

func TestSaveResultsUnknownPromptIndex(t *testing.T) {
	dir := t.TempDir()
	results := []Result{{CustomID: "odd", PromptIndex: -1, HTML: "<table></table>"}}

	saved, err := SaveResults(dir, results, nil)
	if err != nil {
		t.Fatal(err)
	}
	if saved != 1 {
		t.Errorf("saved = %d", saved)
	}
	if _, err := os.Stat(filepath.Join(dir, "prompt_0000.html")); err != nil {
		t.Errorf("html not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "prompt_0000.txt")); err == nil {
		t.Error("prompt text written despite unknown index")
	}
}

func TestLoadAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.txt")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF sk-test-123 \n"), 0644); err != nil {
		t.Fatal(err)
	}
	key, err := LoadAPIKey(path)
	if err != nil {
		t.Fatal(err)
	}
	if key != "sk-test-123" {
		t.Errorf("key = %q", key)
	}
}

func TestLoadAPIKeyEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.txt")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAPIKey(path); err == nil {
		t.Fatal("expected error for empty key file")
	}
}

func TestLoadConfigOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := "model: custom-model\nnum_prompts: 7\nbase_url: http://localhost:8000/v1\n"
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "custom-model" || cfg.NumPrompts != 7 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.BaseURL != "http://localhost:8000/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	// Untouched fields keep their defaults.
	if cfg.OutputDir != "GeneratedHTMLs" || cfg.PollSeconds != 30 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}
