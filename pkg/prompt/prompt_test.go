package prompt

import (
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateDeterministicPerSeed(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(11)))
	b := Generate(rand.New(rand.NewSource(11)))
	if a != b {
		t.Error("same seed produced different prompts")
	}

	c := Generate(rand.New(rand.NewSource(12)))
	if a == c {
		t.Error("different seeds produced identical prompts")
	}
}

func TestGenerateAlwaysCarriesBaseConstraints(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		p := Generate(r)
		if !strings.Contains(p, "반드시 하나의 표로 구성되어야 한다.") {
			t.Fatalf("prompt %d missing single-table constraint:\n%s", i, p)
		}
		if !strings.HasSuffix(p, "답변은 오직 HTML 코드만 출력하고 설명은 생략해라.") {
			t.Fatalf("prompt %d missing HTML-only closing line:\n%s", i, p)
		}
		if !strings.Contains(p, "스타일 요구사항: ") {
			t.Fatalf("prompt %d missing style requirements:\n%s", i, p)
		}
	}
}

func TestGenerateCoversDomains(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		p := Generate(r)
		for _, d := range domainSettings {
			if strings.Contains(p, "'"+d.Name+"'") {
				seen[d.Name] = true
			}
		}
	}
	// The two heavy domains must show up in a 500-prompt sample.
	for _, name := range []string{"공공기관", "의료/병원"} {
		if !seen[name] {
			t.Errorf("domain %q never appeared", name)
		}
	}
}

func TestWeightedChoiceHonorsWeights(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	counts := make(map[string]int)
	for i := 0; i < 2000; i++ {
		counts[weightedChoice(r, borderStyles, borderWeights)]++
	}
	if counts["실선(solid)"] < counts["이중선(double)"] {
		t.Errorf("weight-70 option drawn %d times, weight-5 option %d",
			counts["실선(solid)"], counts["이중선(double)"])
	}
	if counts["실선(solid)"] == 0 || counts["테두리 없음(border:0)"] == 0 {
		t.Errorf("weighted options missing from sample: %v", counts)
	}
}

func TestSampleConstraintsDistinct(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		picked := sampleConstraints(r, 2)
		if len(picked) != 2 {
			t.Fatalf("got %d constraints, want 2", len(picked))
		}
		if picked[0] == picked[1] {
			t.Fatalf("duplicate constraint drawn: %q", picked[0])
		}
	}

	if got := sampleConstraints(r, 0); got != nil {
		t.Errorf("zero count returned %v", got)
	}
	if got := sampleConstraints(r, 100); len(got) != len(dataConstraints) {
		t.Errorf("oversized count returned %d constraints", len(got))
	}
}

func TestStyleConfigPromptLineBorderModes(t *testing.T) {
	single := StyleConfig{Stripe: true, BorderStyles: []string{"실선(solid)"}, Font: "고딕체 계열"}
	if line := single.promptLine(); !strings.Contains(line, "실선(solid) 스타일을 사용해라") {
		t.Errorf("single border line = %q", line)
	}

	double := StyleConfig{Stripe: true, BorderStyles: []string{"실선(solid)", "점선(dotted)"}, Font: "고딕체 계열"}
	if line := double.promptLine(); !strings.Contains(line, "혼용해라") {
		t.Errorf("double border line = %q", line)
	}

	various := StyleConfig{Stripe: true, Font: "고딕체 계열"}
	if line := various.promptLine(); !strings.Contains(line, "다양한 스타일") {
		t.Errorf("various border line = %q", line)
	}

	plain := StyleConfig{Font: "타자기체"}
	if line := plain.promptLine(); strings.Contains(line, "음영") {
		t.Errorf("non-stripe config mentions striping: %q", line)
	}
}
