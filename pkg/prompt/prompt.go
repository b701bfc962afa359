// Package prompt composes natural-language instructions that ask a
// generative model for one HTML table. Domains, data constraints, merge
// styles and visual styling are drawn by weighted random selection so the
// resulting dataset covers realistic Korean document forms with varied
// structure.
package prompt

import (
	"fmt"
	"math/rand"
	"strings"
)

var intros = []string{
	"HTML 코드를 사용하여 표를 하나 작성해.",
	"웹페이지에 들어갈 HTML Table 하나만 만들어줘.",
	"데이터 파싱 테스트를 위한 HTML 표를 생성해라.",
	"보고서에 첨부할 깔끔한 HTML 표 코드를 줘.",
}

var baseConstraints = []string{
	"개인정보(이름, 전화번호)는 실제와 유사한 한국인 가상 데이터를 사용하며 그 외 주소및 숫자등 역시 실제 데이터처럼 보여야 한다.",
	"반드시 하나의 표로 구성되어야 한다.",
	"Table Margin은 따로 설정하지 말아라.",
}

var dataConstraints = []string{
	"날짜 데이터는 'YYYY.MM.DD' 형식을 반드시 지켜라.",
	"모든 금액 데이터에는 천 단위 콤마(,)를 붙여라.",
	"일부 셀에는 'N/A' 또는 공란을 포함시켜라.",
	"다량의 텍스트가 셀안에 포함된 표를 만들어라.",
	"일부 셀에 공란을 포함시켜라.",
	"데이터에 한글과 영어를 7:3 비율로 섞어서 작성해라.",
	"한자를 일부 사용하라(예: 김현우(金賢佑)).",
	"한글이 메인이되 한자와 영어가 일부 섞이도록 해라.",
	"비어있는 셀(공란)을 많이 만들어라.",
	"맨 왼쪽 위는 비어있는 셀로 만들어라.",
}

var mergeStyles = []string{
	"헤더(Header) 부분에 복잡한 셀 병합을 적용해라.",
	"좌측 첫 번째 열(분류 열)을 세로로 병합해라.",
	"불규칙하게 셀을 병합하여 구조를 복잡하게 만들어라.",
}

var (
	borderStyles  = []string{"실선(solid)", "이중선(double)", "점선(dotted)", "테두리 없음(border:0)"}
	borderWeights = []int{70, 5, 5, 20}
)

var fonts = []string{"궁서체 계열", "고딕체 계열", "타자기체"}

var headerBGChoices = []string{"파스텔톤", "원색에 가까운 진한 색", "회색조 배경"}

// domainSetting is a weighted subject area with its typical document forms.
type domainSetting struct {
	Name   string
	Weight int
	Forms  []string
}

var domainSettings = []domainSetting{
	{"공공기관", 40, []string{"주민등록등본", "지출결의서", "회의록", "근로계약서", "사업자등록증"}},
	{"의료/병원", 35, []string{"환자 진료 기록", "혈액 검사 결과지", "입퇴원 확인서", "처방전"}},
	{"금융/회계", 10, []string{"월간 손익계산서", "카드 사용 내역", "환율 변동표", "대출 상환표"}},
	{"물류/재고", 10, []string{"창고 재고 목록", "일일 배송 리스트", "식자재 발주서", "차량 운행 일지"}},
	{"IT/개발", 5, []string{"서버 에러 로그", "API 응답 명세서", "DB 스키마", "IP 접속 기록"}},
}

// StructureConfig describes the requested table structure.
type StructureConfig struct {
	MergeStyles    []string
	ColumnMismatch bool
}

// StyleConfig describes the requested visual styling.
type StyleConfig struct {
	Stripe       bool
	BorderStyles []string
	ColorMode    string // "", "grayscale" or "header_bg"
	HeaderBG     string
	Font         string
}

func weightedChoice(r *rand.Rand, options []string, weights []int) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	x := r.Intn(total)
	for i, w := range weights {
		x -= w
		if x < 0 {
			return options[i]
		}
	}
	return options[len(options)-1]
}

// pickDomain selects a domain by weight, then one form inside it.
func pickDomain(r *rand.Rand) (string, string) {
	total := 0
	for _, d := range domainSettings {
		total += d.Weight
	}
	x := r.Intn(total)
	for _, d := range domainSettings {
		x -= d.Weight
		if x < 0 {
			return d.Name, d.Forms[r.Intn(len(d.Forms))]
		}
	}
	last := domainSettings[len(domainSettings)-1]
	return last.Name, last.Forms[r.Intn(len(last.Forms))]
}

// sampleConstraints draws up to count distinct data constraints.
func sampleConstraints(r *rand.Rand, count int) []string {
	if count <= 0 {
		return nil
	}
	if count > len(dataConstraints) {
		count = len(dataConstraints)
	}
	perm := r.Perm(len(dataConstraints))
	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = dataConstraints[perm[i]]
	}
	return out
}

// newStructureConfig rolls the structural complexity: 80% of tables get at
// least one merge style, and 30% of those also get mismatched column widths.
func newStructureConfig(r *rand.Rand) StructureConfig {
	var cfg StructureConfig
	if r.Float64() < 0.8 {
		pool := make([]string, len(mergeStyles))
		copy(pool, mergeStyles)
		r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		cfg.MergeStyles = append(cfg.MergeStyles, pool[0])
		pool = pool[1:]
		for len(pool) > 0 && r.Float64() < 0.5 {
			cfg.MergeStyles = append(cfg.MergeStyles, pool[0])
			pool = pool[1:]
		}

		cfg.ColumnMismatch = r.Float64() < 0.3
	}
	return cfg
}

func newStyleConfig(r *rand.Rand) StyleConfig {
	cfg := StyleConfig{Font: fonts[r.Intn(len(fonts))]}

	if r.Float64() < 0.5 {
		cfg.Stripe = true
		switch weightedChoice(r, []string{"single", "double", "various"}, []int{50, 25, 25}) {
		case "single":
			cfg.BorderStyles = []string{weightedChoice(r, borderStyles, borderWeights)}
		case "double":
			cfg.BorderStyles = []string{
				weightedChoice(r, borderStyles, borderWeights),
				weightedChoice(r, borderStyles, borderWeights),
			}
		}
	}

	seed := r.Float64()
	switch {
	case seed < 0.3:
		cfg.ColorMode = "grayscale"
	case seed < 0.35:
		cfg.ColorMode = "header_bg"
		cfg.HeaderBG = headerBGChoices[r.Intn(len(headerBGChoices))]
	}
	return cfg
}

func (c StructureConfig) promptLines() []string {
	parts := append([]string{}, c.MergeStyles...)
	if c.ColumnMismatch {
		parts = append(parts,
			"단, HTML상으로는 표의 전체 너비는 맞지만 내부 셀들의 열 너비가 서로 맞지 않는 '열 불일치' 스타일로 만들어라.")
	}
	return parts
}

func (c StyleConfig) promptLine() string {
	var req []string

	if c.Stripe {
		req = append(req, "표에 음영(스트라이프) 효과를 넣어라.")
		switch len(c.BorderStyles) {
		case 1:
			req = append(req, fmt.Sprintf("테두리는 %s 스타일을 사용해라.", c.BorderStyles[0]))
		case 2:
			req = append(req, fmt.Sprintf("테두리는 %s 및 %s 스타일을 혼용해라.", c.BorderStyles[0], c.BorderStyles[1]))
		default:
			req = append(req, "테두리는 다양한 스타일을 사용해라.")
		}
	}

	switch c.ColorMode {
	case "grayscale":
		req = append(req, "표는 흑백(Grayscale)으로만 스타일링해라.")
	case "header_bg":
		if c.HeaderBG != "" {
			req = append(req, fmt.Sprintf("헤더 배경색은 %s을 사용해라.", c.HeaderBG))
		}
	}

	req = append(req, fmt.Sprintf("글꼴은 %s 느낌을 줘라.", c.Font))
	return strings.Join(req, ", ")
}

// Generate composes one complete table-generation prompt from the given
// random source.
func Generate(r *rand.Rand) string {
	var parts []string

	parts = append(parts, intros[r.Intn(len(intros))])
	parts = append(parts, baseConstraints...)

	if r.Float64() < 0.7 {
		domain, form := pickDomain(r)
		parts = append(parts, fmt.Sprintf("주제는 '%s' 분야의 '%s' 양식이어야 한다.", domain, form))
	}

	parts = append(parts, sampleConstraints(r, r.Intn(3))...)
	parts = append(parts, newStructureConfig(r).promptLines()...)
	parts = append(parts, "스타일 요구사항: "+newStyleConfig(r).promptLine())
	parts = append(parts, "답변은 오직 HTML 코드만 출력하고 설명은 생략해라.")

	return strings.Join(parts, "\n")
}
