package scoring

import (
	"math"
	"strings"
	"unicode"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Fixed deductions for ATS-hostile formatting
const (
	deductTables       = 2.0
	deductTextBoxes    = 2.0
	deductHeaderFooter = 1.5
	deductFonts        = 1.0
)

// neutralFormattingScore is awarded when no document metadata was extracted
const neutralFormattingScore = MaxATSFormatting / 2

var standardFonts = map[string]bool{
	"arial": true, "calibri": true, "cambria": true, "georgia": true, "garamond": true,
	"helvetica": true, "helvetica neue": true, "times new roman": true, "times": true,
	"verdana": true, "tahoma": true, "trebuchet ms": true, "book antiqua": true,
	"palatino": true, "palatino linotype": true, "segoe ui": true, "roboto": true,
	"open sans": true, "lato": true, "liberation serif": true, "liberation sans": true,
	"source sans pro": true, "noto sans": true, "aptos": true,
}

// ATSFormatting deducts fixed points for tables, text boxes, content in headers or
// footers and non-standard fonts, floored at zero.
func (s *Scorer) ATSFormatting(meta *types.Metadata) types.ParameterResult {
	if meta == nil {
		return types.NewParameterResult(ParamATSFormatting, neutralFormattingScore, MaxATSFormatting, map[string]any{
			"reason": ReasonNoMetadata,
		})
	}

	score := MaxATSFormatting
	issues := []string{}
	if meta.HasTables {
		score -= deductTables
		issues = append(issues, "tables")
	}
	if meta.HasTextBoxes {
		score -= deductTextBoxes
		issues = append(issues, "text_boxes")
	}
	if strings.TrimSpace(meta.HeaderText) != "" || strings.TrimSpace(meta.FooterText) != "" {
		score -= deductHeaderFooter
		issues = append(issues, "header_footer_content")
	}
	nonStandard := NonStandardFonts(meta.FontsUsed)
	if len(nonStandard) > 0 {
		score -= deductFonts
		issues = append(issues, "non_standard_fonts")
	}

	return types.NewParameterResult(ParamATSFormatting, score, MaxATSFormatting, map[string]any{
		"issues":             issues,
		"non_standard_fonts": nonStandard,
	})
}

// NonStandardFonts returns the fonts outside the ATS-safe list. Style suffixes such
// as "Calibri-Bold" are ignored.
func NonStandardFonts(fonts []string) []string {
	out := []string{}
	for _, f := range fonts {
		name := strings.ToLower(strings.TrimSpace(f))
		if i := strings.IndexAny(name, "-,"); i > 0 {
			name = name[:i]
		}
		name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(name, " bold"), " italic"))
		if name == "" || standardFonts[name] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Section balance bullet band per position
const (
	minBulletsPerRole = 2
	maxBulletsPerRole = 6
)

// SectionBalance scores presence of core sections (2), bullets per role (1.5) and
// word count within the level's range (1.5).
func (s *Scorer) SectionBalance(resume *types.ResumeData, level types.ExperienceLevel) types.ParameterResult {
	if resume == nil {
		return types.NewParameterResult(ParamSectionBalance, 0, MaxSectionBalance, map[string]any{
			"reason": ReasonNoText,
		})
	}

	sections := 0.0
	if len(resume.Experience) > 0 {
		sections += 1
	}
	if len(resume.Education) > 0 {
		sections += 0.5
	}
	if len(resume.Skills) > 0 {
		sections += 0.5
	}

	bulletPoints := 0.0
	balanced := 0
	for _, p := range resume.Experience {
		n := len(p.Bullets())
		if n >= minBulletsPerRole && n <= maxBulletsPerRole {
			balanced++
		}
	}
	if len(resume.Experience) > 0 {
		switch {
		case balanced == len(resume.Experience):
			bulletPoints = 1.5
		case float64(balanced) >= float64(len(resume.Experience))/2:
			bulletPoints = 0.75
		}
	}

	expected := s.tables.Thresholds(level).WordCount
	words := resume.WordCount()
	lengthPoints := 0.0
	switch {
	case words == 0:
	case expected.Contains(float64(words)):
		lengthPoints = 1.5
	case float64(words) >= expected.Min*0.75 && float64(words) <= expected.Max*1.25:
		lengthPoints = 0.75
	}

	return types.NewParameterResult(ParamSectionBalance, sections+bulletPoints+lengthPoints, MaxSectionBalance, map[string]any{
		"section_points":      sections,
		"bullet_points":       bulletPoints,
		"length_points":       lengthPoints,
		"balanced_positions":  balanced,
		"word_count":          words,
		"expected_word_range": expected,
	})
}

// Parseability check weights
const (
	weightTextExtraction = 0.30
	weightSections       = 0.30
	weightBullets        = 0.20
	weightFileSize       = 0.10
	weightSpecialChars   = 0.10

	// ParseabilityPassMark is the minimum weighted score that passes
	ParseabilityPassMark = 0.8
	// ParseabilityPoints is what a perfect parseability score is worth in a breakdown
	ParseabilityPoints = 5.0
)

// ParseabilityResult is the pass/fail outcome of the format checker
type ParseabilityResult struct {
	Score  float64            `json:"score"`
	Passed bool               `json:"passed"`
	Checks map[string]float64 `json:"checks"`
}

// AsParameter scales the 0-1 score to a breakdown component worth five points
func (r ParseabilityResult) AsParameter() types.ParameterResult {
	return types.NewParameterResult(ParamParseability, r.Score*ParseabilityPoints, ParseabilityPoints, map[string]any{
		"passed":     r.Passed,
		"raw_score":  r.Score,
		"checks":     r.Checks,
		"pass_mark":  ParseabilityPassMark,
		"max_points": ParseabilityPoints,
	})
}

// Parseability runs the weighted sub-checks an ATS parser depends on. A resume
// without extractable text fails every check.
func (s *Scorer) Parseability(resume *types.ResumeData) ParseabilityResult {
	text := resume.FullText()
	if strings.TrimSpace(text) == "" {
		return ParseabilityResult{Checks: map[string]float64{
			"text_extraction":    0,
			"sections_detected":  0,
			"bullets_parsed":     0,
			"file_size":          0,
			"special_characters": 0,
		}}
	}

	checks := map[string]float64{
		"text_extraction":    textExtractionCheck(text),
		"sections_detected":  sectionsCheck(resume),
		"bullets_parsed":     bulletsCheck(resume),
		"file_size":          fileSizeCheck(resume),
		"special_characters": specialCharsCheck(text),
	}

	score := checks["text_extraction"]*weightTextExtraction +
		checks["sections_detected"]*weightSections +
		checks["bullets_parsed"]*weightBullets +
		checks["file_size"]*weightFileSize +
		checks["special_characters"]*weightSpecialChars
	score = types.Clamp(math.Round(score*1000)/1000, 0, 1)

	return ParseabilityResult{
		Score:  score,
		Passed: score >= ParseabilityPassMark,
		Checks: checks,
	}
}

func textExtractionCheck(text string) float64 {
	words := len(strings.Fields(text))
	switch {
	case words >= 150:
		return 1
	case words >= 50:
		return 0.6
	case words > 0:
		return 0.3
	default:
		return 0
	}
}

func sectionsCheck(resume *types.ResumeData) float64 {
	if resume == nil {
		return 0
	}
	found := 0
	if resume.Contact != nil && (resume.Contact.Name != "" || resume.Contact.Email != "") {
		found++
	}
	if len(resume.Experience) > 0 {
		found++
	}
	if len(resume.Education) > 0 {
		found++
	}
	if len(resume.Skills) > 0 {
		found++
	}
	return float64(found) / 4
}

func bulletsCheck(resume *types.ResumeData) float64 {
	if resume == nil || len(resume.Experience) == 0 {
		return 0
	}
	withBullets := 0
	for _, p := range resume.Experience {
		if len(p.Bullets()) > 0 {
			withBullets++
		}
	}
	return float64(withBullets) / float64(len(resume.Experience))
}

const (
	maxCleanFileSize = 2 << 20
	maxOKFileSize    = 5 << 20
)

// fileSizeCheck passes unknown sizes; the parser may not report one
func fileSizeCheck(resume *types.ResumeData) float64 {
	if resume == nil || resume.Metadata == nil || resume.Metadata.FileSizeBytes <= 0 {
		return 1
	}
	switch size := resume.Metadata.FileSizeBytes; {
	case size <= maxCleanFileSize:
		return 1
	case size <= maxOKFileSize:
		return 0.5
	default:
		return 0
	}
}

const allowedPunctuation = ".,;:!?'\"()[]-–—/&%$€£+#@*•·|_"

func specialCharsCheck(text string) float64 {
	total, odd := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(allowedPunctuation, r) {
			continue
		}
		odd++
	}
	if total == 0 {
		return 0
	}
	ratio := float64(odd) / float64(total)
	switch {
	case ratio <= 0.01:
		return 1
	case ratio <= 0.03:
		return 0.5
	default:
		return 0
	}
}
