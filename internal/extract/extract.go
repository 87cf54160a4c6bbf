// Package extract builds a Features record from the raw text of a resume
// using lightweight pattern matching. It handles plain text only; binary
// document formats are out of scope.
package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/embedding"
	"github.com/spigell/resume-ranker/internal/feature"
	"github.com/spigell/resume-ranker/internal/ranking"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[\s-]?)?(\(?\d{2,4}\)?[\s-]?){1,3}\d{3,4}`)
	yearsPattern = regexp.MustCompile(`(\d+(\.\d+)?)\+?\s+years`)
	yearPattern  = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	headingPattern = regexp.MustCompile(`^[A-Z ]{3,}$`)

	skillSplitPattern = regexp.MustCompile(`[;,|\x{2022}]`)
)

var sectionHeadings = map[string]struct{}{
	"SUMMARY":    {},
	"OBJECTIVE":  {},
	"SKILLS":     {},
	"EXPERIENCE": {},
	"EDUCATION":  {},
}

var educationKeywords = []string{
	"bachelor", "master", "b.sc", "m.sc", "phd", "university", "college",
	"btech", "mtech", "b.e", "m.e",
}

// Extractor turns raw resume text into a Features record. When an embedder is
// configured the processed text is also embedded.
type Extractor struct {
	embedder embedding.Embedder
	logger   *zap.Logger
}

// New creates an Extractor. The embedder may be nil, in which case features
// carry no embedding.
func New(embedder embedding.Embedder, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{embedder: embedder, logger: logger}
}

// FromText extracts features from raw resume text.
func (e *Extractor) FromText(ctx context.Context, text string) (*feature.Features, error) {
	tokens := contentTokens(text)

	features := &feature.Features{
		Name:            extractName(text),
		Email:           emailPattern.FindString(text),
		Phone:           extractPhone(text),
		Skills:          extractSkills(text),
		ExperienceYears: extractExperienceYears(text),
		Education:       extractEducation(text),
		Summary:         extractSummary(text),
		TextLength:      len(tokens),
		ProcessedText:   strings.Join(tokens, " "),
	}
	features.Normalize()

	if e.embedder != nil && features.ProcessedText != "" {
		vector, err := e.embedder.Embed(ctx, features.ProcessedText)
		if err != nil {
			return nil, fmt.Errorf("embedding resume text: %w", err)
		}
		features.Embedding = vector
	}

	e.logger.Debug("extracted features",
		zap.Int("skills", len(features.Skills)),
		zap.Int("text_length", features.TextLength),
		zap.Bool("has_embedding", len(features.Embedding) > 0),
	)

	return features, nil
}

// contentTokens returns the lowercase alphabetic tokens of text with
// stopwords removed.
func contentTokens(text string) []string {
	tokens := make([]string, 0)
	for _, token := range ranking.Tokens(text) {
		if !isAlphabetic(token) {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func isAlphabetic(token string) bool {
	for _, r := range token {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(token) > 0
}

// extractName prefers the first short line that is not a section heading.
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(strings.Fields(line)) > 6 {
			continue
		}
		if _, heading := sectionHeadings[strings.ToUpper(line)]; heading {
			continue
		}
		return line
	}
	return ""
}

func extractPhone(text string) string {
	match := phonePattern.FindString(text)
	if match == "" {
		return ""
	}
	return strings.Join(strings.Fields(match), "")
}

// extractExperienceYears looks for an explicit "N years" mention first and
// falls back to the span between the earliest and latest calendar years.
func extractExperienceYears(text string) *float64 {
	lower := strings.ToLower(text)
	if match := yearsPattern.FindStringSubmatch(lower); match != nil {
		if years, err := strconv.ParseFloat(match[1], 64); err == nil {
			return &years
		}
	}

	years := yearPattern.FindAllString(text, -1)
	if len(years) < 2 {
		return nil
	}

	minYear, maxYear := 0, 0
	for _, raw := range years {
		year, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	if minYear == 0 || maxYear < minYear {
		return nil
	}

	span := float64(maxYear - minYear)
	return &span
}

func extractEducation(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, keyword := range educationKeywords {
			if strings.Contains(lower, keyword) {
				lines = append(lines, strings.TrimSpace(line))
				break
			}
		}
	}
	return lines
}

// extractSummary returns up to three lines following a summary-like heading,
// or the first paragraph when no such section exists.
func extractSummary(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "SUMMARY", "PROFESSIONAL SUMMARY", "PROFILE", "OBJECTIVE":
			var collected []string
			for _, next := range lines[i+1:] {
				next = strings.TrimSpace(next)
				if next == "" {
					continue
				}
				if headingPattern.MatchString(next) {
					break
				}
				collected = append(collected, next)
				if len(collected) >= 3 {
					break
				}
			}
			return strings.Join(collected, " ")
		}
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		if len(paragraph) > 1000 {
			paragraph = paragraph[:1000]
		}
		return paragraph
	}

	return ""
}
