package extract

import (
	"sort"
	"strings"
)

// curatedSkills is the vocabulary scanned for in resume text. Entries are the
// canonical lowercase spellings.
var curatedSkills = map[string]struct{}{
	"python": {}, "java": {}, "c++": {}, "c#": {}, "javascript": {},
	"typescript": {}, "sql": {}, "mysql": {}, "postgresql": {}, "mongodb": {},
	"aws": {}, "azure": {}, "gcp": {}, "docker": {}, "kubernetes": {},
	"git": {}, "linux": {}, "html": {}, "css": {}, "react": {},
	"angular": {}, "nodejs": {}, "django": {}, "flask": {}, "spring": {},
	"selenium": {}, "jira": {}, "jenkins": {}, "cicd": {}, "pandas": {},
	"numpy": {}, "scikit-learn": {}, "tensorflow": {}, "keras": {},
	"pytorch": {}, "matplotlib": {}, "spark": {}, "hadoop": {},
	"tableau": {}, "powerbi": {}, "excel": {}, "oracle": {}, "bash": {},
	"shell": {}, "json": {}, "xml": {}, "php": {}, "dotnet": {},
	"postman": {}, "pytest": {}, "junit": {}, "hibernate": {},
	"express": {}, "bootstrap": {}, "vue": {}, "redis": {},
	"elasticsearch": {}, "graphql": {}, "firebase": {}, "android": {},
	"ios": {}, "swift": {}, "go": {}, "ruby": {}, "rails": {},
	"scala": {}, "devops": {}, "etl": {}, "nlp": {}, "statistics": {},
	"scrum": {}, "agile": {},
}

// variantSpellings maps common alternate spellings to canonical ones.
var variantSpellings = map[string]string{
	"node.js": "nodejs",
	"node js": "nodejs",
	"ci/cd":   "cicd",
	".net":    "dotnet",
	"golang":  "go",
}

// extractSkills collects skills from a SKILLS section when present and scans
// the whole text for the curated vocabulary.
func extractSkills(text string) []string {
	found := make(map[string]struct{})

	for _, entry := range skillsSectionEntries(text) {
		if canonical, ok := canonicalSkill(entry); ok {
			found[canonical] = struct{}{}
		}
	}

	for _, token := range skillTokens(text) {
		if canonical, ok := canonicalSkill(token); ok {
			found[canonical] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}

// skillsSectionEntries returns the entries listed under a SKILLS heading,
// split on common list separators. The section ends at a blank line or the
// next heading.
func skillsSectionEntries(text string) []string {
	var entries []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if inSection {
			if trimmed == "" || headingPattern.MatchString(trimmed) {
				break
			}
			for _, part := range skillSplitPattern.Split(trimmed, -1) {
				part = strings.TrimSpace(part)
				if part != "" {
					entries = append(entries, strings.ToLower(part))
				}
			}
		}
		if strings.EqualFold(trimmed, "SKILLS") {
			inSection = true
		}
	}

	return entries
}

// skillTokens splits text on whitespace keeping characters that appear in
// skill names, so entries like "c++" and "node.js" survive tokenization.
func skillTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return false
		case r == '+', r == '#', r == '.', r == '-', r == '/':
			return false
		default:
			return true
		}
	})
	return fields
}

func canonicalSkill(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", false
	}

	if canonical, ok := variantSpellings[raw]; ok {
		return canonical, true
	}

	raw = strings.Trim(raw, ".")
	if _, ok := curatedSkills[raw]; ok {
		return raw, true
	}

	return "", false
}
