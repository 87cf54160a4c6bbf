package ranking

import "strings"

// SkillScore returns the fraction of required skills the candidate covers,
// comparing case-insensitively after trimming whitespace. Extra candidate
// skills never push the score above 1.
//
// When no skills are required the score is 1 if the candidate listed any
// skills at all and 0 otherwise.
func SkillScore(candidate, required []string) float64 {
	candidateSet := normalizeSkillSet(candidate)
	requiredSet := normalizeSkillSet(required)

	if len(requiredSet) == 0 {
		if len(candidateSet) > 0 {
			return 1.0
		}
		return 0.0
	}

	matched := 0
	for skill := range requiredSet {
		if _, ok := candidateSet[skill]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(requiredSet))
}

func normalizeSkillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			set[skill] = struct{}{}
		}
	}
	return set
}
