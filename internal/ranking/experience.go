package ranking

// ExperienceScore compares candidate years of experience against a required
// threshold with proportional partial credit. A missing requirement is
// trivially satisfied; unknown or negative candidate experience earns no
// credit.
func ExperienceScore(candidate *float64, required float64) float64 {
	if required <= 0 {
		return 1.0
	}

	if candidate == nil || *candidate < 0 {
		return 0.0
	}

	if *candidate >= required {
		return 1.0
	}

	return *candidate / required
}
