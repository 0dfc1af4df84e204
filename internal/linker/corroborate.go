package linker

// Duration tolerance bands. Short-form entries disagree wildly
// between the two sites (per-episode vs per-season listings), so
// anything at or under an hour on both sides gets the wide band.
const (
	shortFormCutoff = 60

	wideLower  = 0.75
	wideUpper  = 1.50
	tightLower = 0.85
	tightUpper = 1.15
)

// ClassifyDuration decides whether a candidate's runtime corroborates
// the source runtime. A missing runtime on either side is accepted:
// watchlist entries never carry one, and an absent IMDb runtime is
// not a contradiction.
func ClassifyDuration(sourceMinutes, candidateMinutes int) MatchStatus {
	if sourceMinutes == 0 || candidateMinutes == 0 {
		return StatusConfirmed
	}

	lower, upper := tightLower, tightUpper
	if sourceMinutes <= shortFormCutoff && candidateMinutes <= shortFormCutoff {
		lower, upper = wideLower, wideUpper
	}

	src := float64(sourceMinutes)
	cand := float64(candidateMinutes)
	if src >= cand*lower && src <= cand*upper {
		return StatusConfirmed
	}
	return StatusNeedsReview
}
