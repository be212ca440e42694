package catalog

// MatchesQuery reports whether p's title, location, typology or program contains q,
// ignoring case. Callers treat a blank q as "no filter"; here it matches everything.
func MatchesQuery(p Project, q string) bool {
	if ContainsFold(p.Title, q) || ContainsFold(p.Location, q) {
		return true
	}
	for _, f := range []string{FieldTypology, FieldProgram} {
		if s, ok := p.Field(f); ok && ContainsFold(s, q) {
			return true
		}
	}
	return false
}

// MatchesKeyword holds the curated keyword rules: an exact typology or program, plus
// HIGH-RISE (scale XL), INTERIOR (typology) and BUILT (epoch PRESENT). They are literal.
func MatchesKeyword(p Project, keyword string) bool {
	typology, hasTypology := p.Field(FieldTypology)
	program, hasProgram := p.Field(FieldProgram)
	if (hasTypology && typology == keyword) || (hasProgram && program == keyword) {
		return true
	}
	switch keyword {
	case "HIGH-RISE":
		scale, ok := p.Field(FieldScale)
		return ok && scale == "XL"
	case "INTERIOR":
		return hasTypology && typology == "INTERIOR"
	case "BUILT":
		epoch, ok := p.Field(FieldEpoch)
		return ok && epoch == "PRESENT"
	}
	return false
}
