package types

// Tag is one applicability fact derived from a company profile,
// e.g. "has_contractor" or "employee_50plus". Tags link profiles to laws.
type Tag string

// String returns the string representation of the tag
func (t Tag) String() string {
	return string(t)
}

// UniqueTags deduplicates a tag list while preserving first-seen order
func UniqueTags(tags []Tag) []Tag {
	seen := make(map[Tag]struct{}, len(tags))
	result := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	return result
}
