package domain

const (
	// TierBasePrice is the sentinel tier label returned when no tier applies
	TierBasePrice = "Base Price"
	// TierFallbackName labels a matching tier that has no name
	TierFallbackName = "Tier"
)

// IntPtr returns a pointer to n, handy for open/closed tier bounds
func IntPtr(n int) *int {
	return &n
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
