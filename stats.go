package crawld

// HostCount pairs a host (or host/first-path-segment prefix) with its
// frequency.
type HostCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats aggregates frontier-wide statistics for operators. Breakdown lists
// are ordered by descending frequency with ties broken by first-encountered
// order, truncated to the requested size.
type Stats struct {
	Counts            StatusCounts `json:"counts"`
	Total             int          `json:"total"`
	EarliestSeed      string       `json:"earliestSeed,omitempty"`
	TopPausedHosts    []HostCount  `json:"topPausedHosts"`
	TopPausedPrefixes []HostCount  `json:"topPausedPrefixes"`
	TopHosts          []HostCount  `json:"topHosts"`
}
