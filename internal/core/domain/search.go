package domain

// SearchResult is the outcome of a package name search.
type SearchResult struct {
	Query string `json:"query"`
	// Exact is the package whose name equals the query, if any.
	Exact *PackageName  `json:"exact"`
	Other []PackageName `json:"other"`
}

// Empty reports whether nothing matched.
func (r SearchResult) Empty() bool {
	return r.Exact == nil && len(r.Other) == 0
}
