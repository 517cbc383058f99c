// Package search finds quotes by client, project or status. Meilisearch is
// used when configured and healthy; otherwise an in-memory scan over the
// ledger serves the same queries.
package search

// QuoteRecord is the indexed projection of a quote.
type QuoteRecord struct {
	ID          string `json:"id"`
	ClientName  string `json:"clientName"`
	ProjectName string `json:"projectName"`
	Status      string `json:"status"`
	Currency    string `json:"currency"`
	Total       string `json:"total"`
}

// Query describes a search request.
type Query struct {
	Text         string
	FilterStatus string // empty = all statuses
	Limit        int
	Offset       int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []QuoteRecord `json:"results"`
	Total   int           `json:"total"`
	Query   string        `json:"query"`
}

// Searcher can execute a quote search.
type Searcher interface {
	Search(q Query) ([]QuoteRecord, int, error)
	Healthy() bool
}
