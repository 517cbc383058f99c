package search

import "log"

// Service is the facade that tries Meilisearch first and falls back to the
// in-memory scan.
type Service struct {
	meili  *Meili
	memory *Memory
}

// NewService creates a search service. meili may be nil if Meilisearch is
// not configured.
func NewService(meili *Meili, memory *Memory) *Service {
	return &Service{meili: meili, memory: memory}
}

// Search tries Meilisearch if healthy, otherwise scans the ledger.
func (s *Service) Search(q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to memory scan: %v", err)
	}

	results, total, err := s.memory.Search(q)
	if err != nil {
		log.Printf("search: memory scan error: %v", err)
		return Response{Results: []QuoteRecord{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

// IndexQuote indexes a quote (fire-and-forget to Meilisearch).
func (s *Service) IndexQuote(record QuoteRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexQuote(record); err != nil {
			log.Printf("search: index quote %s: %v", record.ID, err)
		}
	}()
}

// DeleteQuote removes a quote from the index (fire-and-forget).
func (s *Service) DeleteQuote(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteQuote(id); err != nil {
			log.Printf("search: delete quote %s: %v", id, err)
		}
	}()
}

// ReindexAll pushes the full collection to Meilisearch at bootstrap.
func (s *Service) ReindexAll(records []QuoteRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	if err := s.meili.IndexQuotes(records); err != nil {
		log.Printf("search: reindex quotes: %v", err)
	}
}

func nonNil(r []QuoteRecord) []QuoteRecord {
	if r == nil {
		return []QuoteRecord{}
	}
	return r
}
