package search

import "testing"

func fixedSnapshot() []QuoteRecord {
	return []QuoteRecord{
		{ID: "1", ClientName: "Tech Solutions Inc.", ProjectName: "Rediseño de E-commerce", Status: "sent"},
		{ID: "2", ClientName: "Maria González", ProjectName: "Sitio Web Personal", Status: "accepted"},
		{ID: "3", ClientName: "Acme", ProjectName: "Branding", Status: "draft"},
	}
}

func TestMemorySearchMatchesClientAndProject(t *testing.T) {
	m := NewMemory(fixedSnapshot)

	results, total, err := m.Search(Query{Text: "maria"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 || results[0].ID != "2" {
		t.Errorf("expected Maria's quote, got %+v", results)
	}

	results, _, _ = m.Search(Query{Text: "sitio"})
	if len(results) != 1 || results[0].ID != "2" {
		t.Errorf("expected project match, got %+v", results)
	}
}

func TestMemorySearchStatusFilter(t *testing.T) {
	m := NewMemory(fixedSnapshot)

	results, total, err := m.Search(Query{FilterStatus: "accepted"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 || results[0].Status != "accepted" {
		t.Errorf("expected one accepted quote, got %+v", results)
	}
}

func TestMemorySearchLimitAndOffset(t *testing.T) {
	m := NewMemory(fixedSnapshot)

	results, total, err := m.Search(Query{Limit: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 3 || len(results) != 2 {
		t.Errorf("expected total 3 with 2 returned, got total %d len %d", total, len(results))
	}

	results, _, _ = m.Search(Query{Offset: 2})
	if len(results) != 1 || results[0].ID != "3" {
		t.Errorf("expected offset to skip, got %+v", results)
	}
}

func TestMemorySearchNegativePaging(t *testing.T) {
	m := NewMemory(fixedSnapshot)

	results, total, err := m.Search(Query{Offset: -1})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 3 || len(results) != 3 {
		t.Errorf("expected negative offset treated as 0, got total %d len %d", total, len(results))
	}

	results, _, err = m.Search(Query{Limit: -5})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected negative limit to mean unlimited, got %d", len(results))
	}
}

func TestServiceFallsBackWithoutMeili(t *testing.T) {
	svc := NewService(nil, NewMemory(fixedSnapshot))

	resp := svc.Search(Query{Text: "acme"})
	if resp.Total != 1 || resp.Results[0].ID != "3" {
		t.Errorf("expected fallback scan result, got %+v", resp)
	}
	if resp.Results == nil {
		t.Errorf("results must never be nil")
	}

	// indexing without meilisearch is a silent no-op
	svc.IndexQuote(QuoteRecord{ID: "4"})
	svc.DeleteQuote("4")
	svc.ReindexAll(fixedSnapshot())
}

func TestServiceEmptyQueryReturnsAll(t *testing.T) {
	svc := NewService(nil, NewMemory(fixedSnapshot))
	resp := svc.Search(Query{})
	if resp.Total != 3 {
		t.Errorf("expected all quotes for empty query, got %d", resp.Total)
	}
}
