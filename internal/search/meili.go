package search

import (
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"
)

const idxQuotes = "quotefolio_quotes"

// Meili implements Searcher via Meilisearch.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	done    chan struct{}
}

// NewMeili creates a Meilisearch client and configures the quote index.
// The caller proceeds without search acceleration if the instance is down.
func NewMeili(url, apiKey string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))

	m := &Meili{
		client: client,
		done:   make(chan struct{}),
	}

	if _, err := client.Health(); err != nil {
		log.Printf("search: meilisearch unavailable at %s: %v", url, err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        idxQuotes,
		PrimaryKey: "id",
	}); err != nil {
		log.Printf("search: create index %s (may already exist): %v", idxQuotes, err)
	}

	index := m.client.Index(idxQuotes)
	filterable := []interface{}{"status", "currency"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("search: update filterable attrs: %v", err)
	}
	searchable := []string{"clientName", "projectName", "status"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("search: update searchable attrs: %v", err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				log.Println("search: meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether Meilisearch is reachable.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

func (m *Meili) Search(q Query) ([]QuoteRecord, int, error) {
	if !m.healthy.Load() {
		return nil, 0, fmt.Errorf("meilisearch unhealthy")
	}

	limit := int64(q.Limit)
	if limit <= 0 {
		limit = 20
	}
	offset := int64(q.Offset)
	if offset < 0 {
		offset = 0
	}

	request := &meili.SearchRequest{
		Limit:  limit,
		Offset: offset,
	}
	if q.FilterStatus != "" {
		request.Filter = []string{fmt.Sprintf("status = %q", q.FilterStatus)}
	}

	resp, err := m.client.Index(idxQuotes).Search(q.Text, request)
	if err != nil {
		m.healthy.Store(false)
		return nil, 0, fmt.Errorf("meilisearch search: %w", err)
	}

	results := make([]QuoteRecord, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		results = append(results, hitToRecord(hit))
	}
	return results, int(resp.EstimatedTotalHits), nil
}

func hitToRecord(hit meili.Hit) QuoteRecord {
	return QuoteRecord{
		ID:          decodeString(hit, "id"),
		ClientName:  decodeString(hit, "clientName"),
		ProjectName: decodeString(hit, "projectName"),
		Status:      decodeString(hit, "status"),
		Currency:    decodeString(hit, "currency"),
		Total:       decodeString(hit, "total"),
	}
}

func decodeString(hit meili.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// IndexQuote adds or updates a quote in the search index.
func (m *Meili) IndexQuote(record QuoteRecord) error {
	_, err := m.client.Index(idxQuotes).AddDocuments([]QuoteRecord{record}, nil)
	return err
}

// IndexQuotes pushes a batch, used at bootstrap.
func (m *Meili) IndexQuotes(records []QuoteRecord) error {
	if len(records) == 0 {
		return nil
	}
	_, err := m.client.Index(idxQuotes).AddDocuments(records, nil)
	return err
}

// DeleteQuote removes a quote from the search index.
func (m *Meili) DeleteQuote(id string) error {
	_, err := m.client.Index(idxQuotes).DeleteDocument(id, nil)
	return err
}
