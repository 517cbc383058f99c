package search

import "strings"

// Memory scans a live snapshot of the ledger. Always healthy; the dataset
// is single-user sized, so O(n) per query is fine.
type Memory struct {
	snapshot func() []QuoteRecord
}

func NewMemory(snapshot func() []QuoteRecord) *Memory {
	return &Memory{snapshot: snapshot}
}

func (m *Memory) Healthy() bool { return true }

func (m *Memory) Search(q Query) ([]QuoteRecord, int, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	var matches []QuoteRecord
	for _, record := range m.snapshot() {
		if q.FilterStatus != "" && record.Status != q.FilterStatus {
			continue
		}
		if needle != "" && !matchesRecord(record, needle) {
			continue
		}
		matches = append(matches, record)
	}

	total := len(matches)
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	matches = matches[offset:]
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches, total, nil
}

func matchesRecord(record QuoteRecord, needle string) bool {
	return strings.Contains(strings.ToLower(record.ClientName), needle) ||
		strings.Contains(strings.ToLower(record.ProjectName), needle) ||
		strings.Contains(strings.ToLower(record.Status), needle)
}
