// Package notify keeps the in-memory notification feed. The feed is not
// persisted: it reseeds on every session, which the original tool did too.
package notify

import (
	"sync"
	"time"
)

const (
	TypeSuccess = "success"
	TypeInfo    = "info"
	TypeWarning = "warning"
)

type Notification struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
	Read    bool      `json:"read"`
	Type    string    `json:"type"`
}

type Feed struct {
	mu     sync.Mutex
	items  []Notification
	lastID int64
	now    func() time.Time
}

func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// Seed fills the feed with the demonstration entries shown on first run.
func (f *Feed) Seed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	f.items = []Notification{
		{
			ID:      1,
			Title:   "Cotización Aceptada",
			Message: "Maria González aceptó la cotización #87654321",
			Time:    now.Add(-30 * time.Minute),
			Type:    TypeSuccess,
		},
		{
			ID:      2,
			Title:   "Nueva Visualización",
			Message: "Tech Solutions Inc. ha visto tu cotización",
			Time:    now.Add(-2 * time.Hour),
			Type:    TypeInfo,
		},
		{
			ID:      3,
			Title:   "Recordatorio",
			Message: "La cotización de Juan Pérez vence mañana",
			Time:    now.Add(-24 * time.Hour),
			Read:    true,
			Type:    TypeWarning,
		},
	}
	f.lastID = 3
}

// Add prepends a new unread entry. Title, message and type are required;
// incomplete payloads are dropped silently, in line with the tool's
// no-op error policy.
func (f *Feed) Add(title, message, notificationType string) (Notification, bool) {
	if title == "" || message == "" || notificationType == "" {
		return Notification{}, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.now().UnixMilli()
	if id <= f.lastID {
		id = f.lastID + 1
	}
	f.lastID = id

	entry := Notification{
		ID:      id,
		Title:   title,
		Message: message,
		Time:    f.now(),
		Type:    notificationType,
	}
	f.items = append([]Notification{entry}, f.items...)
	return entry, true
}

// MarkRead flips the read flag, no-op if absent.
func (f *Feed) MarkRead(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return
		}
	}
}

func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].Read = true
	}
}

// UnreadCount is recomputed on every call.
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for i := range f.items {
		if !f.items[i].Read {
			count++
		}
	}
	return count
}

// All returns a snapshot, newest first.
func (f *Feed) All() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}
