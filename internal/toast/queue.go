// Package toast keeps the ephemeral feedback queue. Scheduled removals are
// independent and keyed by identifier, so a toast removed by hand before
// its timer fires just causes a harmless no-op later.
package toast

import (
	"sync"
	"time"
)

const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeInfo    = "info"
	TypeWarning = "warning"
)

// DefaultDuration matches the original 3-second auto-dismiss.
const DefaultDuration = 3 * time.Second

type Toast struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type Queue struct {
	mu     sync.Mutex
	toasts []Toast
	timers map[int64]*time.Timer
	lastID int64
	now    func() time.Time
}

func NewQueue() *Queue {
	return &Queue{timers: make(map[int64]*time.Timer), now: time.Now}
}

// Add appends a toast. A positive duration schedules automatic removal;
// zero keeps the toast until it is removed explicitly.
func (q *Queue) Add(message, toastType string, duration time.Duration) Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.now().UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	entry := Toast{ID: id, Message: message, Type: toastType}
	q.toasts = append(q.toasts, entry)

	if duration > 0 {
		q.timers[id] = time.AfterFunc(duration, func() {
			q.Remove(id)
		})
	}
	return entry
}

// Remove drops the matching toast, no-op otherwise.
func (q *Queue) Remove(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
}

func (q *Queue) Success(message string, duration time.Duration) Toast {
	return q.Add(message, TypeSuccess, duration)
}

func (q *Queue) Error(message string, duration time.Duration) Toast {
	return q.Add(message, TypeError, duration)
}

func (q *Queue) Info(message string, duration time.Duration) Toast {
	return q.Add(message, TypeInfo, duration)
}

func (q *Queue) Warning(message string, duration time.Duration) Toast {
	return q.Add(message, TypeWarning, duration)
}

// Active returns a snapshot of the pending toasts in display order.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Stop cancels every pending removal timer. Used on shutdown.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
}
