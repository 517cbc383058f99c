package notify

import "testing"

func TestSeedAndUnreadCount(t *testing.T) {
	f := NewFeed()
	f.Seed()

	if got := len(f.All()); got != 3 {
		t.Fatalf("expected 3 seeded notifications, got %d", got)
	}
	if got := f.UnreadCount(); got != 2 {
		t.Errorf("expected 2 unread after seed, got %d", got)
	}
}

func TestAddPrependsUnread(t *testing.T) {
	f := NewFeed()
	f.Seed()

	entry, ok := f.Add("Cotización Vista", "Acme ha visto tu cotización", TypeInfo)
	if !ok {
		t.Fatalf("expected add to succeed")
	}
	if entry.Read {
		t.Errorf("new notifications must start unread")
	}

	all := f.All()
	if all[0].ID != entry.ID {
		t.Errorf("expected new entry first, got %+v", all[0])
	}
	if got := f.UnreadCount(); got != 3 {
		t.Errorf("expected 3 unread, got %d", got)
	}
}

func TestAddRequiresAllFields(t *testing.T) {
	f := NewFeed()
	if _, ok := f.Add("", "mensaje", TypeInfo); ok {
		t.Errorf("expected missing title to be rejected")
	}
	if _, ok := f.Add("título", "", TypeInfo); ok {
		t.Errorf("expected missing message to be rejected")
	}
	if _, ok := f.Add("título", "mensaje", ""); ok {
		t.Errorf("expected missing type to be rejected")
	}
	if got := len(f.All()); got != 0 {
		t.Errorf("rejected payloads must not be stored, got %d entries", got)
	}
}

func TestMarkReadAndMarkAllRead(t *testing.T) {
	f := NewFeed()
	f.Seed()

	f.MarkRead(1)
	if got := f.UnreadCount(); got != 1 {
		t.Errorf("expected 1 unread after MarkRead, got %d", got)
	}

	// absent id is a no-op
	f.MarkRead(9999)
	if got := f.UnreadCount(); got != 1 {
		t.Errorf("missing id should not change unread count, got %d", got)
	}

	f.MarkAllRead()
	if got := f.UnreadCount(); got != 0 {
		t.Errorf("expected 0 unread after MarkAllRead, got %d", got)
	}
}

func TestAddIDsAreUnique(t *testing.T) {
	f := NewFeed()
	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		entry, ok := f.Add("título", "mensaje", TypeSuccess)
		if !ok {
			t.Fatalf("add failed")
		}
		if seen[entry.ID] {
			t.Fatalf("duplicate notification id %d", entry.ID)
		}
		seen[entry.ID] = true
	}
}
