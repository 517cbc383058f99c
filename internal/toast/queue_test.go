package toast

import (
	"testing"
	"time"
)

func TestZeroDurationPersistsUntilRemoved(t *testing.T) {
	q := NewQueue()
	defer q.Stop()

	entry := q.Add("Saved", TypeSuccess, 0)
	if len(q.Active()) != 1 {
		t.Fatalf("expected 1 active toast")
	}

	q.Remove(entry.ID)
	if len(q.Active()) != 0 {
		t.Errorf("expected empty queue after explicit removal")
	}

	// no timer was scheduled, so nothing can fire later
	q.mu.Lock()
	pending := len(q.timers)
	q.mu.Unlock()
	if pending != 0 {
		t.Errorf("expected no pending timers, got %d", pending)
	}
}

func TestAutoRemovalAfterDuration(t *testing.T) {
	q := NewQueue()
	defer q.Stop()

	q.Add("Guardado", TypeSuccess, 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(q.Active()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("toast was not auto-removed")
}

func TestManualRemovalBeatsTimer(t *testing.T) {
	q := NewQueue()
	defer q.Stop()

	entry := q.Warning("Cuidado", time.Hour)
	q.Remove(entry.ID)

	if len(q.Active()) != 0 {
		t.Errorf("expected empty queue")
	}
	// the late timer firing must stay a no-op
	q.Remove(entry.ID)
}

func TestRemoveMissingIDIsNoOp(t *testing.T) {
	q := NewQueue()
	defer q.Stop()

	q.Info("hola", 0)
	q.Remove(42)
	if len(q.Active()) != 1 {
		t.Errorf("removal of missing id changed the queue")
	}
}

func TestConvenienceWrappersFixType(t *testing.T) {
	q := NewQueue()
	defer q.Stop()

	if got := q.Success("a", 0).Type; got != TypeSuccess {
		t.Errorf("Success type = %q", got)
	}
	if got := q.Error("b", 0).Type; got != TypeError {
		t.Errorf("Error type = %q", got)
	}
	if got := q.Info("c", 0).Type; got != TypeInfo {
		t.Errorf("Info type = %q", got)
	}
	if got := q.Warning("d", 0).Type; got != TypeWarning {
		t.Errorf("Warning type = %q", got)
	}
}

func TestIDsAreUniqueUnderRapidAdds(t *testing.T) {
	q := NewQueue()
	defer q.Stop()

	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		entry := q.Add("x", TypeInfo, 0)
		if seen[entry.ID] {
			t.Fatalf("duplicate toast id %d", entry.ID)
		}
		seen[entry.ID] = true
	}
}
