package session

import (
	"errors"
	"sync"
	"testing"

	"revealboard/internal/board"
	"revealboard/internal/viewport"
)

func newTestPool() *Pool {
	return NewPool(testConfig(), testDecl(), func() viewport.Camera { return testCamera() })
}

func TestPool_SessionsAreIsolated(t *testing.T) {
	p := newTestPool()
	a, err := p.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := p.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a == b {
		t.Fatal("session IDs must differ")
	}

	err = p.With(a, func(s *Session) error {
		s.Post(PointerDown{Button: ButtonRight, Target: NodeTarget(mustLookup(t, s, "door"))})
		settle(t, s)
		return nil
	})
	if err != nil {
		t.Fatalf("with: %v", err)
	}

	p.With(b, func(s *Session) error {
		snap := s.Snapshot()
		if snap.ID != b {
			t.Errorf("snapshot id = %q, want %q", snap.ID, b)
		}
		if n, _ := snap.Node("door"); n.Status != board.Closed {
			t.Errorf("other session's door = %s, want closed", n.Status)
		}
		if snap.BudgetRemaining != snap.BudgetTotal {
			t.Errorf("other session's budget touched: %d/%d", snap.BudgetRemaining, snap.BudgetTotal)
		}
		return nil
	})
}

func TestPool_UnknownAndRemove(t *testing.T) {
	p := newTestPool()
	if err := p.With("nope", func(*Session) error { return nil }); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
	id, _ := p.Create()
	if p.Len() != 1 || p.IDs()[0] != id {
		t.Fatalf("ids = %v", p.IDs())
	}
	if !p.Remove(id) {
		t.Fatal("remove should report existing session")
	}
	if p.Remove(id) {
		t.Fatal("second remove should report missing session")
	}
}

func TestPool_CreateFailsWithoutCamera(t *testing.T) {
	p := NewPool(testConfig(), testDecl(), nil)
	if _, err := p.Create(); !errors.Is(err, viewport.ErrNoCamera) {
		t.Fatalf("expected ErrNoCamera, got %v", err)
	}
	if p.Len() != 0 {
		t.Error("failed session must not be pooled")
	}
}

func TestPool_ConcurrentSessions(t *testing.T) {
	p := newTestPool()
	var ids []string
	for i := 0; i < 8; i++ {
		id, err := p.Create()
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, id)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			p.With(id, func(s *Session) error {
				door, _ := s.Lookup("door")
				s.Post(PointerDown{Button: ButtonRight, Target: NodeTarget(door)})
				for i := 0; i < 10; i++ {
					s.Tick(frame)
				}
				return nil
			})
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		p.With(id, func(s *Session) error {
			if n, _ := s.Snapshot().Node("door"); n.Status != board.Opened {
				t.Errorf("session %s door = %s, want opened", id, n.Status)
			}
			return nil
		})
	}
}
