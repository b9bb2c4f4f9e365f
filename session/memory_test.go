package session

import (
	"sync"
	"testing"
	"time"
)

func TestNewSessionIDs(t *testing.T) {
	a := New(time.Now().Add(time.Hour))
	b := New(time.Now().Add(time.Hour))

	if a.ID == "" || len(a.ID) != 32 {
		t.Errorf("ID = %q, want 32 hex chars", a.ID)
	}
	if a.ID == b.ID {
		t.Errorf("two sessions share the id %q", a.ID)
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := New(now.Add(time.Minute))

	if s.Expired(now) {
		t.Errorf("session expired before its deadline")
	}
	if !s.Expired(now.Add(2 * time.Minute)) {
		t.Errorf("session alive past its deadline")
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	store := NewMemoryStore()
	s := New(time.Now().Add(time.Hour))

	if err := store.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(s); err == nil {
		t.Errorf("Create should reject a duplicate id")
	}

	got, err := store.Load(s.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.ID != s.ID {
		t.Fatalf("Load returned %+v", got)
	}

	got.Data["user"] = "ada"
	if err := store.Save(got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, _ := store.Load(s.ID)
	if reloaded.Data["user"] != "ada" {
		t.Errorf("saved data lost: %+v", reloaded.Data)
	}

	if err := store.Delete(s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(s.ID); err == nil {
		t.Errorf("Delete should fail on an unknown id")
	}

	gone, err := store.Load(s.ID)
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("deleted session still loads")
	}
}

func TestMemoryStoreSaveUnknown(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save(New(time.Now().Add(time.Hour))); err == nil {
		t.Errorf("Save should fail for a session never created")
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := New(time.Now().Add(time.Hour))
			if err := store.Create(s); err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			if _, err := store.Load(s.ID); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}
	wg.Wait()

	if store.Len() != 32 {
		t.Errorf("Len = %d, want 32", store.Len())
	}
}
