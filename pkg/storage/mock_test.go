package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMockStorage_SetGetDel(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	if err := m.Set(ctx, "slot", `{"humanity":40}`); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	got, err := m.Get(ctx, "slot")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got != `{"humanity":40}` {
		t.Errorf("Expected stored record, got %q", got)
	}

	if err := m.Del(ctx, "slot"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	got, err = m.Get(ctx, "slot")
	if err != nil {
		t.Fatalf("Unexpected error after deletion: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty record after deletion, got %q", got)
	}
}

func TestMockStorage_MissingKey(t *testing.T) {
	m := NewMockStorage()
	got, err := m.Get(context.Background(), "nope")
	if err != nil || got != "" {
		t.Errorf("Expected (\"\", nil) for missing key, got (%q, %v)", got, err)
	}
}

func TestMockStorage_InjectedErrors(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	boom := errors.New("boom")

	m.SetGetError(boom)
	if _, err := m.Get(ctx, "slot"); !errors.Is(err, boom) {
		t.Errorf("Expected get error, got %v", err)
	}

	m.SetSetError(boom)
	if err := m.Set(ctx, "slot", "x"); !errors.Is(err, boom) {
		t.Errorf("Expected set error, got %v", err)
	}
	if m.SetCount() != 0 {
		t.Errorf("Failed writes must not count, got %d", m.SetCount())
	}

	m.SetDelError(boom)
	if err := m.Del(ctx, "slot"); !errors.Is(err, boom) {
		t.Errorf("Expected del error, got %v", err)
	}
}

func TestMockStorage_Closed(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	if err := m.Ping(ctx); err != nil {
		t.Fatalf("Expected healthy mock, got %v", err)
	}
	_ = m.Close()

	if err := m.Ping(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Ping, got %v", err)
	}
	if err := m.Set(ctx, "slot", "x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from Set, got %v", err)
	}
}
