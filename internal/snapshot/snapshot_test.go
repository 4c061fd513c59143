package snapshot

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrLoadCachesResult(t *testing.T) {
	s := NewStore[int]()
	loads := 0
	load := func() (int, error) { loads++; return 42, nil }

	for i := 0; i < 3; i++ {
		v, err := s.GetOrLoad("claims", 0, load)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if v != 42 {
			t.Fatalf("value = %d", v)
		}
	}
	if loads != 1 {
		t.Errorf("load ran %d times", loads)
	}
}

func TestLoadErrorNotCached(t *testing.T) {
	s := NewStore[int]()
	boom := errors.New("boom")
	calls := 0

	_, err := s.GetOrLoad("k", 0, func() (int, error) { calls++; return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	v, err := s.GetOrLoad("k", 0, func() (int, error) { calls++; return 7, nil })
	if err != nil || v != 7 {
		t.Fatalf("retry after error: v=%d err=%v", v, err)
	}
	if calls != 2 {
		t.Errorf("load calls = %d", calls)
	}
}

func TestTTLExpiry(t *testing.T) {
	s := NewStore[string]()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.Put("roster", "v1", 5*time.Minute)
	if v, ok := s.Get("roster"); !ok || v != "v1" {
		t.Fatalf("fresh entry: %q %v", v, ok)
	}

	clock = clock.Add(5*time.Minute + time.Second)
	if _, ok := s.Get("roster"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s := NewStore[string]()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.Put("claims", "v1", 0)
	clock = clock.Add(24 * 365 * time.Hour)
	if _, ok := s.Get("claims"); !ok {
		t.Fatal("zero-TTL entry must not expire")
	}
}

func TestClear(t *testing.T) {
	s := NewStore[int]()
	s.Put("a", 1, 0)
	s.Put("b", 2, 0)
	s.Clear()
	if _, ok := s.Get("a"); ok {
		t.Fatal("Clear must drop all entries")
	}
}
