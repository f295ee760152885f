package cache

import "testing"

func TestGetMissIsNotAnError(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	data, ok, err := s.Get(5, 5, 100)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || data != nil {
		t.Fatalf("expected a clean miss, got ok=%v data=%v", ok, data)
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	payload := []byte("(assert true)")
	if err := s.Put(4, 6, 100, payload); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, ok, err := s.Get(4, 6, 100)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || string(data) != string(payload) {
		t.Fatalf("expected round-tripped payload, got ok=%v data=%q", ok, data)
	}
}

func TestFileNameMatchesSpecConvention(t *testing.T) {
	if got, want := FileName(5, 7, 100), "reachability_5x7_100.smt2"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
