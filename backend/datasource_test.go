package backend

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func nextSession(t *testing.T, sessions <-chan Session, accept func(Session) bool) Session {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-sessions:
			if accept(s) {
				return s
			}
		case <-timeout:
			t.Fatalf("timed out waiting for session")
			return Session{}
		}
	}
}

func TestDatasourceReloadsOnWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds, err := NewDatasource(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a\n1\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ds.Open(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sessions := ds.Stream(ctx)
	first := nextSession(t, sessions, func(s Session) bool { return s.Data.Initialized() })
	if expected := []float64{1, 2}; !slices.Equal(first.Data.Series[0].Values(), expected) {
		t.Errorf("expected %v, got %v", expected, first.Data.Series[0].Values())
	}

	if err := os.WriteFile(path, []byte("a\n1\n2\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	second := nextSession(t, sessions, func(s Session) bool {
		return s.Version > first.Version && s.Data.Len() == 3
	})
	if second.Err != nil {
		t.Errorf("unexpected session error: %v", second.Err)
	}
}

func TestDatasourceLoadFromStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds, err := NewDatasource(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ds.LoadFromStream(io.NopCloser(strings.NewReader("[1, 2, 3]")), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := ds.Current()
	if s.Path != "" || s.Data.Len() != 3 || s.Version != 1 {
		t.Errorf("unexpected session %+v", s)
	}

	if err := ds.LoadFromStream(io.NopCloser(strings.NewReader("{")), "broken.json"); err == nil {
		t.Errorf("expected an error")
	}
	if s := ds.Current(); s.Err == nil || s.Version != 2 {
		t.Errorf("expected the failure to be published, got %+v", s)
	}
}
