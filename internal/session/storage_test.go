package session

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	storage, err := OpenSQLiteStorage(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStorage: %v", err)
	}
	defer storage.Close()

	ctx := context.Background()

	creds, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty storage: %v", err)
	}
	if creds != (Credentials{}) {
		t.Fatalf("expected empty credentials, got %+v", creds)
	}

	want := Credentials{Token: "tok-1", DisplayName: "A B"}
	if err := storage.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}

	// Save again overwrites rather than duplicating keys.
	want.Token = "tok-2"
	if err := storage.Save(ctx, want); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, _ = storage.Load(ctx)
	if got.Token != "tok-2" {
		t.Fatalf("expected overwritten token, got %+v", got)
	}

	if err := storage.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ = storage.Load(ctx)
	if got != (Credentials{}) {
		t.Fatalf("expected cleared credentials, got %+v", got)
	}
}

func TestSQLiteStorageSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	first, err := OpenSQLiteStorage(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStorage: %v", err)
	}
	if err := first.Save(ctx, Credentials{Token: "tok", DisplayName: "A B"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first.Close()

	second, err := OpenSQLiteStorage(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	creds, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if creds.Token != "tok" || creds.DisplayName != "A B" {
		t.Fatalf("session did not survive reopen: %+v", creds)
	}
}
