package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runlog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := Run{
		ID:             "run-1",
		InputPath:      "/media/clip.mp4",
		SourceLanguage: "en-US",
		TargetLanguage: "es-ES",
		StartedAt:      time.Now().UTC().Add(-time.Minute),
	}
	if err := store.RecordStart(ctx, first); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	if err := store.RecordStart(ctx, Run{
		ID: "run-2", InputPath: "/media/talk.wav",
		SourceLanguage: "en-US", TargetLanguage: "pt-BR",
	}); err != nil {
		t.Fatalf("RecordStart second: %v", err)
	}

	if err := store.RecordFinish(ctx, "run-1", StatusCompleted, "/out/clip_dubbed.mp4", ""); err != nil {
		t.Fatalf("RecordFinish: %v", err)
	}

	runs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].ID != "run-2" || runs[1].ID != "run-1" {
		t.Fatalf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
	if runs[1].Status != StatusCompleted || runs[1].OutputPath != "/out/clip_dubbed.mp4" {
		t.Fatalf("unexpected finished run: %+v", runs[1])
	}
	if runs[1].FinishedAt == nil {
		t.Fatal("expected finished_at to be set")
	}
	if runs[0].Status != StatusRunning || runs[0].FinishedAt != nil {
		t.Fatalf("unexpected running run: %+v", runs[0])
	}
}

func TestRecordFinishUnknownRun(t *testing.T) {
	store := openTestStore(t)
	if err := store.RecordFinish(context.Background(), "missing", StatusFailed, "", "boom"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runlog.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.RecordStart(context.Background(), Run{
		ID: "run-1", InputPath: "/a.mp4", SourceLanguage: "en", TargetLanguage: "de",
	}); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.List(context.Background(), 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-1" {
		t.Fatalf("unexpected runs after reopen: %+v", runs)
	}
}
