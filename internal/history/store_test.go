package history_test

import (
	"context"
	"testing"

	"beatmark/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func sampleRecord(source string) history.Record {
	return history.Record{
		SourcePath:      source,
		OutputPath:      source + "_beatmap.fcpxml",
		BeatCount:       4,
		Tempo:           120,
		SampleRate:      48000,
		DurationSeconds: 2.0,
		FrameRate:       30,
	}
}

func TestAddAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, sampleRecord("/music/a.wav"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.ID == "" {
		t.Error("Add returned empty ID")
	}
	if first.CreatedAt.IsZero() {
		t.Error("Add returned zero CreatedAt")
	}

	if _, err := store.Add(ctx, sampleRecord("/music/b.wav")); err != nil {
		t.Fatalf("Add second: %v", err)
	}

	records, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Recent returned %d records, want 2", len(records))
	}
	if records[0].SourcePath != "/music/b.wav" {
		t.Errorf("newest record source = %q, want /music/b.wav", records[0].SourcePath)
	}
	if records[1].Tempo != 120 || records[1].BeatCount != 4 {
		t.Errorf("record round trip = tempo %v beats %d, want 120/4",
			records[1].Tempo, records[1].BeatCount)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, source := range []string{"/music/a.wav", "/music/b.wav", "/music/c.wav"} {
		if _, err := store.Add(ctx, sampleRecord(source)); err != nil {
			t.Fatalf("Add %s: %v", source, err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Recent(2) returned %d records", len(records))
	}
}

func TestBySource(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, sampleRecord("/music/a.wav")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, sampleRecord("/music/a.wav")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, sampleRecord("/music/b.wav")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := store.BySource(ctx, "/music/a.wav")
	if err != nil {
		t.Fatalf("BySource: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("BySource returned %d records, want 2", len(records))
	}
	for _, record := range records {
		if record.SourcePath != "/music/a.wav" {
			t.Errorf("BySource returned record for %q", record.SourcePath)
		}
	}
}

func TestClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, sampleRecord("/music/a.wav")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 1 {
		t.Errorf("Clear removed %d records, want 1", removed)
	}

	records, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("store not empty after Clear: %d records", len(records))
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := history.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Add(ctx, sampleRecord("/music/a.wav")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("reopened store has %d records, want 1", len(records))
	}
}
