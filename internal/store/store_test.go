package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/agroscan/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "agroscan.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestPreferencesDefaults(t *testing.T) {
	st := openStore(t)
	prefs, err := st.LoadPreferences(context.Background())
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if prefs.Language != "en" || prefs.DarkMode {
		t.Fatalf("unexpected defaults: %+v", prefs)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	if err := st.SetLanguage(ctx, "az"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if err := st.SetDarkMode(ctx, true); err != nil {
		t.Fatalf("set dark mode: %v", err)
	}
	prefs, err := st.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if prefs.Language != "az" || !prefs.DarkMode {
		t.Fatalf("unexpected preferences: %+v", prefs)
	}

	if err := st.SetDarkMode(ctx, false); err != nil {
		t.Fatalf("clear dark mode: %v", err)
	}
	prefs, err = st.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("reload preferences: %v", err)
	}
	if prefs.DarkMode {
		t.Fatalf("dark mode must be cleared")
	}
}

func TestSetLanguageOverwrites(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	if err := st.SetLanguage(ctx, "az"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if err := st.SetLanguage(ctx, "en"); err != nil {
		t.Fatalf("overwrite language: %v", err)
	}
	prefs, err := st.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if prefs.Language != "en" {
		t.Fatalf("expected en, got %q", prefs.Language)
	}
}

func TestScanHistory(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := model.ScanRecord{
			Path:       "leaf.png",
			Prediction: "Healthy Leaf",
			Confidence: 90 + float64(i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if _, err := st.InsertScan(ctx, record); err != nil {
			t.Fatalf("insert scan %d: %v", i, err)
		}
	}

	records, err := st.ListScans(ctx, 3)
	if err != nil {
		t.Fatalf("list scans: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Confidence != 94 {
		t.Fatalf("expected newest first, got %+v", records[0])
	}

	all, err := st.ListScans(ctx, 0)
	if err != nil {
		t.Fatalf("list all scans: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 records, got %d", len(all))
	}
}
