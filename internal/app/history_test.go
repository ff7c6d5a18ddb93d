package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/snapguard/internal/store"
)

func TestRunHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := st.CreateSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	req := &store.Request{
		CreatedAt: time.Now(),
		Target:    "vi",
		Suffix:    "ounceSnapFileMount",
		Tier:      store.TierUnprivileged,
		Status:    store.StatusCreated,
	}
	if _, err := st.InsertRequest(req, []string{"/srv/a.txt"}); err != nil {
		t.Fatalf("Failed to insert request: %v", err)
	}
	st.Close()

	savedDB, savedLimit := historyDB, historyLimit
	historyDB, historyLimit = dbPath, 0
	defer func() { historyDB, historyLimit = savedDB, savedLimit }()

	if err := runHistory(historyCmd, nil); err != nil {
		t.Fatalf("Failed to run history: %v", err)
	}
}

func TestRunHistoryWithPaths(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := st.CreateSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	req := &store.Request{
		CreatedAt: time.Now(),
		Target:    "myprog",
		Suffix:    "nightly",
		Tier:      store.TierEscalated,
		Status:    store.StatusFailed,
	}
	if _, err := st.InsertRequest(req, []string{"/srv/a.txt", "/srv/b.txt"}); err != nil {
		t.Fatalf("Failed to insert request: %v", err)
	}
	st.Close()

	savedDB, savedLimit, savedPaths := historyDB, historyLimit, historyPaths
	historyDB, historyLimit, historyPaths = dbPath, 0, true
	defer func() { historyDB, historyLimit, historyPaths = savedDB, savedLimit, savedPaths }()

	if err := runHistory(historyCmd, nil); err != nil {
		t.Fatalf("Failed to run history with paths: %v", err)
	}
}

func TestRunHistoryEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	savedDB, savedLimit := historyDB, historyLimit
	historyDB, historyLimit = dbPath, 0
	defer func() { historyDB, historyLimit = savedDB, savedLimit }()

	// A fresh database is created on demand and renders as empty history.
	if err := runHistory(historyCmd, nil); err != nil {
		t.Fatalf("Failed to run history on empty database: %v", err)
	}
}
