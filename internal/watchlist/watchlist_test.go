package watchlist

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Entry
		wantErr  bool
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:  "tickers with markets and comments",
			input: "# tech\nnvda\n0700.hk hk  # tencent\n\n  tsla US\n",
			expected: []Entry{
				{Ticker: "NVDA"},
				{Ticker: "0700.HK", Market: "HK"},
				{Ticker: "TSLA", Market: "US"},
			},
		},
		{
			name:     "comma separated",
			input:    "AAPL, US\n",
			expected: []Entry{{Ticker: "AAPL", Market: "US"}},
		},
		{
			name:     "duplicates keep first",
			input:    "NVDA\nAAPL\nnvda\n",
			expected: []Entry{{Ticker: "NVDA"}, {Ticker: "AAPL"}},
		},
		{
			name:    "too many fields",
			input:   "NVDA US extra\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEntryStock(t *testing.T) {
	stock, err := Entry{Ticker: "0700.HK", Market: "HK"}.Stock(models.LanguageCN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stock.Ticker != "0700.HK" || stock.Market != "HK" || stock.Language != models.LanguageCN {
		t.Errorf("unexpected stock context %+v", stock)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func waitForChange(t *testing.T, w *Watcher) []Entry {
	t.Helper()
	select {
	case entries := <-w.Changes():
		return entries
	case err := <-w.Errors():
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watchlist change")
	}
	return nil
}

func TestWatcherPublishesInitialAndChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	if err := os.WriteFile(path, []byte("NVDA\n"), 0o644); err != nil {
		t.Fatalf("failed to write watchlist: %v", err)
	}

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	initial := waitForChange(t, w)
	if len(initial) != 1 || initial[0].Ticker != "NVDA" {
		t.Fatalf("expected initial [NVDA], got %v", initial)
	}

	if err := os.WriteFile(path, []byte("AAPL\nTSLA US\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite watchlist: %v", err)
	}

	updated := waitForChange(t, w)
	expected := []Entry{{Ticker: "AAPL"}, {Ticker: "TSLA", Market: "US"}}
	if !reflect.DeepEqual(updated, expected) {
		t.Errorf("expected %v, got %v", expected, updated)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watchlist.txt")

	w, err := NewWatcher(path, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("MSFT\n"), 0o644); err != nil {
		t.Fatalf("failed to write sibling: %v", err)
	}

	select {
	case entries := <-w.Changes():
		t.Fatalf("expected no change for sibling file, got %v", entries)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "watchlist.txt"))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("expected second close to be a no-op, got %v", err)
	}
}
