// Package watchlist reads ticker watchlist files and watches them for changes.
package watchlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

// Entry is a single watchlist line.
type Entry struct {
	Ticker string
	Market string
}

// Stock converts the entry into a run input in the given language.
func (e Entry) Stock(lang models.Language) (models.StockContext, error) {
	return models.NewStockContext(e.Ticker, e.Market, lang)
}

// Parse reads one entry per line in the form "TICKER [MARKET]".
// Blank lines and text after '#' are ignored. Duplicate tickers keep
// their first position.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	seen := make(map[Entry]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected \"TICKER [MARKET]\", got %q", lineNo, strings.TrimSpace(line))
		}

		entry := Entry{Ticker: strings.ToUpper(fields[0])}
		if len(fields) == 2 {
			entry.Market = strings.ToUpper(fields[1])
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading watchlist: %w", err)
	}
	return entries, nil
}

// ReadFile parses the watchlist at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
