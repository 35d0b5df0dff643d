package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/alphaagent/pkg/models"
)

func TestParseStock(t *testing.T) {
	tests := []struct {
		input      string
		wantTicker string
		wantMarket string
		wantErr    bool
	}{
		{"nvda", "NVDA", "", false},
		{"  0700.hk   hk ", "0700.HK", "HK", false},
		{"", "", "", true},
		{"   ", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stock, err := ParseStock(tt.input, models.LanguageCN)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stock.Ticker != tt.wantTicker || stock.Market != tt.wantMarket {
				t.Errorf("expected %s/%s, got %s/%s", tt.wantTicker, tt.wantMarket, stock.Ticker, stock.Market)
			}
			if stock.Language != models.LanguageCN {
				t.Errorf("expected language CN, got %s", stock.Language)
			}
		})
	}
}

func TestStockInput_SetWidth(t *testing.T) {
	field := NewStockInput(models.LanguageEN)
	field.SetWidth(120)

	if field.width != 120 {
		t.Errorf("expected width 120, got %d", field.width)
	}
	if field.input.Width != 116 {
		t.Errorf("expected input width 116, got %d", field.input.Width)
	}
}

func TestStockInput_EnterSubmits(t *testing.T) {
	field := NewStockInput(models.LanguageEN)
	field.input.SetValue("tsla us")

	field, cmd := field.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg, ok := cmd().(StockSubmittedMsg)
	if !ok {
		t.Fatalf("expected StockSubmittedMsg, got %T", cmd())
	}
	if msg.Stock.Ticker != "TSLA" || msg.Stock.Market != "US" {
		t.Errorf("expected TSLA/US, got %s/%s", msg.Stock.Ticker, msg.Stock.Market)
	}
	if field.Value() != "" {
		t.Errorf("expected input to reset, got %q", field.Value())
	}
}

func TestStockInput_EnterEmptyShowsError(t *testing.T) {
	field := NewStockInput(models.LanguageEN)

	field, cmd := field.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for empty input")
	}
	if !strings.Contains(field.View(), models.ErrEmptyTicker.Error()) {
		t.Errorf("expected empty ticker error in view, got:\n%s", field.View())
	}
}

func TestStockInput_Typing(t *testing.T) {
	field := NewStockInput(models.LanguageEN)

	field, _ = field.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("AMD")})
	if field.Value() != "AMD" {
		t.Errorf("expected typed value AMD, got %q", field.Value())
	}
}
