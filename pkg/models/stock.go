package models

import (
	"errors"
	"strings"
)

// ErrEmptyTicker is returned when a stock context is built without a ticker.
var ErrEmptyTicker = errors.New("ticker is required")

// Language is the output language requested from the agents.
type Language string

const (
	// LanguageEN asks for English free text.
	LanguageEN Language = "EN"
	// LanguageCN asks for Simplified Chinese free text with English enum values.
	LanguageCN Language = "CN"
)

// Valid returns true if the language is a known value.
func (l Language) Valid() bool {
	switch l {
	case LanguageEN, LanguageCN:
		return true
	default:
		return false
	}
}

// StockContext is the immutable input every agent receives for a run.
type StockContext struct {
	// Ticker is the upper-cased instrument symbol (e.g. "NVDA", "0700.HK").
	Ticker string `json:"ticker" yaml:"ticker"`
	// Market optionally narrows the listing venue (e.g. "HK", "US").
	Market string `json:"market,omitempty" yaml:"market,omitempty"`
	// Language selects the free-text output language.
	Language Language `json:"language" yaml:"language"`
}

// NewStockContext normalizes user input into a StockContext.
// An empty language defaults to English.
func NewStockContext(ticker, market string, lang Language) (StockContext, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return StockContext{}, ErrEmptyTicker
	}
	if lang == "" {
		lang = LanguageEN
	}
	return StockContext{
		Ticker:   ticker,
		Market:   strings.ToUpper(strings.TrimSpace(market)),
		Language: lang,
	}, nil
}

// Display returns the ticker with its market suffix, if any.
func (s StockContext) Display() string {
	if s.Market == "" {
		return s.Ticker
	}
	return s.Ticker + " (" + s.Market + ")"
}
