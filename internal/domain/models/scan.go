package models

import "time"

// ScanResult is the outcome of a scan query after sanitization.
//
// Stocks is never nil so it serializes as [] on empty results.
type ScanResult struct {
	Stocks []Row
	Count  int
	Filter FilterType
}

// TickerInfo is the compact quote returned by /api/ticker/info.
type TickerInfo struct {
	Ticker   string  `json:"ticker" example:"NASDAQ:AAPL"`
	Price    float64 `json:"price" example:"227.52"`
	Currency string  `json:"currency" example:"USD"`
	Name     string  `json:"name" example:"Apple Inc."`
	Sector   string  `json:"sector" example:"Electronic Technology"`
}

// ScanRun is one entry of the scan audit log.
type ScanRun struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	FilterType string    `json:"filter_type" example:"top_score"`
	RowCount   int       `json:"row_count" example:"42"`
	DurationMS int64     `json:"duration_ms" example:"812"`
	Status     string    `json:"status" example:"ok"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	ScanStatusOK    = "ok"
	ScanStatusError = "error"
)
