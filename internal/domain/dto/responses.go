package dto

import (
	"github.com/investimentigrugno/fluxxo/internal/analysis"
	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

// ScanResponse is returned by the scan endpoints.
type ScanResponse struct {
	Stocks  []models.Row `json:"stocks" swaggertype:"array,object"`
	Count   int          `json:"count" example:"42"`
	Filter  string       `json:"filter,omitempty" example:"top_score"`
	Source  string       `json:"source,omitempty" example:"tradingview"`
	Message string       `json:"message,omitempty" example:"no results for the applied filters"`
}

// FundamentalResponse wraps the single sanitized row of a lookup.
type FundamentalResponse struct {
	FundamentalData models.Row `json:"fundamentalData" swaggertype:"object"`
}

// TickerInfoResponse is returned by POST /api/ticker/info.
type TickerInfoResponse struct {
	Price    float64 `json:"price" example:"227.52"`
	Currency string  `json:"currency" example:"USD"`
	Name     string  `json:"name" example:"Apple Inc."`
	Sector   string  `json:"sector" example:"Electronic Technology"`
}

// AnalysisResponse wraps a rule-based fundamental analysis.
type AnalysisResponse struct {
	Analysis analysis.Analysis `json:"analysis"`
}

// HistoryResponse lists recent scan runs.
type HistoryResponse struct {
	Runs  []models.ScanRun `json:"runs"`
	Count int              `json:"count" example:"20"`
}

// NewScanResponse converts a service result; stocks is always a JSON array.
func NewScanResponse(res models.ScanResult, source string) ScanResponse {
	stocks := res.Stocks
	if stocks == nil {
		stocks = []models.Row{}
	}
	return ScanResponse{
		Stocks: stocks,
		Count:  len(stocks),
		Filter: string(res.Filter),
		Source: source,
	}
}
