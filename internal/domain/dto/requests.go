package dto

import "github.com/investimentigrugno/fluxxo/internal/domain/models"

// ScanRequest is the body of POST /api/scan. An empty body is valid.
type ScanRequest struct {
	FilterType string `json:"filterType" example:"top_score" enums:"all,top_score,value,growth,dividend,momentum"`
}

// TickerRequest is the body of the single-entity endpoints.
type TickerRequest struct {
	Ticker string `json:"ticker" binding:"required" example:"NASDAQ:AAPL"`
}

// AnalyzeRequest is the body of POST /api/screener/analyze-fundamental.
// When Data is omitted the fundamentals are fetched first.
type AnalyzeRequest struct {
	Ticker string     `json:"ticker" binding:"required" example:"NASDAQ:AAPL"`
	Data   models.Row `json:"data,omitempty" swaggertype:"object"`
}
