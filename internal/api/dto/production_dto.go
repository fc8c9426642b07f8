package dto

import (
	"time"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
)

// ProductionRequest payload for recording a piece-count.
type ProductionRequest struct {
	WorkerID string `json:"workerId"`
	Pieces   int    `json:"pieces"`
}

// ProductionResponse is a recorded entry joined with worker details.
type ProductionResponse struct {
	ID         int64     `json:"id"`
	WorkerID   string    `json:"workerId"`
	WorkerName string    `json:"workerName"`
	Department string    `json:"department"`
	Pieces     int       `json:"pieces"`
	Date       time.Time `json:"date"`
}

// NewProductionResponses maps a slice of entries.
func NewProductionResponses(entries []domain.ProductionEntry) []ProductionResponse {
	out := make([]ProductionResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ProductionResponse{
			ID:         entry.ID,
			WorkerID:   entry.WorkerID,
			WorkerName: entry.WorkerName,
			Department: entry.Department,
			Pieces:     entry.Pieces,
			Date:       entry.RecordedAt,
		})
	}
	return out
}

// SummaryRow is the per-worker aggregate row.
type SummaryRow struct {
	WorkerID   string `json:"workerId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Total      int64  `json:"total"`
	Average    int64  `json:"average"`
}

// NewSummaryRows maps worker summaries.
func NewSummaryRows(summaries []domain.WorkerSummary) []SummaryRow {
	out := make([]SummaryRow, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, SummaryRow{
			WorkerID:   s.WorkerID,
			Name:       s.Name,
			Department: s.Department,
			Total:      s.Total,
			Average:    s.Average,
		})
	}
	return out
}
