package dto

import (
	"time"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
)

// WorkerRequest payload for adding a worker.
type WorkerRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// WorkerResponse is the public view of a worker.
type WorkerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewWorkerResponse maps a domain worker.
func NewWorkerResponse(worker *domain.Worker) WorkerResponse {
	return WorkerResponse{
		ID:         worker.ID,
		Name:       worker.Name,
		Department: worker.Department,
		CreatedAt:  worker.CreatedAt,
	}
}

// NewWorkerResponses maps a slice of domain workers.
func NewWorkerResponses(workers []domain.Worker) []WorkerResponse {
	out := make([]WorkerResponse, 0, len(workers))
	for i := range workers {
		out = append(out, NewWorkerResponse(&workers[i]))
	}
	return out
}
