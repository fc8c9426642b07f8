package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
	"github.com/rabiijabrour/workers-production-system/internal/events"
	"github.com/rabiijabrour/workers-production-system/internal/repository"
	apperrors "github.com/rabiijabrour/workers-production-system/pkg/util"
)

// WorkerService manages the worker roster.
type WorkerService struct {
	workers    repository.WorkerRepository
	dispatcher events.Dispatcher
}

// NewWorkerService builds the service.
func NewWorkerService(workers repository.WorkerRepository, dispatcher events.Dispatcher) *WorkerService {
	return &WorkerService{workers: workers, dispatcher: dispatcher}
}

// AddWorker registers a worker under the caller-assigned badge id.
func (s *WorkerService) AddWorker(ctx context.Context, id, name, department string) (*domain.Worker, error) {
	switch {
	case id == "":
		return nil, apperrors.NewValidationError("id is required", nil)
	case name == "":
		return nil, apperrors.NewValidationError("name is required", nil)
	case department == "":
		return nil, apperrors.NewValidationError("department is required", nil)
	}

	worker := &domain.Worker{ID: id, Name: name, Department: department}
	if err := s.workers.Create(ctx, worker); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.NewConflict("worker id already exists", map[string]any{"field": "id"})
		}
		return nil, apperrors.NewStoreError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventWorkerAdded, events.WorkerAddedPayload{
			WorkerID:   worker.ID,
			Name:       worker.Name,
			Department: worker.Department,
		}))
	}
	return worker, nil
}

// ListWorkers returns the full roster.
func (s *WorkerService) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return workers, nil
}

// RemoveWorker deletes a worker and, via the FK cascade, its production
// entries.
func (s *WorkerService) RemoveWorker(ctx context.Context, id string) error {
	if err := s.workers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("worker", nil)
		}
		return apperrors.NewStoreError(err)
	}
	return nil
}
