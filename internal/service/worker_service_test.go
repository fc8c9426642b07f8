package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
)

type fakeWorkerRepo struct {
	workers map[string]*domain.Worker
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: make(map[string]*domain.Worker)}
}

func (f *fakeWorkerRepo) Create(ctx context.Context, worker *domain.Worker) error {
	if _, ok := f.workers[worker.ID]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "workers_pkey"}
	}
	clone := *worker
	f.workers[worker.ID] = &clone
	return nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	if worker, ok := f.workers[id]; ok {
		clone := *worker
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWorkerRepo) List(ctx context.Context) ([]domain.Worker, error) {
	var out []domain.Worker
	for _, worker := range f.workers {
		out = append(out, *worker)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.workers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.workers, id)
	return nil
}

func TestAddWorker_Validation(t *testing.T) {
	svc := NewWorkerService(newFakeWorkerRepo(), nil)

	_, err := svc.AddWorker(context.Background(), "", "Alice", "Sewing")
	assert.Equal(t, "VALIDATION_FAILED", domainErr(t, err).Code)

	_, err = svc.AddWorker(context.Background(), "w1", "", "Sewing")
	assert.Equal(t, "VALIDATION_FAILED", domainErr(t, err).Code)

	_, err = svc.AddWorker(context.Background(), "w1", "Alice", "")
	assert.Equal(t, "VALIDATION_FAILED", domainErr(t, err).Code)
}

func TestAddWorker_DuplicateBadgeID(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo, nil)

	_, err := svc.AddWorker(context.Background(), "w1", "Alice", "Sewing")
	require.NoError(t, err)

	_, err = svc.AddWorker(context.Background(), "w1", "Bob", "Cutting")
	assert.Equal(t, "CONFLICT", domainErr(t, err).Code)
}

func TestRemoveWorker_Missing(t *testing.T) {
	svc := NewWorkerService(newFakeWorkerRepo(), nil)

	err := svc.RemoveWorker(context.Background(), "ghost")
	assert.Equal(t, "NOT_FOUND", domainErr(t, err).Code)
}

func TestRemoveWorker_Success(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo, nil)

	_, err := svc.AddWorker(context.Background(), "w1", "Alice", "Sewing")
	require.NoError(t, err)
	require.NoError(t, svc.RemoveWorker(context.Background(), "w1"))

	workers, err := svc.ListWorkers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, workers)
}
