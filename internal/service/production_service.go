package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
	"github.com/rabiijabrour/workers-production-system/internal/events"
	"github.com/rabiijabrour/workers-production-system/internal/repository"
	apperrors "github.com/rabiijabrour/workers-production-system/pkg/util"
)

const (
	foreignKeyViolation = "23503"

	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
	dashboardDays     = 7
)

// SummaryCache caches the dashboard aggregate. The Redis wrapper satisfies
// it; cache failures are logged and the service falls back to the store.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ProductionService records piece-counts and serves aggregations.
type ProductionService struct {
	productions repository.ProductionRepository
	cache       SummaryCache
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewProductionService builds the service.
func NewProductionService(productions repository.ProductionRepository, cache SummaryCache, dispatcher events.Dispatcher, logger *zap.Logger) *ProductionService {
	return &ProductionService{
		productions: productions,
		cache:       cache,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Record stores a piece-count for a worker, stamped with server time.
func (s *ProductionService) Record(ctx context.Context, workerID string, pieces int) (*domain.ProductionEntry, error) {
	if workerID == "" {
		return nil, apperrors.NewValidationError("workerId is required", nil)
	}
	if pieces <= 0 {
		return nil, apperrors.NewValidationError("pieces must be a positive number", nil)
	}

	entry := &domain.ProductionEntry{
		WorkerID:   workerID,
		Pieces:     pieces,
		RecordedAt: time.Now(),
	}
	if err := s.productions.Create(ctx, entry); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, apperrors.NewNotFound("worker", map[string]any{"workerId": workerID})
		}
		return nil, apperrors.NewStoreError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventProductionRecorded, events.ProductionRecordedPayload{
			EntryID:  entry.ID,
			WorkerID: entry.WorkerID,
			Pieces:   entry.Pieces,
		}))
	}
	return entry, nil
}

// ListEntries returns all entries joined with worker details, newest first.
func (s *ProductionService) ListEntries(ctx context.Context) ([]domain.ProductionEntry, error) {
	entries, err := s.productions.ListWithWorkers(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return entries, nil
}

// Summary returns per-worker totals and rounded averages.
func (s *ProductionService) Summary(ctx context.Context) ([]domain.WorkerSummary, error) {
	summaries, err := s.productions.SummaryByWorker(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return summaries, nil
}

// Dashboard returns the dashboard aggregate, served from cache when fresh.
// The front end polls each minute, so the cache TTL matches that cadence.
func (s *ProductionService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey); err == nil {
			var stats domain.DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.productions.DashboardStats(ctx, dashboardDays)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, string(encoded), dashboardCacheTTL); err != nil {
				s.logger.Debug("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}
