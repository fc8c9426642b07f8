package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
)

// ProductionRepository defines persistence access for piece-count entries.
type ProductionRepository interface {
	Create(ctx context.Context, entry *domain.ProductionEntry) error
	ListWithWorkers(ctx context.Context) ([]domain.ProductionEntry, error)
	SummaryByWorker(ctx context.Context) ([]domain.WorkerSummary, error)
	DashboardStats(ctx context.Context, days int) (*domain.DashboardStats, error)
}

type productionRepository struct {
	pool *pgxpool.Pool
}

// NewProductionRepository returns a Postgres-backed implementation.
func NewProductionRepository(pool *pgxpool.Pool) ProductionRepository {
	return &productionRepository{pool: pool}
}

func (r *productionRepository) Create(ctx context.Context, entry *domain.ProductionEntry) error {
	const query = `
        INSERT INTO productions (worker_id, pieces, recorded_at)
        VALUES ($1, $2, $3)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		entry.WorkerID,
		entry.Pieces,
		entry.RecordedAt,
	).Scan(&entry.ID)
}

func (r *productionRepository) ListWithWorkers(ctx context.Context) ([]domain.ProductionEntry, error) {
	const query = `
        SELECT p.id, p.worker_id, p.pieces, p.recorded_at, w.name, w.department
        FROM productions p
        JOIN workers w ON p.worker_id = w.id
        ORDER BY p.recorded_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ProductionEntry
	for rows.Next() {
		var entry domain.ProductionEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.WorkerID,
			&entry.Pieces,
			&entry.RecordedAt,
			&entry.WorkerName,
			&entry.Department,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SummaryByWorker keeps workers with no entries in the result, reporting
// zero totals for them.
func (r *productionRepository) SummaryByWorker(ctx context.Context) ([]domain.WorkerSummary, error) {
	const query = `
        SELECT w.id, w.name, w.department,
               COALESCE(SUM(p.pieces), 0)::bigint AS total,
               COALESCE(ROUND(AVG(p.pieces)), 0)::bigint AS average
        FROM workers w
        LEFT JOIN productions p ON w.id = p.worker_id
        GROUP BY w.id, w.name, w.department
        ORDER BY w.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.WorkerSummary
	for rows.Next() {
		var s domain.WorkerSummary
		if err := rows.Scan(&s.WorkerID, &s.Name, &s.Department, &s.Total, &s.Average); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DashboardStats aggregates today's total, the overall rounded average,
// the best single entry, and a per-day series over the trailing window.
func (r *productionRepository) DashboardStats(ctx context.Context, days int) (*domain.DashboardStats, error) {
	if days <= 0 {
		days = 7
	}

	const totalsQuery = `
        SELECT COALESCE(SUM(pieces) FILTER (WHERE recorded_at::date = CURRENT_DATE), 0)::bigint,
               COALESCE(ROUND(AVG(pieces)), 0)::bigint,
               COALESCE(MAX(pieces), 0)::bigint
        FROM productions`

	stats := &domain.DashboardStats{
		Dates:  []string{},
		Values: []int64{},
	}
	if err := r.pool.QueryRow(ctx, totalsQuery).Scan(&stats.TodayTotal, &stats.Average, &stats.Best); err != nil {
		return nil, err
	}

	const seriesQuery = `
        SELECT recorded_at::date AS day, SUM(pieces)::bigint
        FROM productions
        WHERE recorded_at >= CURRENT_DATE - $1::int
        GROUP BY day
        ORDER BY day`

	rows, err := r.pool.Query(ctx, seriesQuery, days-1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day time.Time
		var total int64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, err
		}
		stats.Dates = append(stats.Dates, day.Format("2006-01-02"))
		stats.Values = append(stats.Values, total)
	}
	return stats, rows.Err()
}
