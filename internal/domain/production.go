package domain

import "time"

// ProductionEntry is a recorded piece-count for a worker.
type ProductionEntry struct {
	ID         int64
	WorkerID   string
	Pieces     int
	RecordedAt time.Time

	// Joined from the workers table on reads.
	WorkerName string
	Department string
}

// WorkerSummary aggregates production per worker.
type WorkerSummary struct {
	WorkerID   string
	Name       string
	Department string
	Total      int64
	Average    int64
}

// DashboardStats feeds the dashboard cards and the daily chart.
type DashboardStats struct {
	TodayTotal int64    `json:"todayTotal"`
	Average    int64    `json:"average"`
	Best       int64    `json:"best"`
	Dates      []string `json:"dates"`
	Values     []int64  `json:"values"`
}
