package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"EstatePulse/internal/domain/models"
	"EstatePulse/internal/domain/repository"
	"EstatePulse/pkg/clickhouse"
	applogger "EstatePulse/pkg/logger"
)

var historySchema = []string{
	`CREATE TABLE IF NOT EXISTS predictions (
		ts            DateTime64(3, 'UTC'),
		location      LowCardinality(String),
		total_sqft    Float64,
		bhk           UInt8,
		price_per_sqft Float64,
		total_price   Float64,
		source        LowCardinality(String)
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMM(ts)
	ORDER BY (location, ts)
	TTL toDateTime(ts) + INTERVAL 90 DAY`,
}

// ClickHouseHistory persists served predictions and answers the history
// endpoint. The table doubles as training data for model refreshes.
type ClickHouseHistory struct {
	client *clickhouse.Client
	logger *applogger.Logger
}

func NewClickHouseHistory(client *clickhouse.Client, logger *applogger.Logger) (*ClickHouseHistory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, historySchema); err != nil {
		return nil, fmt.Errorf("history schema: %w", err)
	}
	return &ClickHouseHistory{client: client, logger: logger}, nil
}

func (h *ClickHouseHistory) Store(ctx context.Context, rec *models.PredictionRecord) error {
	const q = `INSERT INTO predictions
		(ts, location, total_sqft, bhk, price_per_sqft, total_price, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := h.client.DB().ExecContext(ctx, q,
		rec.Timestamp, rec.Location, rec.TotalSqft, rec.BHK,
		rec.PricePerSqft, rec.TotalPrice, rec.Source)
	if err != nil {
		return fmt.Errorf("store prediction: %w", err)
	}
	return nil
}

// Recent returns the newest predictions, optionally filtered by location
// and time window. A zero from/to leaves that bound open.
func (h *ClickHouseHistory) Recent(ctx context.Context, location string, from, to time.Time, limit int) ([]*models.PredictionRecord, error) {
	var (
		conds []string
		args  []interface{}
	)
	if location != "" {
		conds = append(conds, "location = ?")
		args = append(args, location)
	}
	if !from.IsZero() {
		conds = append(conds, "ts >= ?")
		args = append(args, from)
	}
	if !to.IsZero() {
		conds = append(conds, "ts <= ?")
		args = append(args, to)
	}

	q := `SELECT ts, location, total_sqft, bhk, price_per_sqft, total_price, source
		FROM predictions`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY ts DESC LIMIT ?"
	args = append(args, limit)

	rows, err := h.client.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*models.PredictionRecord
	for rows.Next() {
		rec := &models.PredictionRecord{}
		if err := rows.Scan(&rec.Timestamp, &rec.Location, &rec.TotalSqft,
			&rec.BHK, &rec.PricePerSqft, &rec.TotalPrice, &rec.Source); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return out, nil
}

func (h *ClickHouseHistory) Health(ctx context.Context) error {
	return h.client.Health(ctx)
}

func (h *ClickHouseHistory) Close() error {
	return h.client.Close()
}

var _ repository.HistoryStore = (*ClickHouseHistory)(nil)
