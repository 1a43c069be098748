// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
)

type usageRepository struct {
	*DB
	logger *logger.Logger
}

func NewUsageRepository(db *DB, logger *logger.Logger) UsageRepository {
	logger.Debug().Msg("creating usage repository")
	return &usageRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *usageRepository) RecordUsage(ctx context.Context, record models.UsageRecord) (models.UsageRecord, error) {
	query, args, err := buildInsertUsageQuery(record)
	if err != nil {
		return models.UsageRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func() error {
		return r.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "usageRepository.RecordUsage").
			Int64("user_id", record.UserID).
			Int64("minutes", record.Minutes).
			Msg("failed to record usage")
		return models.UsageRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// UsageSummary sums all minutes of the user and the minutes recorded at or
// after monthStart.
func (r *usageRepository) UsageSummary(ctx context.Context, userID int64, monthStart time.Time) (models.UsageSummary, error) {
	var summary models.UsageSummary
	err := r.QueryRowContext(ctx, usageSummary, userID, monthStart).Scan(&summary.TotalMinutes, &summary.MonthMinutes)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "usageRepository.UsageSummary").
			Int64("user_id", userID).
			Msg("failed to sum usage")
		return models.UsageSummary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return summary, nil
}
