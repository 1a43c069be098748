// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/models"
)

type usageService struct {
	repository store.UsageRepository
	now        func() time.Time

	logger *logger.Logger
}

func NewUsageService(repository store.UsageRepository, logger *logger.Logger) UsageService {
	return &usageService{
		repository: repository,
		now:        time.Now,
		logger:     logger,
	}
}

// RecordUsage stores the report rounded up to whole minutes and returns the
// updated totals.
func (s *usageService) RecordUsage(ctx context.Context, userID int64, report models.UsageReport) (models.UsageSummary, error) {
	if report.Seconds <= 0 {
		return models.UsageSummary{}, ErrInvalidDataProvided
	}

	record := models.UsageRecord{
		UserID:  userID,
		Minutes: SecondsToMinutes(report.Seconds),
	}
	if _, err := s.repository.RecordUsage(ctx, record); err != nil {
		return models.UsageSummary{}, fmt.Errorf("usage recording failed: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("seconds", report.Seconds).
		Int64("minutes", record.Minutes).
		Msg("usage recorded")

	return s.GetUsage(ctx, userID)
}

func (s *usageService) GetUsage(ctx context.Context, userID int64) (models.UsageSummary, error) {
	summary, err := s.repository.UsageSummary(ctx, userID, monthStart(s.now()))
	if err != nil {
		return models.UsageSummary{}, fmt.Errorf("usage lookup failed: %w", err)
	}

	return summary, nil
}

// SecondsToMinutes rounds up: 1..60 seconds is one minute.
func SecondsToMinutes(seconds int64) int64 {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}

func monthStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
