package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondsToMinutes(t *testing.T) {
	tests := []struct {
		seconds int64
		want    int64
	}{
		{seconds: -5, want: 0},
		{seconds: 0, want: 0},
		{seconds: 1, want: 1},
		{seconds: 59, want: 1},
		{seconds: 60, want: 1},
		{seconds: 61, want: 2},
		{seconds: 3600, want: 60},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SecondsToMinutes(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestRecordUsage_RoundsUpAndReturnsTotals(t *testing.T) {
	now := time.Date(2026, 5, 17, 23, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))
	var recorded models.UsageRecord
	repo := &mockUsageRepository{
		recordFn: func(_ context.Context, record models.UsageRecord) (models.UsageRecord, error) {
			recorded = record
			return record, nil
		},
		summaryFn: func(_ context.Context, userID int64, monthStart time.Time) (models.UsageSummary, error) {
			assert.Equal(t, int64(8), userID)
			assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), monthStart)
			return models.UsageSummary{TotalMinutes: 10, MonthMinutes: 3}, nil
		},
	}
	svc := NewUsageService(repo, logger.Nop())
	svc.(*usageService).now = func() time.Time { return now }

	summary, err := svc.RecordUsage(context.Background(), 8, models.UsageReport{Seconds: 61})

	require.NoError(t, err)
	assert.Equal(t, int64(2), recorded.Minutes)
	assert.Equal(t, int64(8), recorded.UserID)
	assert.Equal(t, models.UsageSummary{TotalMinutes: 10, MonthMinutes: 3}, summary)
}

func TestRecordUsage_NonPositiveSeconds(t *testing.T) {
	repo := &mockUsageRepository{
		recordFn: func(context.Context, models.UsageRecord) (models.UsageRecord, error) {
			t.Fatal("repository must not be called")
			return models.UsageRecord{}, nil
		},
	}
	svc := NewUsageService(repo, logger.Nop())

	_, err := svc.RecordUsage(context.Background(), 1, models.UsageReport{Seconds: 0})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestGetUsage_RepositoryError(t *testing.T) {
	dbErr := errors.New("boom")
	repo := &mockUsageRepository{
		summaryFn: func(context.Context, int64, time.Time) (models.UsageSummary, error) {
			return models.UsageSummary{}, dbErr
		},
	}
	svc := NewUsageService(repo, logger.Nop())

	_, err := svc.GetUsage(context.Background(), 1)

	assert.ErrorIs(t, err, dbErr)
}

func TestMonthStart_UsesUTC(t *testing.T) {
	local := time.Date(2026, 7, 1, 1, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))

	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), monthStart(local))
}
