package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/mock"
	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_Login_UnknownEmailIsWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := service.NewAuthService(users, config.App{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "brainstorm",
		TokenDuration: time.Hour,
	}, logger.Nop())

	users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").
		Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(context.Background(), models.User{Email: " Ada@Example.com ", Password: "secret-pass"})

	assert.ErrorIs(t, err, service.ErrWrongPassword)
}

func TestAuthService_Login_StorageFailureIsNotWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := service.NewAuthService(users, config.App{TokenSignKey: "sign-key"}, logger.Nop())

	dbErr := errors.New("too many connections")
	users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(models.User{}, dbErr)

	_, err := svc.Login(context.Background(), models.User{Email: "ada@example.com", Password: "secret-pass"})

	require.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, service.ErrWrongPassword)
}

func TestUsageService_RecordUsage_RoundsUpAndReturnsTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	usage := mock.NewMockUsageRepository(ctrl)
	svc := service.NewUsageService(usage, logger.Nop())

	gomock.InOrder(
		usage.EXPECT().RecordUsage(gomock.Any(), models.UsageRecord{UserID: 3, Minutes: 2}).
			DoAndReturn(func(_ context.Context, r models.UsageRecord) (models.UsageRecord, error) {
				r.ID = 11
				return r, nil
			}),
		usage.EXPECT().UsageSummary(gomock.Any(), int64(3), gomock.Any()).
			Return(models.UsageSummary{TotalMinutes: 12, MonthMinutes: 5}, nil),
	)

	summary, err := svc.RecordUsage(context.Background(), 3, models.UsageReport{Seconds: 61})

	require.NoError(t, err)
	assert.Equal(t, models.UsageSummary{TotalMinutes: 12, MonthMinutes: 5}, summary)
}

func TestUsageService_RecordUsage_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	usage := mock.NewMockUsageRepository(ctrl)
	svc := service.NewUsageService(usage, logger.Nop())

	usage.EXPECT().RecordUsage(gomock.Any(), gomock.Any()).Return(models.UsageRecord{}, errors.New("disk full"))

	_, err := svc.RecordUsage(context.Background(), 3, models.UsageReport{Seconds: 30})

	assert.ErrorContains(t, err, "usage recording failed")
}
