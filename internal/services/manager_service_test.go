package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehandout_backend/internal/appErrors"
	"ehandout_backend/internal/models"
	"ehandout_backend/internal/services/dto"
)

func newManagerFixture(expiry time.Time) ManagerService {
	repo := &fakeManagerRepo{managers: map[string]*models.Manager{
		"CODE-123": {
			BaseModel: models.BaseModel{ID: "mgr-1"},
			AdminID:   "A-1",
			Name:      "Sam Doe",
			Email:     "sam@example.com",
			Role:      models.ManagerRoleAdminstrator,
			Expiry:    expiry,
		},
	}}
	return NewManagerService(repo)
}

func TestVerifyActivationCode(t *testing.T) {
	svc := newManagerFixture(time.Now().Add(time.Hour))

	resp, err := svc.VerifyActivationCode(context.Background(), &dto.VerifyActivationCodeRequest{ActivationCode: "CODE-123"})
	require.NoError(t, err)
	assert.Equal(t, "A-1", resp.AdminID)
	assert.Equal(t, "sam@example.com", resp.Email)
}

func TestVerifyActivationCodeUnknown(t *testing.T) {
	svc := newManagerFixture(time.Now().Add(time.Hour))

	_, err := svc.VerifyActivationCode(context.Background(), &dto.VerifyActivationCodeRequest{ActivationCode: "NOPE"})
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, "Invalid activation code.", appErr.Message)
}

func TestVerifyActivationCodeExpiredAnswersLikeUnknown(t *testing.T) {
	svc := newManagerFixture(time.Now().Add(-time.Hour))

	_, err := svc.VerifyActivationCode(context.Background(), &dto.VerifyActivationCodeRequest{ActivationCode: "CODE-123"})
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, "Invalid activation code.", appErr.Message)
}
