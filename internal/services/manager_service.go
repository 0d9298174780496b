package services

import (
	"context"
	"time"

	"ehandout_backend/internal/appErrors"
	"ehandout_backend/internal/repositories"
	"ehandout_backend/internal/services/dto"
)

// ManagerService handles administrative account activation.
type ManagerService interface {
	// VerifyActivationCode resolves a one-time activation code to the
	// manager it was issued for. Expired codes answer the same as
	// unknown ones, so the endpoint leaks nothing about which codes exist.
	VerifyActivationCode(ctx context.Context, req *dto.VerifyActivationCodeRequest) (*dto.ManagerActivationResponse, error)
}

type managerServiceImpl struct {
	managerRepo repositories.ManagerRepository
}

func NewManagerService(managerRepo repositories.ManagerRepository) ManagerService {
	return &managerServiceImpl{managerRepo: managerRepo}
}

func (s *managerServiceImpl) VerifyActivationCode(ctx context.Context, req *dto.VerifyActivationCodeRequest) (*dto.ManagerActivationResponse, error) {
	manager, err := s.managerRepo.FindByActivationCode(ctx, req.ActivationCode)
	if err != nil {
		if appErrors.Is(err, repositories.ErrManagerNotFound) {
			return nil, appErrors.BadRequest("Invalid activation code.")
		}
		return nil, appErrors.InternalError(err)
	}
	if time.Now().After(manager.Expiry) {
		return nil, appErrors.BadRequest("Invalid activation code.")
	}

	return &dto.ManagerActivationResponse{
		AdminID: manager.AdminID,
		Name:    manager.Name,
		Email:   manager.Email,
		Role:    string(manager.Role),
	}, nil
}
