package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/techstore3d/backend/internal/core/domain/status"
	"github.com/techstore3d/backend/internal/core/ports"
)

type StatusService struct {
	checks ports.StatusRepository
	logger *logrus.Logger
}

func NewStatusService(checks ports.StatusRepository, logger *logrus.Logger) ports.StatusService {
	return &StatusService{checks: checks, logger: logger}
}

func (s *StatusService) CreateStatusCheck(ctx context.Context, req *status.CreateRequest) (*status.Check, error) {
	c := status.New(req)
	if err := s.checks.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *StatusService) ListStatusChecks(ctx context.Context, limit int) ([]*status.Check, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	return s.checks.List(ctx, limit)
}
