package locations

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrInvalidCoordinates is returned for coordinates outside WGS84 range.
var ErrInvalidCoordinates = errors.New("coordinates out of range")

// Service owns user coordinate storage.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates the service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SaveLocation validates and stores a user's coordinates.
func (s *Service) SaveLocation(ctx context.Context, telegramID int64, req UpdateLocationRequest) (*User, error) {
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, ErrInvalidCoordinates
	}

	user, err := s.repo.UpsertLocation(ctx, telegramID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stored user location",
		zap.Int64("telegram_id", telegramID),
		zap.Float64("lat", req.Latitude),
		zap.Float64("lon", req.Longitude))

	return user, nil
}

// GetLocation loads a user's stored coordinates.
func (s *Service) GetLocation(ctx context.Context, telegramID int64) (*User, error) {
	return s.repo.GetByTelegramID(ctx, telegramID)
}
