package locations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) UpsertLocation(ctx context.Context, telegramID int64, req UpdateLocationRequest) (*User, error) {
	args := m.Called(ctx, telegramID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestSaveLocation(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, zap.NewNop())

	req := UpdateLocationRequest{Latitude: 53.2, Longitude: 50.1}
	lat, lon := 53.2, 50.1
	repo.On("UpsertLocation", mock.Anything, int64(42), req).
		Return(&User{ID: 1, TelegramID: 42, Latitude: &lat, Longitude: &lon}, nil)

	user, err := service.SaveLocation(context.Background(), 42, req)
	require.NoError(t, err)

	assert.Equal(t, int64(42), user.TelegramID)
	require.NotNil(t, user.Latitude)
	assert.InDelta(t, 53.2, *user.Latitude, 1e-9)
	repo.AssertExpectations(t)
}

func TestSaveLocationRejectsOutOfRangeCoordinates(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, zap.NewNop())

	cases := []UpdateLocationRequest{
		{Latitude: 91, Longitude: 0},
		{Latitude: -91, Longitude: 0},
		{Latitude: 0, Longitude: 181},
		{Latitude: 0, Longitude: -181},
	}

	for _, req := range cases {
		user, err := service.SaveLocation(context.Background(), 42, req)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	}
	repo.AssertNotCalled(t, "UpsertLocation", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetLocationNotFound(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo, zap.NewNop())

	repo.On("GetByTelegramID", mock.Anything, int64(7)).Return(nil, ErrNotFound)

	user, err := service.GetLocation(context.Background(), 7)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
}
