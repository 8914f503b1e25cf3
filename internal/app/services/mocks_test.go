package services

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/studyhub/internal/app/gateway"
	"github.com/yigit/studyhub/internal/app/models"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) session(args mock.Arguments) (*gateway.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Session), args.Error(1)
}

func (m *mockGateway) SignIn(ctx context.Context, email, password string) (*gateway.Session, error) {
	return m.session(m.Called(ctx, email, password))
}

func (m *mockGateway) SignUp(ctx context.Context, email, password, name string) (*gateway.Session, error) {
	return m.session(m.Called(ctx, email, password, name))
}

func (m *mockGateway) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *mockGateway) GetSession(ctx context.Context, accessToken string) (*gateway.Session, error) {
	return m.session(m.Called(ctx, accessToken))
}

func (m *mockGateway) OnAuthStateChange(listener gateway.Listener) func() {
	return func() {}
}

func (m *mockGateway) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockGateway) ExchangeRecoveryToken(ctx context.Context, token string) (*gateway.Session, error) {
	return m.session(m.Called(ctx, token))
}

func (m *mockGateway) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	return m.Called(ctx, accessToken, newPassword).Error(0)
}

func (m *mockGateway) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockGateway) UpdateProfile(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type memoryStorage struct {
	saved   []string
	deleted []string
}

func (s *memoryStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	url := "uploads/" + subPath + "/" + fileHeader.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *memoryStorage) DeleteFile(fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}
