package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vitrine-app/vitrine-api/internal/middleware"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func TestUserHandler_List(t *testing.T) {
	admin := &model.User{ID: "recAdmin", Username: "root", Role: model.RoleAdmin}
	member := &model.User{ID: "recUser1", Username: "alice", Role: model.RoleUser}

	tests := []struct {
		name           string
		viewer         *model.User
		setup          func(*MockUserService)
		expectedStatus int
	}{
		{
			name:   "admin sees the roster",
			viewer: admin,
			setup: func(svc *MockUserService) {
				svc.On("List", mock.Anything).Return([]model.User{*admin, *member}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "member is refused",
			viewer:         member,
			setup:          func(svc *MockUserService) {},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			tt.setup(svc)

			r := setupRouter()
			h := NewUserHandler(svc)
			r.GET("/api/users", asUser(tt.viewer), middleware.RequireAdmin(), h.List)

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
