package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vitrine-app/vitrine-api/internal/modules/model"
)

// MockProjectRepo is a mock implementation of repo.ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepo) SetLikes(ctx context.Context, id string, likes int) error {
	args := m.Called(ctx, id, likes)
	return args.Error(0)
}

// MockLikeRepo is a mock implementation of repo.LikeRepo
type MockLikeRepo struct {
	mock.Mock
}

func (m *MockLikeRepo) Find(ctx context.Context, projectID, userID string) (*model.Like, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Like), args.Error(1)
}

func (m *MockLikeRepo) Toggle(ctx context.Context, projectID, userID string) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

// MockUserRepo is a mock implementation of repo.UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockCommentRepo is a mock implementation of repo.CommentRepo
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepo) ListByProject(ctx context.Context, projectID string) ([]model.Comment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

// fakeUserCache is an in-memory UserCache
type fakeUserCache struct {
	users map[string]*model.User
}

func newFakeUserCache() *fakeUserCache {
	return &fakeUserCache{users: map[string]*model.User{}}
}

func (c *fakeUserCache) GetUser(_ context.Context, id string) (*model.User, bool) {
	u, ok := c.users[id]
	return u, ok
}

func (c *fakeUserCache) SetUser(_ context.Context, u *model.User) {
	c.users[u.ID] = u
}

// fakeLock always grants the lock and records acquisitions
type fakeLock struct {
	keys []string
	busy bool
}

func (l *fakeLock) TryLock(_ context.Context, key string) (func(), bool) {
	if l.busy {
		return nil, false
	}
	l.keys = append(l.keys, key)
	return func() {}, true
}

// fakePublisher records published events
type fakePublisher struct {
	keys []string
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ any) {
	p.keys = append(p.keys, routingKey)
}
