package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/infra/queue"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/modules/repo"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

type CommentService interface {
	ListByProject(ctx context.Context, projectID string) ([]model.Comment, error)
	Create(ctx context.Context, projectID, content string, author *model.User) (*model.Comment, error)
}

type commentService struct {
	comments repo.CommentRepo
	projects repo.ProjectRepo
	events   queue.Publisher
	log      *zap.Logger
}

func NewCommentService(comments repo.CommentRepo, projects repo.ProjectRepo, events queue.Publisher, log *zap.Logger) CommentService {
	return &commentService{comments: comments, projects: projects, events: events, log: log}
}

func (s *commentService) ListByProject(ctx context.Context, projectID string) ([]model.Comment, error) {
	if projectID == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "projectId is required")
	}
	return s.comments.ListByProject(ctx, projectID)
}

// Create requires an existing project: a comment pointing at nothing
// is never persisted.
func (s *commentService) Create(ctx context.Context, projectID, content string, author *model.User) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "content is required")
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	c := &model.Comment{
		ProjectID: projectID,
		Author:    author.DisplayName,
		Content:   content,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "comment.created", map[string]any{
		"comment_id": c.ID,
		"project_id": projectID,
		"author_id":  author.ID,
	})
	return c, nil
}
