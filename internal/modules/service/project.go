package service

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/vitrine-app/vitrine-api/internal/infra/queue"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/modules/repo"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
	"github.com/vitrine-app/vitrine-api/internal/pkg/query"
)

// ToggleLock serializes like toggles per (project, user) pair.
// Implemented by cache.Lock.
type ToggleLock interface {
	TryLock(ctx context.Context, key string) (release func(), ok bool)
}

type ProjectService interface {
	List(ctx context.Context, spec query.Spec) ([]model.Project, error)
	Facets(ctx context.Context) (query.Facets, error)
	// Get hides hidden projects from everyone but their author and
	// admins; to other callers they do not exist.
	Get(ctx context.Context, id string, viewer *model.User) (*model.Project, error)
	Create(ctx context.Context, in CreateProjectInput, author *model.User) (*model.Project, error)
	Update(ctx context.Context, id string, in UpdateProjectInput, actor *model.User) (*model.Project, error)
	Delete(ctx context.Context, id string, actor *model.User) error
	ToggleLike(ctx context.Context, id string, user *model.User) (*LikeResult, error)
}

type projectService struct {
	projects repo.ProjectRepo
	likes    repo.LikeRepo
	lock     ToggleLock
	events   queue.Publisher
	log      *zap.Logger
}

func NewProjectService(projects repo.ProjectRepo, likes repo.LikeRepo, lock ToggleLock, events queue.Publisher, log *zap.Logger) ProjectService {
	return &projectService{
		projects: projects,
		likes:    likes,
		lock:     lock,
		events:   events,
		log:      log,
	}
}

func (s *projectService) List(ctx context.Context, spec query.Spec) ([]model.Project, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(all, spec), nil
}

func (s *projectService) Facets(ctx context.Context) (query.Facets, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return query.Facets{}, err
	}
	// facets describe the public catalogue only
	return query.CollectFacets(query.Filter(all, query.Spec{})), nil
}

func (s *projectService) Get(ctx context.Context, id string, viewer *model.User) (*model.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Hidden && !viewer.IsAdmin() && !viewer.IsAuthor(p.AuthorID) {
		return nil, apperr.New(apperr.KindNotFound, "record not found")
	}
	return p, nil
}

type CreateProjectInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Promotion    string   `json:"promotion"`
	Students     []string `json:"students"`
	Status       string   `json:"status"`
	Difficulty   string   `json:"difficulty"`
	RepoURL      string   `json:"repo_url"`
	DemoURL      string   `json:"demo_url"`
	Thumbnail    string   `json:"thumbnail"`
}

func (in CreateProjectInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Category, validation.Required),
		validation.Field(&in.Promotion, validation.Required),
		validation.Field(&in.Status, validation.By(validStatus)),
		validation.Field(&in.Difficulty, validation.By(validDifficulty)),
	)
}

func validStatus(v any) error {
	s, _ := v.(string)
	if s != "" && !model.Status(s).Valid() {
		return fmt.Errorf("must be one of InProgress, Completed, Paused")
	}
	return nil
}

func validDifficulty(v any) error {
	s, _ := v.(string)
	if s != "" && !model.Difficulty(s).Valid() {
		return fmt.Errorf("must be one of Beginner, Intermediate, Advanced")
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput, author *model.User) (*model.Project, error) {
	if err := in.validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindValidationFailed, err.Error(), err)
	}

	status := model.Status(in.Status)
	if status == "" {
		status = model.StatusInProgress
	}
	difficulty := model.Difficulty(in.Difficulty)
	if difficulty == "" {
		difficulty = model.DifficultyBeginner
	}

	p := &model.Project{
		Name:         in.Name,
		Description:  in.Description,
		Technologies: in.Technologies,
		Category:     in.Category,
		Tags:         in.Tags,
		Promotion:    in.Promotion,
		Students:     in.Students,
		Status:       status,
		Difficulty:   difficulty,
		Hidden:       false,
		Likes:        0,
		AuthorID:     author.ID,
		RepoURL:      in.RepoURL,
		DemoURL:      in.DemoURL,
		Thumbnail:    in.Thumbnail,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "project.created", projectEvent(p, author.ID))
	s.log.Sugar().Infow("project created", "project_id", p.ID, "author_id", author.ID)
	return p, nil
}

// UpdateProjectInput patches the named fields only; nil pointers leave
// the stored value untouched.
type UpdateProjectInput struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies"`
	Category     *string   `json:"category"`
	Tags         *[]string `json:"tags"`
	Promotion    *string   `json:"promotion"`
	Students     *[]string `json:"students"`
	Status       *string   `json:"status"`
	Difficulty   *string   `json:"difficulty"`
	Hidden       *bool     `json:"hidden"`
	RepoURL      *string   `json:"repo_url"`
	DemoURL      *string   `json:"demo_url"`
	Thumbnail    *string   `json:"thumbnail"`
}

func (s *projectService) Update(ctx context.Context, id string, in UpdateProjectInput, actor *model.User) (*model.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, p); err != nil {
		return nil, err
	}

	apply(in.Name, &p.Name)
	apply(in.Description, &p.Description)
	apply(in.Technologies, &p.Technologies)
	apply(in.Category, &p.Category)
	apply(in.Tags, &p.Tags)
	apply(in.Promotion, &p.Promotion)
	apply(in.Students, &p.Students)
	apply(in.Hidden, &p.Hidden)
	apply(in.RepoURL, &p.RepoURL)
	apply(in.DemoURL, &p.DemoURL)
	apply(in.Thumbnail, &p.Thumbnail)
	if in.Status != nil {
		if !model.Status(*in.Status).Valid() {
			return nil, apperr.New(apperr.KindValidationFailed, "invalid status")
		}
		p.Status = model.Status(*in.Status)
	}
	if in.Difficulty != nil {
		if !model.Difficulty(*in.Difficulty).Valid() {
			return nil, apperr.New(apperr.KindValidationFailed, "invalid difficulty")
		}
		p.Difficulty = model.Difficulty(*in.Difficulty)
	}

	if p.Name == "" || p.Description == "" || p.Category == "" || p.Promotion == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "name, description, category and promotion are required")
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "project.updated", projectEvent(p, actor.ID))
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id string, actor *model.User) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, p); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Publish(ctx, "project.deleted", projectEvent(p, actor.ID))
	s.log.Sugar().Infow("project deleted", "project_id", id, "actor_id", actor.ID)
	return nil
}

type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

func (s *projectService) ToggleLike(ctx context.Context, id string, user *model.User) (*LikeResult, error) {
	// serialize racing toggles of the same pair; the store has no
	// uniqueness constraint on (project, user)
	release, ok := s.lock.TryLock(ctx, fmt.Sprintf("lock:like:%s:%s", id, user.ID))
	if !ok {
		return nil, apperr.New(apperr.KindConflict, "like toggle already in progress")
	}
	defer release()

	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return nil, err
	}

	liked, err := s.likes.Toggle(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.likes.CountByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.projects.SetLikes(ctx, id, count); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "project.liked", map[string]any{
		"project_id": id,
		"user_id":    user.ID,
		"liked":      liked,
		"likes":      count,
	})
	return &LikeResult{Liked: liked, Likes: count}, nil
}

// authorize enforces the author-or-admin policy on mutations. Callers
// are already authenticated; a failure here is Forbidden, not
// Unauthorized.
func authorize(actor *model.User, p *model.Project) error {
	if actor.IsAdmin() || actor.IsAuthor(p.AuthorID) {
		return nil
	}
	return apperr.New(apperr.KindUnauthorized, "only the author or an admin may modify this project")
}

func apply[T any](src *T, dst *T) {
	if src != nil {
		*dst = *src
	}
}

func projectEvent(p *model.Project, actorID string) map[string]any {
	return map[string]any{
		"project_id": p.ID,
		"name":       p.Name,
		"actor_id":   actorID,
		"hidden":     p.Hidden,
	}
}
