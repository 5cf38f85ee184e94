package repo

import (
	"context"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/infra/airtable"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

const (
	colUserUsername     = "username"
	colUserEmail        = "email"
	colUserDisplayName  = "name"
	colUserRole         = "role"
	colUserPasswordHash = "passwordHash"
)

type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	// FindByIdentifier matches on username or email; nil when no user
	// matches. Absence is not an error here, the auth service decides
	// what it means.
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepo struct {
	client *airtable.Client
	table  string
}

func NewUserRepo(client *airtable.Client, cfg *config.Config) UserRepo {
	return &userRepo{client: client, table: cfg.Airtable.UsersTable}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	rec, err := r.client.Create(ctx, r.table, map[string]any{
		colUserUsername:     u.Username,
		colUserEmail:        u.Email,
		colUserDisplayName:  u.DisplayName,
		colUserRole:         string(u.Role),
		colUserPasswordHash: u.PasswordHash,
	})
	if err != nil {
		return err
	}
	u.ID = rec.ID
	u.CreatedAt = rec.CreatedTime
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	rec, err := r.client.Get(ctx, r.table, id)
	if err != nil {
		return nil, err
	}
	return parseUser(rec)
}

func (r *userRepo) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		FilterByFormula: airtable.Or(
			airtable.FieldEquals(colUserUsername, identifier),
			airtable.FieldEquals(colUserEmail, identifier),
		),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return parseUser(&records[0])
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{})
	if err != nil {
		return nil, err
	}

	out := make([]model.User, 0, len(records))
	for i := range records {
		u, err := parseUser(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

// parseUser fails on records missing identity columns: an identity we
// cannot name is a malformed collaborator reply, not a usable user.
func parseUser(rec *airtable.Record) (*model.User, error) {
	if !rec.Has(colUserUsername) || !rec.Has(colUserEmail) {
		return nil, apperr.New(apperr.KindMalformedResponse, "user record missing identity columns")
	}

	role := model.Role(rec.Str(colUserRole))
	if role != model.RoleAdmin {
		role = model.RoleUser
	}

	return &model.User{
		ID:           rec.ID,
		Username:     rec.Str(colUserUsername),
		Email:        rec.Str(colUserEmail),
		DisplayName:  rec.Str(colUserDisplayName),
		Role:         role,
		PasswordHash: rec.Str(colUserPasswordHash),
		CreatedAt:    rec.CreatedTime,
	}, nil
}
