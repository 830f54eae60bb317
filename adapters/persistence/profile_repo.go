package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/talent-profile/internal/domain/profile"
	"github.com/khoahotran/talent-profile/pkg/apperror"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{
	"id", "owner_id", "resume_url", "skills", "interests", "experience_level",
	"preferred_location", "bio", "github_url", "linkedin_url", "portfolio_url", "updated_at",
}

// writableColumns are refreshed from EXCLUDED on conflict; owner_id and id never change.
var writableColumns = []string{
	"resume_url", "skills", "interests", "experience_level",
	"preferred_location", "bio", "github_url", "linkedin_url", "portfolio_url",
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var level *string
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.ResumeURL, &p.Skills, &p.Interests, &level,
		&p.PreferredLocation, &p.Bio, &p.GithubURL, &p.LinkedinURL, &p.PortfolioURL, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if level != nil {
		l := profile.ExperienceLevel(*level)
		p.ExperienceLevel = &l
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p, nil
}

func (r *postgresProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query, args, err := psqlProfile.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to query profile", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, ownerID uuid.UUID, f profile.Fields) (*profile.Profile, error) {
	var level *string
	if f.ExperienceLevel != nil {
		s := string(*f.ExperienceLevel)
		level = &s
	}

	updates := make([]string, 0, len(writableColumns)+1)
	for _, col := range writableColumns {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	updates = append(updates, "updated_at = NOW()")

	query, args, err := psqlProfile.Insert("profiles").
		Columns(append([]string{"owner_id"}, writableColumns...)...).
		Values(
			ownerID, f.ResumeURL, nonNil(f.Skills), nonNil(f.Interests), level,
			f.PreferredLocation, f.Bio, f.GithubURL, f.LinkedinURL, f.PortfolioURL,
		).
		Suffix("ON CONFLICT (owner_id) DO UPDATE SET " + strings.Join(updates, ", ") +
			" RETURNING " + strings.Join(profileColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile upsert", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		r.logger.Error("Failed to upsert profile", err, zap.String("owner_id", ownerID.String()))
		return nil, apperror.NewInternal("failed to upsert profile", err)
	}
	return p, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
