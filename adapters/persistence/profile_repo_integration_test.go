package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/talent-profile/internal/domain/profile"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	repo        profile.Repository
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool
	s.repo = NewPostgresProfileRepo(s.dbPool, logger.NewNopLogger())
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func (s *ProfileRepoIntegrationTestSuite) countRows(ownerID uuid.UUID) int {
	var n int
	err := s.dbPool.QueryRow(context.Background(), `SELECT COUNT(*) FROM profiles WHERE owner_id = $1`, ownerID).Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *ProfileRepoIntegrationTestSuite) Test_Get_MissingRowIsNil() {
	p, err := s.repo.GetByOwnerID(context.Background(), uuid.New())
	s.NoError(err)
	s.Nil(p)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Upsert_ThenGet() {
	ctx := context.Background()
	owner := uuid.New()
	level := profile.LevelMid
	bio := "hello"
	fields := profile.Fields{
		Skills:          []string{"React", "Node", "React"},
		Interests:       []string{},
		ExperienceLevel: &level,
		Bio:             &bio,
	}

	saved, err := s.repo.Upsert(ctx, owner, fields)
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, saved.ID)
	s.Equal(owner, saved.OwnerID)
	s.False(saved.UpdatedAt.IsZero())

	found, err := s.repo.GetByOwnerID(ctx, owner)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(fields.Skills, found.Skills)
	s.Equal([]string{}, found.Interests)
	s.Equal(profile.LevelMid, *found.ExperienceLevel)
	s.Equal("hello", *found.Bio)
	s.Nil(found.ResumeURL)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Upsert_TwiceUpdatesSameRow() {
	ctx := context.Background()
	owner := uuid.New()

	first, err := s.repo.Upsert(ctx, owner, profile.Fields{Skills: []string{"Go"}})
	s.Require().NoError(err)
	time.Sleep(10 * time.Millisecond)
	second, err := s.repo.Upsert(ctx, owner, profile.Fields{Skills: []string{"Go", "Rust"}})
	s.Require().NoError(err)

	s.Equal(1, s.countRows(owner))
	s.Equal(first.ID, second.ID)
	s.Equal([]string{"Go", "Rust"}, second.Skills)
	s.True(second.UpdatedAt.After(first.UpdatedAt))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Upsert_RejectsUnknownLevel() {
	level := profile.ExperienceLevel("principal")
	_, err := s.repo.Upsert(context.Background(), uuid.New(), profile.Fields{ExperienceLevel: &level})
	s.Error(err)
}
