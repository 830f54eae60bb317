package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/khoahotran/talent-profile/internal/domain/identity"
)

type SessionStoreIntegrationTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	rdb       *redis.Client
	store     identity.SessionStore
}

func (s *SessionStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		s.T().Fatalf("Failed to start redis container: %s", err)
	}
	s.container = container

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		s.T().Fatalf("Failed to get redis connection string: %s", err)
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		s.T().Fatalf("Failed to parse redis url: %s", err)
	}
	s.rdb = redis.NewClient(opts)
	s.store = NewRedisSessionStore(s.rdb)
}

func (s *SessionStoreIntegrationTestSuite) TearDownSuite() {
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.container != nil {
		if err := s.container.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate redis container: %s", err)
		}
	}
}

func TestSessionStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(SessionStoreIntegrationTestSuite))
}

func (s *SessionStoreIntegrationTestSuite) Test_RevokeAndCheck() {
	ctx := context.Background()

	revoked, err := s.store.IsRevoked(ctx, "jti-1")
	s.NoError(err)
	s.False(revoked)

	s.NoError(s.store.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	revoked, err = s.store.IsRevoked(ctx, "jti-1")
	s.NoError(err)
	s.True(revoked)

	ttl, err := s.rdb.TTL(ctx, revokedKeyPrefix+"jti-1").Result()
	s.NoError(err)
	s.True(ttl > 0 && ttl <= time.Minute)
}

func (s *SessionStoreIntegrationTestSuite) Test_RevokeExpiredTokenIsNoop() {
	ctx := context.Background()
	s.NoError(s.store.Revoke(ctx, "jti-old", time.Now().Add(-time.Second)))
	revoked, err := s.store.IsRevoked(ctx, "jti-old")
	s.NoError(err)
	s.False(revoked)
}
