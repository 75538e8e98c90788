//go:build integration

package certificate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"ocdm/pkg/platform/sentinel"
	"ocdm/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()

	s.Run("missing certificate is not found", func() {
		_, err := s.store.Find(ctx, "org.ocdm.loopback")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("saved certificate is returned byte for byte", func() {
		cert := []byte{0x00, 0xff, 0x10, 0x00}
		s.Require().NoError(s.store.Save(ctx, "org.ocdm.loopback", cert))

		got, err := s.store.Find(ctx, "org.ocdm.loopback")
		s.Require().NoError(err)
		s.Equal(cert, got)
	})

	s.Run("certificates are keyed per key system", func() {
		s.Require().NoError(s.store.Save(ctx, "org.other", []byte{0x01}))

		got, err := s.store.Find(ctx, "org.ocdm.loopback")
		s.Require().NoError(err)
		s.Equal([]byte{0x00, 0xff, 0x10, 0x00}, got)
	})
}
