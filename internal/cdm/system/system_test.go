package system

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ocdm/internal/cdm/metrics"
	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/ports/mocks"
	"ocdm/internal/cdm/session"
	"ocdm/internal/cdm/store/certificate"
	"ocdm/pkg/platform/sentinel"
)

type SystemSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	adapter  *mocks.MockAdapter
	certs    *certificate.InMemoryStore
	metrics  *metrics.Metrics
	registry *session.Registry
	system   *System
}

func TestSystemSuite(t *testing.T) {
	suite.Run(t, new(SystemSuite))
}

func (s *SystemSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.adapter = mocks.NewMockAdapter(s.ctrl)
	s.adapter.EXPECT().KeySystem().Return("org.test").AnyTimes()
	s.certs = certificate.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.registry = session.NewRegistry(session.WithMetrics(s.metrics))
	s.system = New(s.adapter, s.registry, WithCertificateStore(s.certs))
}

func (s *SystemSuite) expectSession(id string) *mocks.MockAdapterSession {
	as := mocks.NewMockAdapterSession(s.ctrl)
	as.EXPECT().SessionID().Return(id).AnyTimes()
	as.EXPECT().BufferID().Return("").AnyTimes()
	s.adapter.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return(as, nil)
	return as
}

func (s *SystemSuite) TestCreateSession() {
	s.Run("sessions are scoped to the creating system", func() {
		s.expectSession("sess-1")

		sess, err := s.system.CreateSession(s.ctx, models.SessionRequest{InitDataType: "cenc"})

		s.Require().NoError(err)
		s.True(sess.BelongsTo(s.system))
		s.Equal("org.test", sess.KeySystem())
		s.Equal(1, s.registry.Len())
	})

	s.Run("adapter failure surfaces its code", func() {
		s.adapter.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.CodeKeySystemNotSupported)

		_, err := s.system.CreateSession(s.ctx, models.SessionRequest{})

		s.Equal(models.CodeKeySystemNotSupported, models.CodeOf(err))
	})
}

func (s *SystemSuite) TestSetServerCertificate() {
	s.Run("stores and applies the certificate", func() {
		s.adapter.EXPECT().SupportsServerCertificate().Return(true)
		s.adapter.EXPECT().SetServerCertificate(gomock.Any(), []byte{0xca, 0xfe}).Return(nil)

		s.Require().NoError(s.system.SetServerCertificate(s.ctx, []byte{0xca, 0xfe}))

		stored, err := s.certs.Find(s.ctx, "org.test")
		s.Require().NoError(err)
		s.Equal([]byte{0xca, 0xfe}, stored)
	})

	s.Run("oversized certificate is an invalid argument", func() {
		err := s.system.SetServerCertificate(s.ctx, make([]byte, MaxCertificateSize+1))
		s.Equal(models.CodeInvalidArg, models.CodeOf(err))
	})

	s.Run("unsupported key systems ignore the certificate", func() {
		s.adapter.EXPECT().SupportsServerCertificate().Return(false)
		s.NoError(s.system.SetServerCertificate(s.ctx, []byte{0x01}))
	})

	s.Run("adapter error is returned", func() {
		s.adapter.EXPECT().SupportsServerCertificate().Return(true)
		s.adapter.EXPECT().SetServerCertificate(gomock.Any(), gomock.Any()).Return(models.CodeFail)

		s.Equal(models.CodeFail, models.CodeOf(s.system.SetServerCertificate(s.ctx, []byte{0x02})))
	})
}

func (s *SystemSuite) TestRestoreServerCertificate() {
	s.Run("nothing stored is a no-op", func() {
		s.adapter.EXPECT().SupportsServerCertificate().Return(true)
		s.NoError(s.system.RestoreServerCertificate(s.ctx))
	})

	s.Run("stored certificate is replayed", func() {
		s.Require().NoError(s.certs.Save(s.ctx, "org.test", []byte{0x0b}))
		s.adapter.EXPECT().SupportsServerCertificate().Return(true)
		s.adapter.EXPECT().SetServerCertificate(gomock.Any(), []byte{0x0b}).Return(nil)

		s.NoError(s.system.RestoreServerCertificate(s.ctx))
	})

	s.Run("store failure is returned", func() {
		store := mocks.NewMockCertificateStore(s.ctrl)
		store.EXPECT().Find(gomock.Any(), "org.test").Return(nil, errors.Join(sentinel.ErrUnavailable, errors.New("redis down")))
		s.adapter.EXPECT().SupportsServerCertificate().Return(true)
		sys := New(s.adapter, s.registry, WithCertificateStore(store))

		s.ErrorIs(sys.RestoreServerCertificate(s.ctx), sentinel.ErrUnavailable)
	})
}

func (s *SystemSuite) TestDestruct() {
	s.expectSession("alive")
	sess, err := s.system.CreateSession(s.ctx, models.SessionRequest{})
	s.Require().NoError(err)

	s.Require().NoError(s.system.Destruct(s.ctx))

	s.True(s.system.Destructed())
	s.Equal(1, s.registry.Len(), "live sessions survive their system")
	s.Equal(int32(1), sess.RefCount())
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.SessionsOrphaned))

	s.Run("later calls fail", func() {
		s.ErrorIs(s.system.Destruct(s.ctx), sentinel.ErrInvalidState)
		_, err := s.system.CreateSession(s.ctx, models.SessionRequest{})
		s.ErrorIs(err, sentinel.ErrInvalidState)
		s.ErrorIs(s.system.SetServerCertificate(s.ctx, []byte{1}), sentinel.ErrInvalidState)
	})
}
