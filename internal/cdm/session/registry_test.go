package session

import (
	"github.com/prometheus/client_golang/prometheus/testutil"

	"ocdm/internal/cdm/models"
	"ocdm/pkg/platform/audit"
)

func (s *SessionSuite) TestRegistryAdd() {
	s.Run("duplicate id keeps the original", func() {
		original, _, _ := s.newSession("dup", s.ownerA)
		duplicate, _, dupAdapter := s.newSession("dup", s.ownerB)

		s.Equal(1, s.registry.Len())
		found, ok := s.registry.Find("dup")
		s.Require().True(ok)
		s.Same(original, found)
		s.Require().NoError(found.Release())

		s.Equal(float64(1), testutil.ToFloat64(s.metrics.SessionsDuplicate))
		s.Contains(s.auditActions(), string(audit.EventSessionDuplicate))

		s.Run("releasing the duplicate leaves the original registered", func() {
			dupAdapter.EXPECT().Release().Times(1)
			s.Require().NoError(duplicate.Release())

			found, ok := s.registry.Find("dup")
			s.Require().True(ok)
			s.Same(original, found)
			s.Require().NoError(found.Release())
		})
	})

	s.Run("adding the same session twice is a no-op", func() {
		sess, _, _ := s.newSession("twice", s.ownerA)
		before := testutil.ToFloat64(s.metrics.SessionsDuplicate)

		s.registry.Add(s.ctx, sess)

		s.Equal(before, testutil.ToFloat64(s.metrics.SessionsDuplicate))
	})
}

func (s *SessionSuite) TestRegistryRemove() {
	s.Run("missing id is ignored", func() {
		s.NotPanics(func() { s.registry.Remove(s.ctx, "missing") })
		s.Equal(0, s.registry.Len())
	})

	s.Run("removes a registered id without releasing it", func() {
		sess, _, _ := s.newSession("to-remove", s.ownerA)

		s.registry.Remove(s.ctx, "to-remove")

		_, ok := s.registry.Find("to-remove")
		s.False(ok)
		s.Equal(int32(1), sess.RefCount())
		s.Equal(float64(0), testutil.ToFloat64(s.metrics.SessionsRegistered))
	})
}

func (s *SessionSuite) TestRegistryFind() {
	sess, _, _ := s.newSession("find-me", s.ownerA)

	found, ok := s.registry.Find("find-me")

	s.Require().True(ok)
	s.Same(sess, found)
	s.Equal(int32(2), sess.RefCount())
	s.Require().NoError(found.Release())

	_, ok = s.registry.Find("unknown")
	s.False(ok)
}

func (s *SessionSuite) TestAuditOnSystemDestruction() {
	a1, _, _ := s.newSession("a-1", s.ownerA)
	s.newSession("a-2", s.ownerA)
	s.newSession("b-1", s.ownerB)

	count := s.registry.AuditOnSystemDestruction(s.ctx, s.ownerA)

	s.Equal(2, count)
	s.Equal(3, s.registry.Len(), "sessions are never force-removed")
	s.Equal(int32(1), a1.RefCount())
	s.Equal(float64(2), testutil.ToFloat64(s.metrics.SessionsOrphaned))
	s.Contains(s.auditActions(), string(audit.EventSystemDestructedWithSessions))

	s.Equal(0, s.registry.AuditOnSystemDestruction(s.ctx, &fakeOwner{name: "org.test.c"}))
}

func (s *SessionSuite) TestSnapshot() {
	_, evB, _ := s.newSession("b", s.ownerB)
	s.newSession("a", s.ownerA)
	evB.OnKeyStatusUpdate([]byte{0xde, 0xad}, models.KeyStatusUsable)

	infos := s.registry.Snapshot()

	s.Require().Len(infos, 2)
	s.Equal("a", infos[0].SessionID)
	s.Equal("org.test.a", infos[0].KeySystem)
	s.Empty(infos[0].Keys)
	s.Equal("b", infos[1].SessionID)
	s.Equal([]KeyInfo{{KeyID: "dead", Status: "usable"}}, infos[1].Keys)
	s.Equal(int32(1), infos[1].RefCount)
}
