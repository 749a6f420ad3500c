package jobs

import (
	"context"

	"github.com/doxly/doxly/internal/lifecycle"
	"github.com/doxly/doxly/internal/store"
	"github.com/sirupsen/logrus"
)

// ShareExpiry deactivates shares whose expiry passed.
type ShareExpiry struct {
	store    store.Store
	clock    lifecycle.Clock
	schedule string
}

func NewShareExpiry(schedule string, st store.Store, clock lifecycle.Clock) *ShareExpiry {
	return &ShareExpiry{
		store:    st,
		clock:    clock,
		schedule: schedule,
	}
}

func (s *ShareExpiry) Schedule() string {
	return s.schedule
}

func (s *ShareExpiry) Run() {
	expired, err := s.store.ExpireShares(context.Background(), s.clock.Now())
	if err != nil {
		logrus.Errorf("share expiry failed: %v", err)
		return
	}

	if expired > 0 {
		logrus.Infof("deactivated %d expired shares", expired)
	}
}
