package service

import (
	"context"
	"time"
)

// MembershipSweeper periodically deactivates expired memberships.
type MembershipSweeper struct {
	users    UserService
	interval time.Duration
	params   ServiceParams
	stop     chan struct{}
	done     chan struct{}
}

func NewMembershipSweeper(params ServiceParams, users UserService) *MembershipSweeper {
	interval := params.Config.Membership.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}
	return &MembershipSweeper{
		users:    users,
		interval: interval,
		params:   params,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called. One sweep runs
// immediately so a restart never leaves lapsed memberships active for a
// full interval.
func (s *MembershipSweeper) Start() {
	go func() {
		defer close(s.done)

		s.sweep()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *MembershipSweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *MembershipSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.users.ExpireMemberships(ctx); err != nil {
		s.params.Logger.Errorw("membership sweep failed", "error", err)
	}
}
