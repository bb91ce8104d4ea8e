package daemon

import (
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/db/controller/role"
)

// Sweeper deactivates roles whose end date has passed on a cron schedule.
type Sweeper struct {
	cron *cron.Cron
	db   *gorm.DB
	now  func() time.Time
}

// NewSweeper schedules the role expiry job with the cron spec, e.g. "@daily" or "0 3 * * *".
func NewSweeper(db *gorm.DB, spec string) (*Sweeper, error) {
	s := &Sweeper{
		cron: cron.New(),
		db:   db,
		now:  time.Now,
	}

	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return nil, errors.Wrapf(err, "invalid role expiry spec %q", spec)
	}

	return s, nil
}

// Run deactivates the expired roles once.
func (s *Sweeper) Run() {
	n, err := role.DeactivateExpired(s.db, s.now())
	if err != nil {
		log.Error().Err(err).Msg("role expiry job failed")
		return
	}

	if n > 0 {
		log.Info().Int64("roles", n).Msg("deactivated expired roles")
	}
}

// Start runs the scheduler in its own goroutine.
func (s *Sweeper) Start() {
	s.cron.Start()
	log.Info().Msg("role expiry job scheduled")
}

// Stop stops the scheduler and waits for a running job.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
