package sweep

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"eldercare-backend/config"
	"eldercare-backend/internal/clock"
	"eldercare-backend/internal/model"
	"eldercare-backend/internal/notification"
	"eldercare-backend/internal/schedule"
	"eldercare-backend/internal/store"
)

// Dispatcher pushes one reminder to the notification workers.
type Dispatcher interface {
	Dispatch(reminderID int64)
}

var _ Dispatcher = (*notification.WorkerPool)(nil)

// Materializer regenerates a medication's reminders for a window.
type Materializer interface {
	Materialize(ctx context.Context, medicationID int64, windowStart, windowEnd time.Time) (int, error)
}

// Service runs the periodic background sweep: it records MISSED intake logs
// for medication reminders whose window elapsed unresolved, dispatches newly
// due reminders to the push workers and rolls the reminder horizon forward
// so open-ended schedules never run dry.
type Service struct {
	cfg   config.SweepConfig
	store store.Store
	clk   clock.Clock
	pool  Dispatcher
	mat   Materializer
	cron  *cron.Cron

	mu      sync.Mutex
	lastRun time.Time
	hasRun  bool
}

func NewService(cfg config.SweepConfig, st store.Store, clk clock.Clock, pool Dispatcher, mat Materializer) *Service {
	return &Service{
		cfg:   cfg,
		store: st,
		clk:   clk,
		pool:  pool,
		mat:   mat,
		cron:  cron.New(cron.WithLocation(clk.Location())),
	}
}

// Start registers the cron entry and begins running sweeps on schedule.
func (s *Service) Start() error {
	s.mu.Lock()
	s.lastRun = s.clk.Now()
	s.hasRun = true
	s.mu.Unlock()

	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			log.Printf("Sweep run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register sweep schedule %q: %w", s.cfg.Schedule, err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron scheduler and waits for a running sweep to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce performs a single sweep pass at the current time.
func (s *Service) RunOnce(ctx context.Context) error {
	now := s.clk.Now()

	s.mu.Lock()
	since := s.lastRun
	if !s.hasRun {
		since = now.Add(-s.cfg.LateThreshold)
	}
	s.lastRun = now
	s.hasRun = true
	s.mu.Unlock()

	missed, err := s.markMissed(ctx, now)
	if err != nil {
		return err
	}
	if missed > 0 {
		log.Printf("Sweep recorded %d missed intakes", missed)
	}

	if err := s.dispatchDue(ctx, since, now); err != nil {
		return err
	}
	return s.rollHorizon(ctx, now)
}

// markMissed writes a MISSED intake log for every medication reminder still
// pending after its occurrence window. The query excludes occurrences that
// already have a log, so reruns never duplicate.
func (s *Service) markMissed(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-s.cfg.LateThreshold)
	overdue, err := s.store.OverdueMedicationReminders(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	missed := 0
	for _, reminder := range overdue {
		status, err := schedule.Classify(reminder.ScheduledAt, nil, now)
		if err != nil {
			// Window not elapsed under the classification rule; leave it
			// for a later pass.
			continue
		}
		entry := &model.IntakeLog{
			SeniorID:     reminder.SeniorID,
			MedicationID: *reminder.MedicationID,
			ScheduledAt:  reminder.ScheduledAt,
			Status:       status,
		}
		if err := s.store.SaveIntakeLog(ctx, entry); err != nil {
			return missed, err
		}
		missed++
	}
	return missed, nil
}

// dispatchDue pushes reminders that came due since the previous pass.
func (s *Service) dispatchDue(ctx context.Context, since, now time.Time) error {
	due, err := s.store.PendingRemindersBetween(ctx, since, now)
	if err != nil {
		return err
	}
	for _, reminder := range due {
		s.pool.Dispatch(reminder.ID)
	}
	return nil
}

// rollHorizon re-materializes every scheduled medication out to the
// configured horizon. Regeneration is idempotent so running it each pass
// only appends the days that entered the window.
func (s *Service) rollHorizon(ctx context.Context, now time.Time) error {
	ids, err := s.store.ScheduledMedicationIDs(ctx)
	if err != nil {
		return err
	}
	windowEnd := now.AddDate(0, 0, s.cfg.HorizonDays)
	for _, id := range ids {
		if _, err := s.mat.Materialize(ctx, id, now, windowEnd); err != nil {
			log.Printf("Failed to roll horizon for medication %d: %v", id, err)
		}
	}
	return nil
}
