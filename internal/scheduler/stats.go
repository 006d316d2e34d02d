package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/readtrack/internal/tasks"
)

// Enqueuer adds a task to the background queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRun returns the first activation of schedule after from.
func NextRun(schedule string, from time.Time) (time.Time, error) {
	sched, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// StatsScheduler periodically enqueues a LibraryStatsTask
type StatsScheduler struct {
	queue    Enqueuer
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewStatsScheduler(queue Enqueuer, schedule string) *StatsScheduler {
	return &StatsScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start registers the job and starts the cron loop. An empty schedule
// disables the scheduler.
func (s *StatsScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Printf("[SCHEDULER] Library stats: disabled")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule stats job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRun(s.schedule, time.Now())
	log.Printf("[SCHEDULER] Library stats: started with schedule '%s'. Next run: %v", s.schedule, nextRun)

	go func() {
		<-cancelCtx.Done()
		// Stop cancels cancelCtx too; only a done parent ends the run here
		if ctx.Err() != nil {
			s.Stop()
		}
	}()

	return nil
}

// Stop waits for a running job to finish and stops the scheduler
func (s *StatsScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	s.isRunning = false
	s.cancelFunc()
	s.cancelFunc = nil

	log.Printf("[SCHEDULER] Library stats: stopped")
}

// RunNow enqueues a stats task immediately
func (s *StatsScheduler) RunNow() {
	id, err := s.queue.Enqueue(tasks.LibraryStatsTask{})
	if err != nil {
		log.Printf("[SCHEDULER] Library stats: failed to enqueue: %v", err)
		return
	}
	log.Printf("[SCHEDULER] Library stats: enqueued task %s", id)
}

func (s *StatsScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
