package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper is anything that can drop its expired entries.
type Sweeper interface {
	Sweep() int
}

// Scheduler periodically sweeps expired entries out of the shared caches.
// Expiry is otherwise enforced lazily on read, so rarely-hit entries would
// stay resident until capacity eviction.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweepers  []Sweeper
	interval  time.Duration
}

// New creates a Scheduler sweeping the given caches at the given interval.
func New(interval time.Duration, sweepers ...Sweeper) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweepers:  sweepers,
		interval:  interval,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.sweepers) == 0 {
		log.Println("scheduler: no caches registered; nothing to sweep")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 10
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		removed := 0
		for _, sw := range s.sweepers {
			removed += sw.Sweep()
		}
		if removed > 0 {
			log.Printf("scheduler: swept %d expired cache entries", removed)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
