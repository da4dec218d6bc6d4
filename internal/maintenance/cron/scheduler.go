package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DraftArchiver archives stale private drafts older than the cutoff.
type DraftArchiver interface {
	ArchiveStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error)
}

// staleDraftAge is how long a private draft may sit untouched before the
// nightly job archives it.
const staleDraftAge = 30 * 24 * time.Hour

type Scheduler struct {
	archiver DraftArchiver
	cron     *cron.Cron
}

func NewScheduler(archiver DraftArchiver) *Scheduler {
	return &Scheduler{archiver: archiver}
}

// Start registers the nightly maintenance job (3:00 AM) and starts the
// cron loop. A failed run is logged and retried the next night.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 3 * * *", func() {
		s.runNightly()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (running nightly at 3:00AM)")
	c.Start()
	s.cron = c
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) runNightly() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-staleDraftAge)
	archived, err := s.archiver.ArchiveStaleDrafts(ctx, cutoff)
	if err != nil {
		log.Printf("Nightly maintenance failed: %v", err)
		return
	}

	log.Printf("Nightly maintenance archived %d stale drafts at %s", archived, time.Now().Format(time.RFC1123))
}
