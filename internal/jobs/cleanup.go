package jobs

import (
	"log"
	"time"

	"github.com/phaseGateTwo/cms-backend/internal/storage"
)

// CleanupJob periodically purges expired OTP rows. The database store keeps
// expired rows unreadable through its age predicate, so this job only keeps
// the table from growing.
type CleanupJob struct {
	store     storage.Store
	interval  time.Duration
	isRunning bool
	stop      chan struct{}
}

// NewCleanupJob creates a new OTP cleanup job
func NewCleanupJob(store storage.Store) *CleanupJob {
	return &CleanupJob{
		store:    store,
		interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

// Start begins the periodic cleanup
func (j *CleanupJob) Start() {
	if j.isRunning {
		log.Println("OTP cleanup job already running")
		return
	}

	j.isRunning = true
	log.Println("Starting OTP cleanup job...")
	go j.run()
}

// Stop halts the cleanup job
func (j *CleanupJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	log.Println("Stopping OTP cleanup job...")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := j.store.DeleteExpiredOTPs()
			if err != nil {
				log.Printf("Failed to delete expired OTPs: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("Deleted %d expired OTP record(s)", removed)
			}
		case <-j.stop:
			return
		}
	}
}
