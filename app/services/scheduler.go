package services

import (
	"database/sql"
	"log"
	"time"

	"recruitflow/app/routes/scoring"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 2:10 AM (02:10)
			if now.Hour() == 2 && now.Minute() == 10 {
				log.Println("Triggering scheduled tasks [02:10]...")

				// Idle-time buckets decay as days pass, so scores go
				// stale without a nightly refresh.
				updated, total, errs := scoring.RescoreAllCandidates(db)
				log.Printf("Nightly rescore: %d/%d candidates updated (%d failed)", updated, total, len(errs))
				for _, err := range errs {
					log.Printf("Nightly rescore: %v", err)
				}
			}
		}
	}()
}
