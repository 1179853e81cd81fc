// services/digest_service.go
package services

import (
	"log"
	"time"

	"layananwarga-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// A new submission untouched for this long shows up in the digest as stale.
const staleAfterDays = 3

// DigestService writes a daily operational summary of the submission backlog
// so admins notice requests that sit in PENGAJUAN_BARU too long. Read-only:
// it never mutates submissions or resends notifications.
type DigestService struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewDigestService(db *gorm.DB) *DigestService {
	return &DigestService{db: db}
}

func (s *DigestService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	c.AddFunc("0 8 * * *", s.LogBacklogDigest)

	c.Start()
	s.cron = c
	log.Println("Backlog digest scheduler started")
}

func (s *DigestService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *DigestService) LogBacklogDigest() {
	log.Println("Starting daily backlog digest...")

	statuses := []string{
		models.StatusPengajuanBaru,
		models.StatusDiproses,
		models.StatusSelesai,
		models.StatusDitolak,
	}
	for _, status := range statuses {
		var count int64
		if err := s.db.Model(&models.Submission{}).Where("status = ?", status).Count(&count).Error; err != nil {
			log.Printf("Digest: failed to count %s submissions: %v", status, err)
			continue
		}
		log.Printf("Digest: %s = %d", status, count)
	}

	cutoff := time.Now().AddDate(0, 0, -staleAfterDays)
	var stale int64
	if err := s.db.Model(&models.Submission{}).
		Where("status = ? AND created_at < ?", models.StatusPengajuanBaru, cutoff).
		Count(&stale).Error; err != nil {
		log.Printf("Digest: failed to count stale submissions: %v", err)
		return
	}
	if stale > 0 {
		log.Printf("Digest: %d submissions waiting longer than %d days", stale, staleAfterDays)
	}

	log.Println("Daily backlog digest completed")
}
