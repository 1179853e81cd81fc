package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission statuses. Stored values are fixed; new states need a migration.
const (
	StatusPengajuanBaru = "PENGAJUAN_BARU"
	StatusDiproses      = "DIPROSES"
	StatusSelesai       = "SELESAI"
	StatusDitolak       = "DITOLAK"
)

// statusTransitions is the allowed edge set. SELESAI and DITOLAK are terminal.
var statusTransitions = map[string][]string{
	StatusPengajuanBaru: {StatusDiproses, StatusDitolak},
	StatusDiproses:      {StatusSelesai, StatusDitolak},
	StatusSelesai:       {},
	StatusDitolak:       {},
}

// IsValidStatus reports whether s is one of the fixed submission statuses.
func IsValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether a submission may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Submission struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TrackingCode string    `gorm:"column:tracking_code;uniqueIndex;not null" json:"tracking_code"`
	Nama         string    `gorm:"not null" json:"nama"`
	NIK          string    `gorm:"column:nik;type:varchar(16);not null" json:"nik"`
	Email        string    `gorm:"not null" json:"email"`
	NoWA         string    `gorm:"column:no_wa;not null" json:"no_wa"`
	JenisLayanan string    `gorm:"column:jenis_layanan;not null" json:"jenis_layanan"`
	Consent      bool      `gorm:"not null" json:"consent"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENGAJUAN_BARU';index" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`

	NotificationLogs []NotificationLog `gorm:"foreignKey:SubmissionID" json:"-"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// SubmissionListItem is the listing projection. nik and no_wa are deliberately
// absent from listings.
type SubmissionListItem struct {
	ID           uuid.UUID `json:"id"`
	TrackingCode string    `json:"tracking_code"`
	Nama         string    `json:"nama"`
	Email        string    `json:"email"`
	JenisLayanan string    `json:"jenis_layanan"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
