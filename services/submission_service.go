// services/submission_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"layananwarga-backend/models"
	"layananwarga-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrTrackingCodeConflict = errors.New("could not allocate a unique tracking code")
	ErrUnknownStatus        = errors.New("unknown submission status")
	ErrInvalidTransition    = errors.New("illegal status transition")
)

// How many tracking codes to try before giving up on a create.
const trackingCodeAttempts = 5

type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// Create persists a validated submission. The phone number is stored in
// canonical form, the status always starts at PENGAJUAN_BARU and the tracking
// code is regenerated on a uniqueness conflict up to trackingCodeAttempts
// times before the create fails with ErrTrackingCodeConflict.
func (s *SubmissionService) Create(input utils.SubmissionInput) (*models.Submission, error) {
	submission := models.Submission{
		Nama:         strings.TrimSpace(input.Nama),
		NIK:          strings.TrimSpace(input.NIK),
		Email:        strings.TrimSpace(input.Email),
		NoWA:         utils.NormalizePhone(input.NoWA),
		JenisLayanan: strings.TrimSpace(input.JenisLayanan),
		Consent:      input.Consent,
		Status:       models.StatusPengajuanBaru,
	}

	for attempt := 1; attempt <= trackingCodeAttempts; attempt++ {
		submission.TrackingCode = utils.GenerateTrackingCode()

		err := s.db.Create(&submission).Error
		if err == nil {
			log.Printf("Created submission %s", submission.TrackingCode)
			return &submission, nil
		}
		if !isDuplicateKeyError(err) {
			return nil, err
		}
		log.Printf("Tracking code %s collided (attempt %d), regenerating", submission.TrackingCode, attempt)
	}

	return nil, ErrTrackingCodeConflict
}

// GetByID returns a submission by primary key.
func (s *SubmissionService) GetByID(id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// GetByTrackingCode returns a submission by its citizen-facing code.
func (s *SubmissionService) GetByTrackingCode(code string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "tracking_code = ?", strings.TrimSpace(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// UpdateStatus moves a submission along the status graph. Unknown statuses
// and edges outside the transition table are rejected.
func (s *SubmissionService) UpdateStatus(id uuid.UUID, newStatus string) (*models.Submission, error) {
	newStatus = strings.ToUpper(strings.TrimSpace(newStatus))
	if !models.IsValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}

	submission, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(submission.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, submission.Status, newStatus)
	}

	if err := s.db.Model(submission).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	log.Printf("Submission %s status %s -> %s", submission.TrackingCode, submission.Status, newStatus)
	submission.Status = newStatus
	return submission, nil
}

// SubmissionQuery carries the raw listing parameters. Invalid sort and order
// values fall back silently to the defaults.
type SubmissionQuery struct {
	Search string
	Status string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

// SubmissionPage is one page of listing results with its bookkeeping.
type SubmissionPage struct {
	Items      []models.SubmissionListItem
	Pagination utils.Pagination
}

// Columns admins may sort the listing by. Anything else keeps the default.
var sortColumns = map[string]string{
	"createdat":  "created_at",
	"created_at": "created_at",
	"status":     "status",
	"nama":       "nama",
	"email":      "email",
}

// List returns a filtered, sorted, paginated view of submissions. Search is a
// case-insensitive substring match over nama, email and tracking_code; status
// filters on the exact upper-cased value.
func (s *SubmissionService) List(q SubmissionQuery) (*SubmissionPage, error) {
	page := utils.ClampPage(q.Page)
	limit := utils.ClampLimit(q.Limit)

	var totalCount int64
	if err := s.filtered(q).Model(&models.Submission{}).Count(&totalCount).Error; err != nil {
		return nil, err
	}

	items := []models.SubmissionListItem{}
	err := s.filtered(q).Model(&models.Submission{}).
		Select("id, tracking_code, nama, email, jenis_layanan, status, created_at, updated_at").
		Order(orderClause(q.Sort, q.Order)).
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	return &SubmissionPage{
		Items:      items,
		Pagination: utils.NewPagination(page, limit, totalCount),
	}, nil
}

func (s *SubmissionService) filtered(q SubmissionQuery) *gorm.DB {
	tx := s.db

	if search := strings.TrimSpace(q.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where(
			"LOWER(nama) LIKE ? OR LOWER(email) LIKE ? OR LOWER(tracking_code) LIKE ?",
			like, like, like,
		)
	}
	if status := strings.TrimSpace(q.Status); status != "" {
		tx = tx.Where("status = ?", strings.ToUpper(status))
	}
	return tx
}

func orderClause(sort, order string) string {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(sort))]
	if !ok {
		return "created_at DESC"
	}

	direction := strings.ToUpper(strings.TrimSpace(order))
	if direction != "ASC" && direction != "DESC" {
		direction = "DESC"
	}
	return column + " " + direction
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for dialects without error translation.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
