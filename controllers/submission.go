package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"layananwarga-backend/services"
	"layananwarga-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubmissionController struct {
	Submissions   *services.SubmissionService
	Notifications *services.NotificationService
}

func NewSubmissionController(submissions *services.SubmissionService, notifications *services.NotificationService) *SubmissionController {
	return &SubmissionController{
		Submissions:   submissions,
		Notifications: notifications,
	}
}

// UpdateStatusInput defines the expected JSON structure for a status change
type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// CreateSubmission handles the citizen intake form. The submission is durably
// persisted before the WhatsApp confirmation is dispatched; the dispatch runs
// detached and its outcome never changes this response.
func (sc *SubmissionController) CreateSubmission(c *gin.Context) {
	var input utils.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if fieldErrors := utils.ValidateSubmission(input); len(fieldErrors) > 0 {
		utils.RespondWithFieldErrors(c, http.StatusBadRequest, "Validasi gagal. Periksa isian Anda.", fieldErrors)
		return
	}

	submission, err := sc.Submissions.Create(input)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Terjadi kesalahan internal server")
		return
	}

	sc.Notifications.DispatchInitialAsync(submission)

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Pengajuan berhasil dibuat",
		"tracking_code": submission.TrackingCode,
		"submission":    submission,
	})
}

// GetSubmissions lists submissions for admin review with search, status
// filter, sorting and pagination. Unknown sort fields and orders fall back to
// the defaults instead of erroring.
func (sc *SubmissionController) GetSubmissions(c *gin.Context) {
	search := c.Query("q")
	status := c.Query("status")
	sort := c.Query("sort")
	order := c.DefaultQuery("order", "DESC")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}

	result, err := sc.Submissions.List(services.SubmissionQuery{
		Search: search,
		Status: status,
		Sort:   sort,
		Order:  order,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Terjadi kesalahan internal server")
		return
	}

	filterSort := sort
	if filterSort == "" {
		filterSort = "createdAt"
	}

	c.Header("Cache-Control", "private, max-age=30, stale-while-revalidate=60")
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result.Items,
		"pagination": result.Pagination,
		"filters": gin.H{
			"search": nullable(search),
			"status": nullable(status),
			"sort":   filterSort,
			"order":  strings.ToUpper(order),
		},
	})
}

// TrackSubmission lets a citizen look up their submission by tracking code.
func (sc *SubmissionController) TrackSubmission(c *gin.Context) {
	submission, err := sc.Submissions.GetByTrackingCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pengajuan tidak ditemukan")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Terjadi kesalahan internal server")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// UpdateSubmissionStatus moves a submission to a new status and dispatches
// the status-change notification.
func (sc *SubmissionController) UpdateSubmissionStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid submission ID format")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	submission, err := sc.Submissions.UpdateStatus(id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Pengajuan tidak ditemukan")
		case errors.Is(err, services.ErrUnknownStatus), errors.Is(err, services.ErrInvalidTransition):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Terjadi kesalahan internal server")
		}
		return
	}

	sc.Notifications.DispatchStatusUpdateAsync(submission)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

func nullable(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
