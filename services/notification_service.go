// services/notification_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"layananwarga-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Bound on the external send so a slow provider cannot hold a dispatch
// goroutine forever.
const dispatchTimeout = 10 * time.Second

// SendResult is the outcome of one outbound message. Raw carries whatever the
// provider returned; it is stored for audit and never reparsed.
type SendResult struct {
	Success bool                   `json:"success"`
	Raw     map[string]interface{} `json:"raw,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// WhatsAppSender is the outbound channel collaborator. The dispatcher depends
// only on this signature, not on the transport behind it.
type WhatsAppSender interface {
	Send(ctx context.Context, to, body string) SendResult
}

// TwilioWhatsAppSender sends through the Twilio WhatsApp API.
type TwilioWhatsAppSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioWhatsAppSender() *TwilioWhatsAppSender {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioWhatsAppSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
}

func (t *TwilioWhatsAppSender) Send(ctx context.Context, to, body string) SendResult {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + to)
	params.SetFrom("whatsapp:" + t.from)
	params.SetBody(body)

	type outcome struct {
		resp *twilioApi.ApiV2010Message
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		resp, err := t.client.Api.CreateMessage(params)
		done <- outcome{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return SendResult{Success: false, Error: ctx.Err().Error()}
	case out := <-done:
		if out.err != nil {
			return SendResult{Success: false, Error: out.err.Error()}
		}
		raw := map[string]interface{}{}
		if out.resp != nil {
			if out.resp.Sid != nil {
				raw["sid"] = *out.resp.Sid
			}
			if out.resp.Status != nil {
				raw["status"] = *out.resp.Status
			}
		}
		return SendResult{Success: true, Raw: raw}
	}
}

// NotificationService dispatches WhatsApp messages for a submission and
// appends one NotificationLog row per attempt. Dispatch is best-effort: no
// failure here ever propagates to the caller that created or updated the
// submission.
type NotificationService struct {
	db       *gorm.DB
	sender   WhatsAppSender
	inflight sync.WaitGroup
}

func NewNotificationService(db *gorm.DB, sender WhatsAppSender) *NotificationService {
	return &NotificationService{db: db, sender: sender}
}

// DispatchInitialAsync runs DispatchInitial detached from the caller. The
// submission must already be durably persisted.
func (s *NotificationService) DispatchInitialAsync(submission *models.Submission) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.DispatchInitial(submission)
	}()
}

// DispatchStatusUpdateAsync runs DispatchStatusUpdate detached from the caller.
func (s *NotificationService) DispatchStatusUpdateAsync(submission *models.Submission) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.DispatchStatusUpdate(submission)
	}()
}

// DispatchInitial sends the confirmation message for a new submission.
func (s *NotificationService) DispatchInitial(submission *models.Submission) {
	message := fmt.Sprintf(
		"Halo %s, pengajuan layanan %s Anda telah kami terima dengan kode tracking %s. "+
			"Simpan kode ini untuk memantau status pengajuan Anda.",
		submission.Nama, submission.JenisLayanan, submission.TrackingCode,
	)
	s.dispatchAndLog(submission, message)
}

// DispatchStatusUpdate sends the message for a status change.
func (s *NotificationService) DispatchStatusUpdate(submission *models.Submission) {
	var detail string
	switch submission.Status {
	case models.StatusDiproses:
		detail = "sedang diproses"
	case models.StatusSelesai:
		detail = "telah selesai. Silakan datang ke kantor layanan untuk pengambilan"
	case models.StatusDitolak:
		detail = "ditolak. Silakan hubungi kantor layanan untuk informasi lebih lanjut"
	default:
		detail = "diperbarui"
	}
	message := fmt.Sprintf(
		"Halo %s, pengajuan %s dengan kode tracking %s %s.",
		submission.Nama, submission.JenisLayanan, submission.TrackingCode, detail,
	)
	s.dispatchAndLog(submission, message)
}

// Wait blocks until all detached dispatches have finished. Used by shutdown.
func (s *NotificationService) Wait() {
	s.inflight.Wait()
}

func (s *NotificationService) dispatchAndLog(submission *models.Submission, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	result := s.sender.Send(ctx, submission.NoWA, message)

	sendStatus := models.SendStatusFailed
	if result.Success {
		sendStatus = models.SendStatusSuccess
	}

	entry := models.NotificationLog{
		SubmissionID: submission.ID,
		Channel:      models.ChannelWhatsApp,
		SendStatus:   sendStatus,
		Payload: models.JSONB{
			"to":     submission.NoWA,
			"status": submission.Status,
			"result": map[string]interface{}{
				"success": result.Success,
				"raw":     result.Raw,
				"error":   result.Error,
			},
		},
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log notification for submission %s: %v", submission.ID, err)
	}

	log.Printf("WhatsApp notification for %s: %s", submission.TrackingCode, sendStatus)
}
