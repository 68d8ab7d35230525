package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"coachslot/internal/logger"
	"coachslot/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return NewWithClient(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass,
		redis.NewClient(&redis.Options{Addr: redisAddr}))
}

func NewWithClient(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass string, client *redis.Client) *Service {
	return &Service{
		redis:    client,
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Type:    "generic",
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		metrics.RecordEmail(job.Type, "queue_error")
		return err
	}

	metrics.RecordEmail(job.Type, "queued")
	if length, err := s.redis.LLen(ctx, queueKey).Result(); err == nil {
		metrics.EmailQueueLength.Set(float64(length))
	}
	logger.Infof("Email queued: %s to %s", job.Subject, job.To)
	return nil
}

// Start runs the delivery loop until the context is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendBookingConfirmation(ctx context.Context, email, name, trainerName string, when time.Time, startTime string) error {
	subject := "Session Booked with " + trainerName
	body := fmt.Sprintf(`Hi %s,

Your training session is booked!

Trainer: %s
Date: %s
Time: %s

See you there!

- CoachSlot Team`, name, trainerName, when.Format("Jan 2, 2006"), startTime)

	return s.enqueue(ctx, EmailJob{
		To:      email,
		Name:    name,
		Type:    "booking_confirmation",
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendReminder(ctx context.Context, email, name, trainerName string, when time.Time, startTime string) error {
	subject := "Reminder: Session with " + trainerName + " Tomorrow"
	body := fmt.Sprintf(`Hi %s,

This is a reminder about your training session tomorrow:

Trainer: %s
Date: %s
Time: %s

See you soon!

- CoachSlot Team`, name, trainerName, when.Format("Jan 2, 2006"), startTime)

	return s.enqueue(ctx, EmailJob{
		To:      email,
		Name:    name,
		Type:    "reminder",
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendCancellation(ctx context.Context, email, name, trainerName string, when time.Time, feeCents, refundCents int64) error {
	subject := "Session Cancelled - " + trainerName
	body := fmt.Sprintf(`Hi %s,

Your training session with %s on %s has been cancelled.

Cancellation fee: $%.2f
Refund: $%.2f

- CoachSlot Team`, name, trainerName, when.Format("Jan 2, 2006"),
		float64(feeCents)/100, float64(refundCents)/100)

	return s.enqueue(ctx, EmailJob{
		To:      email,
		Name:    name,
		Type:    "cancellation",
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}
