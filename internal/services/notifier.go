package services

import (
	"context"
	"time"

	"github.com/talakunchi/exam-portal-service/internal/events"
	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// Notifier delivers out-of-band messages to candidates and admins. The
// event-backed implementation publishes to the notification topic; a
// downstream mailer turns the events into emails.
type Notifier interface {
	NotifyCredentialsIssued(ctx context.Context, candidate *models.Candidate, password string, exam *models.Exam) error
	NotifyResultPublished(ctx context.Context, exam *models.Exam, jobRole *models.JobRole, recipients []events.ResultRecipient) error
	NotifyOTPIssued(ctx context.Context, admin *models.Admin, code string, expiresAt time.Time) error
}

type eventNotifier struct {
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewEventNotifier(publisher events.EventPublisher, logger utils.Logger) Notifier {
	return &eventNotifier{publisher: publisher, logger: logger}
}

func (n *eventNotifier) NotifyCredentialsIssued(ctx context.Context, candidate *models.Candidate, password string, exam *models.Exam) error {
	event := events.NewCandidateRegisteredEvent(
		candidate.ID,
		candidate.FullName,
		candidate.Email,
		candidate.Username,
		password,
		exam.ID,
		exam.Title,
	)
	return n.publisher.PublishNotificationEvent(ctx, event)
}

func (n *eventNotifier) NotifyResultPublished(ctx context.Context, exam *models.Exam, jobRole *models.JobRole, recipients []events.ResultRecipient) error {
	event := events.NewResultPublishedEvent(exam.ID, exam.Title, jobRole.Title, recipients)
	return n.publisher.PublishNotificationEvent(ctx, event)
}

func (n *eventNotifier) NotifyOTPIssued(ctx context.Context, admin *models.Admin, code string, expiresAt time.Time) error {
	event := events.NewOTPIssuedEvent(admin.ID, admin.AdminName, admin.Email, code, expiresAt)
	return n.publisher.PublishNotificationEvent(ctx, event)
}
