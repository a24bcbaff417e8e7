package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of notification events
type EventType string

const (
	// Result events
	EventResultPublished EventType = "result.published"

	// Candidate events
	EventCandidateRegistered EventType = "candidate.registered"

	// Auth events
	EventOTPIssued EventType = "auth.otp_issued"
)

const eventSource = "exam-portal-service"

// NotificationEvent is the base event structure for all notification events.
// A downstream mailer consumes the notification topic and turns these into
// emails.
type NotificationEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
	Version   string         `json:"version"`
	Data      any            `json:"data"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Result notification event payloads

type ResultPublishedEvent struct {
	ExamID       string            `json:"exam_id"`
	ExamTitle    string            `json:"exam_title"`
	JobRoleTitle string            `json:"job_role_title"`
	PublishedAt  time.Time         `json:"published_at"`
	Recipients   []ResultRecipient `json:"recipients"`
}

type ResultRecipient struct {
	CandidateID string `json:"candidate_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Result      string `json:"result"`
	Score       int    `json:"score"`
	TotalMarks  int    `json:"total_marks"`
}

// Candidate notification event payload

type CandidateRegisteredEvent struct {
	CandidateID string `json:"candidate_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ExamID      string `json:"exam_id"`
	ExamTitle   string `json:"exam_title"`
}

// Auth notification event payload

type OTPIssuedEvent struct {
	AdminID   string    `json:"admin_id"`
	AdminName string    `json:"admin_name"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Event factory functions

func NewResultPublishedEvent(examID, examTitle, jobRoleTitle string, recipients []ResultRecipient) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      EventResultPublished,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data: ResultPublishedEvent{
			ExamID:       examID,
			ExamTitle:    examTitle,
			JobRoleTitle: jobRoleTitle,
			PublishedAt:  time.Now(),
			Recipients:   recipients,
		},
	}
}

func NewCandidateRegisteredEvent(candidateID, fullName, email, username, password, examID, examTitle string) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      EventCandidateRegistered,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data: CandidateRegisteredEvent{
			CandidateID: candidateID,
			FullName:    fullName,
			Email:       email,
			Username:    username,
			Password:    password,
			ExamID:      examID,
			ExamTitle:   examTitle,
		},
	}
}

func NewOTPIssuedEvent(adminID, adminName, email, code string, expiresAt time.Time) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      EventOTPIssued,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data: OTPIssuedEvent{
			AdminID:   adminID,
			AdminName: adminName,
			Email:     email,
			Code:      code,
			ExpiresAt: expiresAt,
		},
	}
}
