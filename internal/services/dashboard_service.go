package services

import (
	"context"
	"fmt"
	"time"

	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// DashboardService serves the admin landing page counters and charts.
type DashboardService interface {
	QuickAccess(ctx context.Context) (*QuickAccessStats, error)
	RegistrationSeries(ctx context.Context, months int) ([]MonthlyRegistrations, error)
	ExamParticipation(ctx context.Context) ([]ExamParticipation, error)
}

type QuickAccessStats struct {
	TotalExams      int64 `json:"total_exams"`
	TotalCandidates int64 `json:"total_candidates"`
	ActiveExams     int   `json:"active_exams"`
	UpcomingExams   int   `json:"upcoming_exams"`
}

type MonthlyRegistrations struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type ExamParticipation struct {
	ExamID    string `json:"exam_id"`
	Title     string `json:"title"`
	Assigned  int    `json:"assigned"`
	Attended  int    `json:"attended"`
	Published bool   `json:"published"`
}

type dashboardService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewDashboardService(repo repositories.Repository, logger utils.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) QuickAccess(ctx context.Context) (*QuickAccessStats, error) {
	totalExams, err := s.repo.Exam().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count exams: %w", err)
	}
	totalCandidates, err := s.repo.Candidate().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	exams, err := s.repo.Exam().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	now := time.Now()
	stats := &QuickAccessStats{
		TotalExams:      totalExams,
		TotalCandidates: totalCandidates,
	}
	for _, exam := range exams {
		switch {
		case exam.ExamDateAndTime.After(now):
			stats.UpcomingExams++
		case exam.EndTime().After(now):
			stats.ActiveExams++
		}
	}
	return stats, nil
}

// RegistrationSeries buckets candidate signups by calendar month for the
// last n months, oldest first.
func (s *dashboardService) RegistrationSeries(ctx context.Context, months int) ([]MonthlyRegistrations, error) {
	if months <= 0 {
		months = 6
	}

	candidates, err := s.repo.Candidate().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)

	counts := make(map[string]int, months)
	for _, candidate := range candidates {
		if candidate.CreatedAt.Before(start) {
			continue
		}
		counts[candidate.CreatedAt.Format("2006-01")]++
	}

	series := make([]MonthlyRegistrations, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		key := month.Format("2006-01")
		series = append(series, MonthlyRegistrations{Month: key, Count: counts[key]})
	}
	return series, nil
}

func (s *dashboardService) ExamParticipation(ctx context.Context) ([]ExamParticipation, error) {
	exams, err := s.repo.Exam().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	participation := make([]ExamParticipation, 0, len(exams))
	for _, exam := range exams {
		participation = append(participation, ExamParticipation{
			ExamID:    exam.ID,
			Title:     exam.Title,
			Assigned:  len(exam.AssignedCandidates),
			Attended:  len(exam.AttendedBy),
			Published: exam.ResultPublished,
		})
	}
	return participation, nil
}
