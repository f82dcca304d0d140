package service

import (
	"context"

	"finhealth/internal/model"
	"finhealth/internal/repository"
)

// SubmissionService exposes archived submissions to admins
type SubmissionService struct {
	submissionRepo repository.SubmissionRepo
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(submissionRepo repository.SubmissionRepo) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
	}
}

// List returns archived submissions, newest first
func (s *SubmissionService) List(ctx context.Context, limit, offset int64) ([]*model.Submission, error) {
	return s.submissionRepo.List(ctx, limit, offset)
}

// GetByID retrieves one submission, nil if unknown
func (s *SubmissionService) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	return s.submissionRepo.GetByID(ctx, id)
}
