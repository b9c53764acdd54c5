package service

import (
	"context"
	"errors"
	"strings"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/events"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type JobService struct {
	jobRepo   repo.Job
	bidRepo   repo.Bid
	publisher events.Publisher
}

func NewJobService(repos *repo.Repositories, publisher events.Publisher) *JobService {
	return &JobService{
		jobRepo:   repos.Job,
		bidRepo:   repos.Bid,
		publisher: publisher,
	}
}

func (s *JobService) CreateJob(ctx context.Context, caller *entity.Caller, input *entity.CreateJobInput) (*entity.JobOutputModel, error) {
	if caller.Role != entity.RoleClient {
		return nil, ErrCallerNotClient
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)

	if input.Title == "" {
		return nil, ErrEmptyTitle
	}

	if input.Description == "" {
		return nil, ErrEmptyDescription
	}

	if input.Budget <= 0 {
		return nil, ErrInvalidBudget
	}

	input.OwnerId = caller.Id
	id, err := s.jobRepo.CreateJob(ctx, input)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetJobById(ctx, id)
	if err != nil {
		return nil, err
	}

	events.PublishJobPosted(ctx, s.publisher, job.Id)

	return mapJob(job), nil
}

func (s *JobService) GetJobById(ctx context.Context, jobId uuid.UUID) (*entity.JobOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	return mapJob(job), nil
}

func (s *JobService) EditJobById(ctx context.Context, caller *entity.Caller, jobId uuid.UUID, patch *entity.JobPatch) (*entity.JobOutputModel, error) {
	patch.Title = strings.TrimSpace(patch.Title)
	patch.Description = strings.TrimSpace(patch.Description)

	if patch.Empty() {
		return nil, ErrNoNewChanges
	}

	if patch.Budget < 0 {
		return nil, ErrInvalidBudget
	}

	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if job.OwnerId != caller.Id {
		return nil, ErrUserHasNoAccessToJob
	}

	if err = s.jobRepo.EditJobById(ctx, jobId, patch); err != nil {
		return nil, err
	}

	job, err = s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		return nil, err
	}

	return mapJob(job), nil
}

func (s *JobService) DeleteJobById(ctx context.Context, caller *entity.Caller, jobId uuid.UUID) error {
	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrJobNotFound
		}

		return err
	}

	if job.OwnerId != caller.Id {
		return ErrUserHasNoAccessToJob
	}

	if err = s.jobRepo.DeleteJobById(ctx, jobId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrJobNotFound
		}

		return err
	}

	return nil
}

func (s *JobService) GetUserJobs(ctx context.Context, caller *entity.Caller) ([]entity.JobOutputModel, error) {
	if caller.Role != entity.RoleClient {
		return nil, ErrCallerNotClient
	}

	jobs, err := s.jobRepo.GetJobsByOwnerId(ctx, caller.Id)
	if err != nil {
		return nil, err
	}

	return mapJobs(jobs), nil
}

func (s *JobService) GetUserJobStats(ctx context.Context, caller *entity.Caller) (*entity.JobStatsOutputModel, error) {
	if caller.Role != entity.RoleClient {
		return nil, ErrCallerNotClient
	}

	jobs, err := s.jobRepo.GetJobsByOwnerId(ctx, caller.Id)
	if err != nil {
		return nil, err
	}

	stats := &entity.JobStatsOutputModel{TotalJobs: len(jobs)}
	for _, job := range jobs {
		switch job.Status {
		case entity.JobOpen:
			stats.OpenJobs++
		case entity.JobAssigned:
			stats.AssignedJobs++
		}
	}

	return stats, nil
}

// GetOpenJobs is the public listing: no identity, no side effects. A job is
// included iff every supplied predicate matches.
func (s *JobService) GetOpenJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobOutputModel, error) {
	jobs, err := s.jobRepo.GetOpenJobs(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Job, 0, len(jobs))
	for _, job := range jobs {
		if matchesFilter(&job, filter) {
			matched = append(matched, job)
		}
	}

	return mapJobs(matched), nil
}

func matchesFilter(job *entity.Job, filter *entity.JobFilter) bool {
	if filter == nil {
		return true
	}

	if text := strings.ToLower(strings.TrimSpace(filter.Text)); text != "" {
		title := strings.ToLower(job.Title)
		description := strings.ToLower(job.Description)
		if !strings.Contains(title, text) && !strings.Contains(description, text) {
			return false
		}
	}

	if filter.Category != "" && job.Category != filter.Category {
		return false
	}

	if filter.BudgetRange != "" && !filter.BudgetRange.Matches(job.Budget) {
		return false
	}

	return true
}
