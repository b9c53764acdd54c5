package memdb

import (
	"context"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type JobRepo struct {
	store *Store
}

func NewJobRepo(store *Store) *JobRepo {
	return &JobRepo{store}
}

func (r *JobRepo) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job := &entity.Job{
		Id:          uuid.New(),
		OwnerId:     input.OwnerId,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Budget:      input.Budget,
		Status:      entity.JobOpen,
		CreatedAt:   now(),
	}

	r.store.jobs[job.Id] = job
	r.store.jobOrder = append(r.store.jobOrder, job.Id)

	return job.Id, nil
}

func (r *JobRepo) GetJobById(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	job, exists := r.store.jobs[id]
	if !exists {
		return nil, repo_errors.ErrNotFound
	}

	copied := *job

	return &copied, nil
}

func (r *JobRepo) EditJobById(ctx context.Context, id uuid.UUID, patch *entity.JobPatch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, exists := r.store.jobs[id]
	if !exists {
		return repo_errors.ErrNotFound
	}

	if patch.Title != "" {
		job.Title = patch.Title
	}

	if patch.Description != "" {
		job.Description = patch.Description
	}

	if patch.Budget != 0 {
		job.Budget = patch.Budget
	}

	return nil
}

func (r *JobRepo) DeleteJobById(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.jobs[id]; !exists {
		return repo_errors.ErrNotFound
	}

	remaining := r.store.bidOrder[:0:0]
	for _, bidId := range r.store.bidOrder {
		if r.store.bids[bidId].JobId == id {
			delete(r.store.bids, bidId)
			continue
		}
		remaining = append(remaining, bidId)
	}
	r.store.bidOrder = remaining

	delete(r.store.jobs, id)
	for i, jobId := range r.store.jobOrder {
		if jobId == id {
			r.store.jobOrder = append(r.store.jobOrder[:i], r.store.jobOrder[i+1:]...)
			break
		}
	}

	return nil
}

func (r *JobRepo) GetOpenJobs(ctx context.Context) ([]entity.Job, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	jobs := make([]entity.Job, 0)
	for _, id := range r.store.jobOrder {
		job := r.store.jobs[id]
		if job.Status == entity.JobOpen {
			jobs = append(jobs, *job)
		}
	}

	return jobs, nil
}

func (r *JobRepo) GetJobsByOwnerId(ctx context.Context, ownerId uuid.UUID) ([]entity.Job, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	jobs := make([]entity.Job, 0)
	for _, id := range r.store.jobOrder {
		job := r.store.jobs[id]
		if job.OwnerId == ownerId {
			jobs = append(jobs, *job)
		}
	}

	return jobs, nil
}
