package service

import (
	"context"
	"errors"
	"testing"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/events"
	"gig-marketplace-api/internal/repo"

	"github.com/google/uuid"
)

func newTestServices() *Services {
	return NewServices(repo.NewMemoryRepositories(), events.NopPublisher{})
}

func client() *entity.Caller {
	return &entity.Caller{Id: uuid.New(), Role: entity.RoleClient}
}

func freelancer() *entity.Caller {
	return &entity.Caller{Id: uuid.New(), Role: entity.RoleFreelancer}
}

func postJob(t *testing.T, s *Services, caller *entity.Caller, title string, budget int64) *entity.JobOutputModel {
	t.Helper()

	job, err := s.Job.CreateJob(context.Background(), caller, &entity.CreateJobInput{
		Title:       title,
		Description: "some work that needs doing",
		Budget:      budget,
	})
	if err != nil {
		t.Fatalf("post job: %v", err)
	}

	return job
}

func submitBid(t *testing.T, s *Services, caller *entity.Caller, jobId string, price int64) *entity.BidOutputModel {
	t.Helper()

	bid, err := s.Bid.CreateBid(context.Background(), caller, &entity.CreateBidInput{
		JobId:   uuid.MustParse(jobId),
		Message: "I can deliver this",
		Price:   price,
	})
	if err != nil {
		t.Fatalf("submit bid: %v", err)
	}

	return bid
}

func TestCreateJob_OnlyClients(t *testing.T) {
	s := newTestServices()

	_, err := s.Job.CreateJob(context.Background(), freelancer(), &entity.CreateJobInput{
		Title: "t", Description: "d", Budget: 100,
	})
	if !errors.Is(err, ErrCallerNotClient) {
		t.Fatalf("expected ErrCallerNotClient, got %v", err)
	}
}

func TestCreateJob_Validation(t *testing.T) {
	s := newTestServices()
	caller := client()

	_, err := s.Job.CreateJob(context.Background(), caller, &entity.CreateJobInput{
		Title: "   ", Description: "d", Budget: 100,
	})
	if !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}

	_, err = s.Job.CreateJob(context.Background(), caller, &entity.CreateJobInput{
		Title: "t", Description: "\t\n", Budget: 100,
	})
	if !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}

	_, err = s.Job.CreateJob(context.Background(), caller, &entity.CreateJobInput{
		Title: "t", Description: "d", Budget: 0,
	})
	if !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
}

func TestCreateJob_OpensWithCallerAsOwner(t *testing.T) {
	s := newTestServices()
	caller := client()

	job := postJob(t, s, caller, "build an api", 1000)

	if job.Status != string(entity.JobOpen) {
		t.Fatalf("expected Open, got %s", job.Status)
	}
	if job.OwnerId != caller.Id.String() {
		t.Fatalf("expected owner %s, got %s", caller.Id, job.OwnerId)
	}
	if job.CreatedAt == "" {
		t.Fatal("expected createdAt to be set")
	}
}

func TestEditJob_OwnerOnly(t *testing.T) {
	s := newTestServices()
	owner := client()
	job := postJob(t, s, owner, "build an api", 1000)

	_, err := s.Job.EditJobById(context.Background(), client(), uuid.MustParse(job.Id), &entity.JobPatch{Title: "new"})
	if !errors.Is(err, ErrUserHasNoAccessToJob) {
		t.Fatalf("expected ErrUserHasNoAccessToJob, got %v", err)
	}
}

func TestEditJob_PatchSubset(t *testing.T) {
	s := newTestServices()
	owner := client()
	job := postJob(t, s, owner, "build an api", 1000)

	updated, err := s.Job.EditJobById(context.Background(), owner, uuid.MustParse(job.Id), &entity.JobPatch{Budget: 1500})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if updated.Budget != 1500 {
		t.Fatalf("expected budget 1500, got %d", updated.Budget)
	}
	if updated.Title != "build an api" {
		t.Fatalf("title should be untouched, got %q", updated.Title)
	}
	if updated.Status != string(entity.JobOpen) {
		t.Fatalf("status should be untouched, got %s", updated.Status)
	}
}

func TestEditJob_EmptyPatchRejected(t *testing.T) {
	s := newTestServices()
	owner := client()
	job := postJob(t, s, owner, "build an api", 1000)

	_, err := s.Job.EditJobById(context.Background(), owner, uuid.MustParse(job.Id), &entity.JobPatch{})
	if !errors.Is(err, ErrNoNewChanges) {
		t.Fatalf("expected ErrNoNewChanges, got %v", err)
	}
}

func TestEditJob_NegativeBudgetRejected(t *testing.T) {
	s := newTestServices()
	owner := client()
	job := postJob(t, s, owner, "build an api", 1000)

	_, err := s.Job.EditJobById(context.Background(), owner, uuid.MustParse(job.Id), &entity.JobPatch{Budget: -5})
	if !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
}

func TestEditJob_Unknown(t *testing.T) {
	s := newTestServices()

	_, err := s.Job.EditJobById(context.Background(), client(), uuid.New(), &entity.JobPatch{Title: "x"})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestDeleteJob_CascadesAndScrubsBids(t *testing.T) {
	s := newTestServices()
	owner := client()
	bidder := freelancer()
	job := postJob(t, s, owner, "build an api", 1000)
	submitBid(t, s, bidder, job.Id, 900)

	if err := s.Job.DeleteJobById(context.Background(), owner, uuid.MustParse(job.Id)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.Job.GetJobById(context.Background(), uuid.MustParse(job.Id)); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected job gone, got %v", err)
	}

	bids, err := s.Bid.GetUserBids(context.Background(), bidder)
	if err != nil {
		t.Fatalf("get user bids: %v", err)
	}
	if len(bids) != 0 {
		t.Fatalf("expected bids to be cascade-deleted, got %d", len(bids))
	}
}

func TestDeleteJob_OwnerOnly(t *testing.T) {
	s := newTestServices()
	owner := client()
	job := postJob(t, s, owner, "build an api", 1000)

	err := s.Job.DeleteJobById(context.Background(), client(), uuid.MustParse(job.Id))
	if !errors.Is(err, ErrUserHasNoAccessToJob) {
		t.Fatalf("expected ErrUserHasNoAccessToJob, got %v", err)
	}
}

func TestGetUserJobStats(t *testing.T) {
	s := newTestServices()
	owner := client()
	bidder := freelancer()

	postJob(t, s, owner, "first", 500)
	assigned := postJob(t, s, owner, "second", 800)

	bid := submitBid(t, s, bidder, assigned.Id, 700)
	if _, err := s.Bid.HireBid(context.Background(), owner, uuid.MustParse(bid.Id)); err != nil {
		t.Fatalf("hire: %v", err)
	}

	stats, err := s.Job.GetUserJobStats(context.Background(), owner)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalJobs != 2 || stats.OpenJobs != 1 || stats.AssignedJobs != 1 {
		t.Fatalf("expected {2 1 1}, got %+v", stats)
	}
}

func TestGetOpenJobs_BudgetBandBoundaries(t *testing.T) {
	s := newTestServices()
	owner := client()

	postJob(t, s, owner, "at the edge", 500)
	postJob(t, s, owner, "just over", 501)
	postJob(t, s, owner, "under", 499)

	jobs, err := s.Job.GetOpenJobs(context.Background(), &entity.JobFilter{BudgetRange: entity.BudgetUpTo500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs in 0-500 band, got %d", len(jobs))
	}
	for _, job := range jobs {
		if job.Budget > 500 {
			t.Fatalf("budget %d should not be in the 0-500 band", job.Budget)
		}
	}

	jobs, err = s.Job.GetOpenJobs(context.Background(), &entity.JobFilter{BudgetRange: entity.Budget500To1000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Budget != 501 {
		t.Fatalf("expected only the 501 job in 500-1000 band, got %+v", jobs)
	}
}

func TestGetOpenJobs_TextMatchesTitleOrDescription(t *testing.T) {
	s := newTestServices()
	owner := client()

	if _, err := s.Job.CreateJob(context.Background(), owner, &entity.CreateJobInput{
		Title: "Logo design", Description: "vector artwork", Budget: 300,
	}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if _, err := s.Job.CreateJob(context.Background(), owner, &entity.CreateJobInput{
		Title: "Backend work", Description: "needs a new LOGO endpoint", Budget: 400,
	}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if _, err := s.Job.CreateJob(context.Background(), owner, &entity.CreateJobInput{
		Title: "Copywriting", Description: "landing page text", Budget: 200,
	}); err != nil {
		t.Fatalf("post: %v", err)
	}

	jobs, err := s.Job.GetOpenJobs(context.Background(), &entity.JobFilter{Text: "logo"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected case-insensitive match on title or description, got %d jobs", len(jobs))
	}
}

func TestGetOpenJobs_CategoryAndCombination(t *testing.T) {
	s := newTestServices()
	owner := client()

	if _, err := s.Job.CreateJob(context.Background(), owner, &entity.CreateJobInput{
		Title: "App design", Description: "mobile", Category: "design", Budget: 300,
	}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if _, err := s.Job.CreateJob(context.Background(), owner, &entity.CreateJobInput{
		Title: "App design review", Description: "mobile", Budget: 900,
	}); err != nil {
		t.Fatalf("post: %v", err)
	}

	// a job without a category only matches the unrestricted query
	jobs, err := s.Job.GetOpenJobs(context.Background(), &entity.JobFilter{Category: "design"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Category != "design" {
		t.Fatalf("expected only the categorized job, got %+v", jobs)
	}

	// all predicates must hold at once
	jobs, err = s.Job.GetOpenJobs(context.Background(), &entity.JobFilter{
		Text:        "design",
		Category:    "design",
		BudgetRange: entity.Budget500To1000,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no job to satisfy all predicates, got %d", len(jobs))
	}

	jobs, err = s.Job.GetOpenJobs(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected unfiltered listing of 2, got %d", len(jobs))
	}
}

func TestGetOpenJobs_StableOrder(t *testing.T) {
	s := newTestServices()
	owner := client()

	first := postJob(t, s, owner, "first", 100)
	second := postJob(t, s, owner, "second", 200)

	for i := 0; i < 5; i++ {
		jobs, err := s.Job.GetOpenJobs(context.Background(), nil)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(jobs) != 2 || jobs[0].Id != first.Id || jobs[1].Id != second.Id {
			t.Fatalf("expected stable [first, second] order, got %+v", jobs)
		}
	}
}

func TestGetUserJobs_OnlyClients(t *testing.T) {
	s := newTestServices()

	if _, err := s.Job.GetUserJobs(context.Background(), freelancer()); !errors.Is(err, ErrCallerNotClient) {
		t.Fatalf("expected ErrCallerNotClient, got %v", err)
	}
	if _, err := s.Job.GetUserJobStats(context.Background(), freelancer()); !errors.Is(err, ErrCallerNotClient) {
		t.Fatalf("expected ErrCallerNotClient, got %v", err)
	}
}
