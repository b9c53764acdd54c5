package memdb

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

func TestJobRepo_CreateAndGet(t *testing.T) {
	jobs, _ := newTestRepos()
	owner := uuid.New()

	id := mustCreateJob(t, jobs, owner, 750)

	job, err := jobs.GetJobById(context.Background(), id)
	if err != nil {
		t.Fatalf("expected job, got error %v", err)
	}
	if job.OwnerId != owner {
		t.Fatalf("expected owner %s, got %s", owner, job.OwnerId)
	}
	if job.Status != entity.JobOpen {
		t.Fatalf("expected new job to be Open, got %s", job.Status)
	}
	if job.CreatedAt == "" {
		t.Fatal("expected createdAt to be set")
	}
}

func TestJobRepo_GetMissing(t *testing.T) {
	jobs, _ := newTestRepos()

	if _, err := jobs.GetJobById(context.Background(), uuid.New()); !errors.Is(err, repo_errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobRepo_EditPatchesOnlySuppliedFields(t *testing.T) {
	jobs, _ := newTestRepos()
	id := mustCreateJob(t, jobs, uuid.New(), 750)

	err := jobs.EditJobById(context.Background(), id, &entity.JobPatch{Budget: 1200})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	job, _ := jobs.GetJobById(context.Background(), id)
	if job.Budget != 1200 {
		t.Fatalf("expected budget 1200, got %d", job.Budget)
	}
	if job.Title != "build a landing page" {
		t.Fatalf("title should be untouched, got %q", job.Title)
	}
}

func TestJobRepo_DeleteCascadesToBids(t *testing.T) {
	jobs, bids := newTestRepos()
	jobId := mustCreateJob(t, jobs, uuid.New(), 1000)
	bidId := mustCreateBid(t, bids, jobId, uuid.New(), 900)

	if err := jobs.DeleteJobById(context.Background(), jobId); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := jobs.GetJobById(context.Background(), jobId); !errors.Is(err, repo_errors.ErrNotFound) {
		t.Fatalf("expected job gone, got %v", err)
	}
	if _, err := bids.GetBidById(context.Background(), bidId); !errors.Is(err, repo_errors.ErrNotFound) {
		t.Fatalf("expected bid gone, got %v", err)
	}
}

func TestJobRepo_OpenJobsKeepInsertionOrder(t *testing.T) {
	jobs, bids := newTestRepos()
	owner := uuid.New()

	first := mustCreateJob(t, jobs, owner, 100)
	second := mustCreateJob(t, jobs, owner, 200)
	third := mustCreateJob(t, jobs, owner, 300)

	// assigning the middle job removes it from the open listing
	bidId := mustCreateBid(t, bids, second, uuid.New(), 150)
	if err := bids.HireBid(context.Background(), bidId); err != nil {
		t.Fatalf("hire: %v", err)
	}

	open, err := jobs.GetOpenJobs(context.Background())
	if err != nil {
		t.Fatalf("get open jobs: %v", err)
	}
	if len(open) != 2 || open[0].Id != first || open[1].Id != third {
		t.Fatalf("expected [first, third] in order, got %+v", open)
	}
}

func TestJobRepo_ConcurrentCreateAndList(t *testing.T) {
	jobs, _ := newTestRepos()
	const writers = 100

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := jobs.CreateJob(context.Background(), &entity.CreateJobInput{
				OwnerId:     uuid.New(),
				Title:       "job",
				Description: "desc",
				Budget:      int64(i + 1),
			})
			if err != nil {
				t.Errorf("create: %v", err)
			}
		}(i)
	}

	var rwg sync.WaitGroup
	rwg.Add(1)
	go func() {
		defer rwg.Done()
		for i := 0; i < 50; i++ {
			if _, err := jobs.GetOpenJobs(context.Background()); err != nil {
				t.Errorf("list: %v", err)
			}
		}
	}()

	wg.Wait()
	rwg.Wait()

	open, err := jobs.GetOpenJobs(context.Background())
	if err != nil {
		t.Fatalf("get open jobs: %v", err)
	}
	if len(open) != writers {
		t.Fatalf("expected %d open jobs, got %d", writers, len(open))
	}
}
