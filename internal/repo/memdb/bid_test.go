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

func newTestRepos() (*JobRepo, *BidRepo) {
	store := NewStore()
	return NewJobRepo(store), NewBidRepo(store)
}

func mustCreateJob(t *testing.T, jobs *JobRepo, owner uuid.UUID, budget int64) uuid.UUID {
	t.Helper()

	id, err := jobs.CreateJob(context.Background(), &entity.CreateJobInput{
		OwnerId:     owner,
		Title:       "build a landing page",
		Description: "responsive, two sections",
		Budget:      budget,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	return id
}

func mustCreateBid(t *testing.T, bids *BidRepo, jobId, freelancer uuid.UUID, price int64) uuid.UUID {
	t.Helper()

	id, err := bids.CreateBid(context.Background(), &entity.CreateBidInput{
		JobId:        jobId,
		FreelancerId: freelancer,
		Message:      "I can do this",
		Price:        price,
	})
	if err != nil {
		t.Fatalf("create bid: %v", err)
	}

	return id
}

func TestCreateBid_JobMissing(t *testing.T) {
	_, bids := newTestRepos()

	_, err := bids.CreateBid(context.Background(), &entity.CreateBidInput{
		JobId:        uuid.New(),
		FreelancerId: uuid.New(),
		Message:      "hello",
		Price:        100,
	})
	if !errors.Is(err, repo_errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBid_DuplicatePending(t *testing.T) {
	jobs, bids := newTestRepos()
	jobId := mustCreateJob(t, jobs, uuid.New(), 1000)
	freelancer := uuid.New()

	mustCreateBid(t, bids, jobId, freelancer, 900)

	_, err := bids.CreateBid(context.Background(), &entity.CreateBidInput{
		JobId:        jobId,
		FreelancerId: freelancer,
		Message:      "second try",
		Price:        800,
	})
	if !errors.Is(err, repo_errors.ErrDuplicatePending) {
		t.Fatalf("expected ErrDuplicatePending, got %v", err)
	}
}

func TestHireBid_Transition(t *testing.T) {
	jobs, bids := newTestRepos()
	jobId := mustCreateJob(t, jobs, uuid.New(), 1000)
	first := mustCreateBid(t, bids, jobId, uuid.New(), 900)
	second := mustCreateBid(t, bids, jobId, uuid.New(), 950)

	if err := bids.HireBid(context.Background(), second); err != nil {
		t.Fatalf("hire: %v", err)
	}

	job, err := jobs.GetJobById(context.Background(), jobId)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if job.Status != entity.JobAssigned {
		t.Fatalf("expected job Assigned, got %s", job.Status)
	}

	hired, _ := bids.GetBidById(context.Background(), second)
	if hired.Status != entity.BidHired {
		t.Fatalf("expected hired, got %s", hired.Status)
	}

	rejected, _ := bids.GetBidById(context.Background(), first)
	if rejected.Status != entity.BidRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
}

func TestHireBid_SecondHireFails(t *testing.T) {
	jobs, bids := newTestRepos()
	jobId := mustCreateJob(t, jobs, uuid.New(), 1000)
	bidId := mustCreateBid(t, bids, jobId, uuid.New(), 900)

	if err := bids.HireBid(context.Background(), bidId); err != nil {
		t.Fatalf("hire: %v", err)
	}

	if err := bids.HireBid(context.Background(), bidId); !errors.Is(err, repo_errors.ErrJobAlreadyAssigned) {
		t.Fatalf("expected ErrJobAlreadyAssigned, got %v", err)
	}
}

func TestHireBid_SubmitAfterHireFails(t *testing.T) {
	jobs, bids := newTestRepos()
	jobId := mustCreateJob(t, jobs, uuid.New(), 1000)
	bidId := mustCreateBid(t, bids, jobId, uuid.New(), 900)

	if err := bids.HireBid(context.Background(), bidId); err != nil {
		t.Fatalf("hire: %v", err)
	}

	_, err := bids.CreateBid(context.Background(), &entity.CreateBidInput{
		JobId:        jobId,
		FreelancerId: uuid.New(),
		Message:      "too late",
		Price:        500,
	})
	if !errors.Is(err, repo_errors.ErrJobNotOpen) {
		t.Fatalf("expected ErrJobNotOpen, got %v", err)
	}
}

func TestHireBid_ConcurrentOneWinner(t *testing.T) {
	jobs, bids := newTestRepos()
	jobId := mustCreateJob(t, jobs, uuid.New(), 1000)

	const contenders = 20
	bidIds := make([]uuid.UUID, contenders)
	for i := range bidIds {
		bidIds[i] = mustCreateBid(t, bids, jobId, uuid.New(), int64(100+i))
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	wg.Add(contenders)
	for i := 0; i < contenders; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = bids.HireBid(context.Background(), bidIds[i])
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		if !errors.Is(err, repo_errors.ErrJobAlreadyAssigned) && !errors.Is(err, repo_errors.ErrBidNotPending) {
			t.Fatalf("unexpected hire error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning hire, got %d", wins)
	}

	all, err := bids.GetJobBids(context.Background(), jobId)
	if err != nil {
		t.Fatalf("get job bids: %v", err)
	}

	hired, pending := 0, 0
	for _, bid := range all {
		switch bid.Status {
		case entity.BidHired:
			hired++
		case entity.BidPending:
			pending++
		}
	}
	if hired != 1 || pending != 0 {
		t.Fatalf("expected 1 hired and 0 pending, got %d hired, %d pending", hired, pending)
	}
}

func TestGetFreelancerBids_ResubmitAfterReject(t *testing.T) {
	jobs, bids := newTestRepos()
	jobId := mustCreateJob(t, jobs, uuid.New(), 1000)
	freelancer := uuid.New()

	mustCreateBid(t, bids, jobId, freelancer, 900)
	winner := mustCreateBid(t, bids, jobId, uuid.New(), 950)

	if err := bids.HireBid(context.Background(), winner); err != nil {
		t.Fatalf("hire: %v", err)
	}

	// job is Assigned now, resubmission fails on state, not on the duplicate rule
	_, err := bids.CreateBid(context.Background(), &entity.CreateBidInput{
		JobId:        jobId,
		FreelancerId: freelancer,
		Message:      "again",
		Price:        850,
	})
	if !errors.Is(err, repo_errors.ErrJobNotOpen) {
		t.Fatalf("expected ErrJobNotOpen, got %v", err)
	}

	mine, err := bids.GetFreelancerBids(context.Background(), freelancer)
	if err != nil {
		t.Fatalf("get freelancer bids: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != entity.BidRejected {
		t.Fatalf("expected one rejected bid, got %+v", mine)
	}
}
