package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/repo_errors"
	"gig-marketplace-api/pkg/postgres"
	"time"

	"github.com/google/uuid"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

const bidColumns = "id, job_id, freelancer_id, message, price, status, created_at"

func scanBid(row interface{ Scan(...interface{}) error }) (*entity.Bid, error) {
	var bid entity.Bid
	var createdAt time.Time
	err := row.Scan(&bid.Id, &bid.JobId, &bid.FreelancerId, &bid.Message,
		&bid.Price, &bid.Status, &createdAt)
	if err != nil {
		return nil, err
	}

	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}

// The job row is locked for the duration of the transaction so a racing hire
// cannot admit this bid into a job that just became Assigned.
func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	getJobStatusSql, args, _ := r.SqlBuilder.
		Select("status").
		From("job").
		Where("id = ?", input.JobId).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	var jobStatus entity.JobStatus
	err = tx.QueryRow(getJobStatusSql, args...).Scan(&jobStatus)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, repo_errors.ErrNotFound
		}

		return uuid.Nil, err
	}

	if jobStatus != entity.JobOpen {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, repo_errors.ErrJobNotOpen
	}

	countPendingSql, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("bid").
		Where("job_id = ?", input.JobId).
		Where("freelancer_id = ?", input.FreelancerId).
		Where("status = ?", entity.BidPending).
		RunWith(tx).
		ToSql()

	var pendingCnt int
	if err = tx.QueryRow(countPendingSql, args...).Scan(&pendingCnt); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	if pendingCnt > 0 {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, repo_errors.ErrDuplicatePending
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("job_id", "freelancer_id", "message", "price", "status").
		Values(input.JobId, input.FreelancerId, input.Message, input.Price, entity.BidPending).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var bidId uuid.UUID
	if err = tx.QueryRow(createBidSql, args...).Scan(&bidId); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("id = ?", id).
		ToSql()

	bid, err := scanBid(r.Database.QueryRowContext(ctx, getBidSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return bid, nil
}

// HireBid locks the bid's job row, guards on it still being Open, then applies
// the whole transition in one transaction. The row lock serializes concurrent
// hires on the same job: the loser wakes up, reads Assigned and fails.
func (r *BidRepo) HireBid(ctx context.Context, bidId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select("job_id", "status").
		From("bid").
		Where("id = ?", bidId).
		RunWith(tx).
		ToSql()

	var jobId uuid.UUID
	var bidStatus entity.BidStatus
	err = tx.QueryRow(getBidSql, args...).Scan(&jobId, &bidStatus)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	getJobStatusSql, args, _ := r.SqlBuilder.
		Select("status").
		From("job").
		Where("id = ?", jobId).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	var jobStatus entity.JobStatus
	if err = tx.QueryRow(getJobStatusSql, args...).Scan(&jobStatus); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	if jobStatus != entity.JobOpen {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrJobAlreadyAssigned
	}

	// re-read the bid under the job lock: a hire that won an earlier race may
	// have rejected it already
	reCheckBidSql, args, _ := r.SqlBuilder.
		Select("status").
		From("bid").
		Where("id = ?", bidId).
		RunWith(tx).
		ToSql()

	if err = tx.QueryRow(reCheckBidSql, args...).Scan(&bidStatus); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if bidStatus != entity.BidPending {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrBidNotPending
	}

	rejectSiblingsSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", entity.BidRejected).
		Where("job_id = ?", jobId).
		Where("status = ?", entity.BidPending).
		Where("id <> ?", bidId).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(rejectSiblingsSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	hireBidSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", entity.BidHired).
		Where("id = ?", bidId).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(hireBidSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	assignJobSql, args, _ := r.SqlBuilder.
		Update("job").
		Set("status", entity.JobAssigned).
		Where("id = ?", jobId).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(assignJobSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *BidRepo) GetJobBids(ctx context.Context, jobId uuid.UUID) ([]entity.Bid, error) {
	getJobBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("job_id = ?", jobId).
		OrderBy("created_at ASC").
		ToSql()

	return r.queryBids(ctx, getJobBidsSql, args)
}

func (r *BidRepo) GetFreelancerBids(ctx context.Context, freelancerId uuid.UUID) ([]entity.Bid, error) {
	getFreelancerBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("freelancer_id = ?", freelancerId).
		OrderBy("created_at ASC").
		ToSql()

	return r.queryBids(ctx, getFreelancerBidsSql, args)
}

func (r *BidRepo) queryBids(ctx context.Context, query string, args []interface{}) ([]entity.Bid, error) {
	rows, err := r.Database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, err
		}
		bids = append(bids, *bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}
