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

type JobRepo struct {
	*postgres.Postgres
}

func NewJobRepo(pgdb *postgres.Postgres) *JobRepo {
	return &JobRepo{pgdb}
}

const jobColumns = "id, owner_id, title, description, category, budget, status, created_at"

func scanJob(row interface{ Scan(...interface{}) error }) (*entity.Job, error) {
	var job entity.Job
	var category sql.NullString
	var createdAt time.Time
	err := row.Scan(&job.Id, &job.OwnerId, &job.Title, &job.Description,
		&category, &job.Budget, &job.Status, &createdAt)
	if err != nil {
		return nil, err
	}

	job.Category = category.String
	job.CreatedAt = createdAt.Format(time.RFC3339)

	return &job, nil
}

func (r *JobRepo) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error) {
	category := sql.NullString{String: input.Category, Valid: input.Category != ""}

	createJobSql, args, _ := r.SqlBuilder.
		Insert("job").
		Columns("owner_id", "title", "description", "category", "budget", "status").
		Values(input.OwnerId, input.Title, input.Description, category, input.Budget, entity.JobOpen).
		Suffix("RETURNING id").
		ToSql()

	var jobId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createJobSql, args...).Scan(&jobId)
	if err != nil {
		return uuid.Nil, err
	}

	return jobId, nil
}

func (r *JobRepo) GetJobById(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	getJobSql, args, _ := r.SqlBuilder.
		Select(jobColumns).
		From("job").
		Where("id = ?", id).
		ToSql()

	job, err := scanJob(r.Database.QueryRowContext(ctx, getJobSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return job, nil
}

func (r *JobRepo) EditJobById(ctx context.Context, id uuid.UUID, patch *entity.JobPatch) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	getOldValuesSql, args, _ := r.SqlBuilder.
		Select("title", "description", "budget").
		From("job").
		Where("id = ?", id).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	var prevTitle, prevDescription string
	var prevBudget int64
	err = tx.QueryRow(getOldValuesSql, args...).Scan(&prevTitle, &prevDescription, &prevBudget)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	title, description, budget := patch.Title, patch.Description, patch.Budget
	if title == "" {
		title = prevTitle
	}

	if description == "" {
		description = prevDescription
	}

	if budget == 0 {
		budget = prevBudget
	}

	updateJobSql, args, _ := r.SqlBuilder.
		Update("job").
		Set("title", title).
		Set("description", description).
		Set("budget", budget).
		Where("id = ?", id).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(updateJobSql, args...); err != nil {
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

func (r *JobRepo) DeleteJobById(ctx context.Context, id uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	deleteBidsSql, args, _ := r.SqlBuilder.
		Delete("bid").
		Where("job_id = ?", id).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(deleteBidsSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	deleteJobSql, args, _ := r.SqlBuilder.
		Delete("job").
		Where("id = ?", id).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(deleteJobSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if deleted == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *JobRepo) GetOpenJobs(ctx context.Context) ([]entity.Job, error) {
	getOpenJobsSql, args, _ := r.SqlBuilder.
		Select(jobColumns).
		From("job").
		Where("status = ?", entity.JobOpen).
		OrderBy("created_at ASC").
		ToSql()

	return r.queryJobs(ctx, getOpenJobsSql, args)
}

func (r *JobRepo) GetJobsByOwnerId(ctx context.Context, ownerId uuid.UUID) ([]entity.Job, error) {
	getOwnerJobsSql, args, _ := r.SqlBuilder.
		Select(jobColumns).
		From("job").
		Where("owner_id = ?", ownerId).
		OrderBy("created_at ASC").
		ToSql()

	return r.queryJobs(ctx, getOwnerJobsSql, args)
}

func (r *JobRepo) queryJobs(ctx context.Context, query string, args []interface{}) ([]entity.Job, error) {
	rows, err := r.Database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]entity.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, *job)
	}
	if err = rows.Err(); err != nil {
		return jobs, err
	}

	return jobs, nil
}
