package service

import "errors"

var (
	ErrJobNotFound = errors.New("job not found")
	ErrBidNotFound = errors.New("bid not found")

	ErrCallerNotClient      = errors.New("only clients can perform this action")
	ErrCallerNotFreelancer  = errors.New("only freelancers can perform this action")
	ErrUserHasNoAccessToJob = errors.New("caller doesn't own the job")
	ErrOwnJobBid            = errors.New("attempt to bid on caller's own job")

	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrEmptyDescription = errors.New("description must not be empty")
	ErrInvalidBudget    = errors.New("budget must be greater than zero")
	ErrEmptyMessage     = errors.New("bid message must not be empty")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrNoNewChanges     = errors.New("no new values")

	ErrJobNotOpen          = errors.New("job is not open for bids")
	ErrJobAlreadyAssigned  = errors.New("job is already assigned")
	ErrBidNotPending       = errors.New("bid is not pending")
	ErrDuplicatePendingBid = errors.New("a pending bid on this job already exists")
)
