package repo_errors

import "errors"

var (
	ErrNotFound           = errors.New("entity not found")
	ErrJobNotOpen         = errors.New("job is not open")
	ErrJobAlreadyAssigned = errors.New("job is already assigned")
	ErrBidNotPending      = errors.New("bid is not pending")
	ErrDuplicatePending   = errors.New("freelancer already has a pending bid on this job")
)
