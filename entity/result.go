package entity

import "errors"

const NotFoundMessage = "School not found"

var (
	// ErrNotFound is used inside the core only; callers see it as a result.
	ErrNotFound = errors.New(NotFoundMessage)
	// ErrStorage wraps every failure to read or write the persisted collection.
	ErrStorage = errors.New("storage failure")
)

// MutationResult is the outcome of create, update and deactivate.
type MutationResult struct {
	Success bool    `json:"success"`
	School  *School `json:"school"`
	Err     *string `json:"error"`
}

func SuccessResult(school School) MutationResult {
	return MutationResult{Success: true, School: &school}
}

func FailedResult(message string) MutationResult {
	return MutationResult{Success: false, Err: &message}
}
