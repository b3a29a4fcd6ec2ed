package assignment

import "errors"

var (
	// ErrAlreadyAssigned reports that another cleaner took the job first.
	ErrAlreadyAssigned = errors.New("booking already assigned to a cleaner")

	// ErrNoLongerAvailable reports that the accepting cleaner fails the
	// availability recheck at accept time.
	ErrNoLongerAvailable = errors.New("cleaner is no longer available for this job")

	// ErrCleanerNotFound reports that the caller is not an active cleaner.
	ErrCleanerNotFound = errors.New("cleaner not found")
)
