package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrRequestNotFound    = errors.New("help request not found")
	ErrEntryNotFound      = errors.New("knowledge entry not found")
	ErrSupervisorNotFound = errors.New("supervisor not found")
)
