package claims

import "errors"

// Storage sentinel errors. Handlers translate these to HTTP statuses;
// everything else surfaces as an internal error.
var (
	ErrCaseNotFound        = errors.New("case not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrTerminationNotFound = errors.New("termination not found")

	// ErrTerminationExists: a case carries at most one termination record.
	ErrTerminationExists = errors.New("termination already exists for case")
)
