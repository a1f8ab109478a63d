package reports

import "errors"

var (
	// ErrNotFound means the participant or cohort does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingData means a required assessment stage is absent or
	// incomplete for the requested report.
	ErrMissingData = errors.New("required assessment data is missing")

	// ErrInsufficientData means the cohort has fewer than two participants
	// with both stages complete.
	ErrInsufficientData = errors.New("not enough completed assessments")
)

const (
	ErrorCodeNotFound         = "NOT_FOUND"
	ErrorCodeMissingData      = "MISSING_DATA"
	ErrorCodeInsufficientData = "INSUFFICIENT_DATA"
	ErrorCodeRenderFailure    = "RENDER_FAILURE"
)
