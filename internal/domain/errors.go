// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// Company-related errors
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyRequired = errors.New("create a company before publishing opportunities")
	ErrCompanyLocked   = errors.New("company is fixed to the employer's company")

	// Opportunity-related errors
	ErrOpportunityNotFound    = errors.New("opportunity not found")
	ErrInvalidOpportunityType = errors.New("invalid opportunity type")
	ErrStaleRevision          = errors.New("opportunity was changed by someone else")

	// Authoring-related errors
	ErrSessionNotFound    = errors.New("authoring session not found")
	ErrValidation         = errors.New("required fields are missing")
	ErrFieldNotApplicable = errors.New("field does not apply to this opportunity type")
	ErrUnknownField       = errors.New("unknown field")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvalidStep        = errors.New("invalid step")
	ErrActionInFlight     = errors.New("action already in progress")
)
