package domain

import "errors"

var (
	// ErrInvalidCredentials covers both wrong password and unknown email so
	// callers cannot probe which identities exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user is inactive")
	ErrForbidden    = errors.New("access forbidden")

	ErrOrderNotFound       = errors.New("order not found")
	ErrDuplicateOrder      = errors.New("order already exists")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertificateExists   = errors.New("certificate already issued")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNotApproved         = errors.New("assessment not approved")
)
