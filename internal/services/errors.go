package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes.
var (
	ErrJobRoleNotFound      = errors.New("job role not found")
	ErrExamNotFound         = errors.New("exam not found")
	ErrPaperSetNotFound     = errors.New("paper set not found")
	ErrSectionNotFound      = errors.New("section not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrAssignedExamNotFound = errors.New("exam is not assigned to candidate")
	ErrAdminNotFound        = errors.New("admin not found")

	ErrJobRoleAlreadyExists  = errors.New("job role already exists")
	ErrExamAlreadyExists     = errors.New("exam already exists for job role")
	ErrPaperSetAlreadyExists = errors.New("paper set already exists for exam")
	ErrAdminAlreadyExists    = errors.New("admin already exists")

	ErrNoPaperSets        = errors.New("exam has no paper sets")
	ErrResultNotPublished = errors.New("result not published yet")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired or not issued")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrJobRoleNotFound) ||
		errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrPaperSetNotFound) ||
		errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrCandidateNotFound) ||
		errors.Is(err, ErrAssignedExamNotFound) ||
		errors.Is(err, ErrAdminNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrJobRoleAlreadyExists) ||
		errors.Is(err, ErrExamAlreadyExists) ||
		errors.Is(err, ErrPaperSetAlreadyExists) ||
		errors.Is(err, ErrAdminAlreadyExists) ||
		errors.Is(err, ErrResultNotPublished)
}

func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrAccountDisabled) ||
		errors.Is(err, ErrInvalidOTP) ||
		errors.Is(err, ErrOTPExpired)
}
