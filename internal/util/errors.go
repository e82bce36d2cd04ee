package util

import "errors"

// Sentinel errors shared between services and controllers. Controllers map
// them onto HTTP statuses, services return them untouched.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrMockTestNotFound = errors.New("mock test not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrNoQuizAvailable  = errors.New("no quiz available for this date")
	ErrAlreadyAttempted = errors.New("quiz already attempted for this date")
	ErrAttemptsExceeded = errors.New("maximum attempts reached for this test")
	ErrInvalidOption    = errors.New("invalid answer option")

	ErrConversationNotFound = errors.New("conversation not found")
)
