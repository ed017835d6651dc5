package errors

import "fmt"

// Categories. Every error returned to a caller wraps exactly one of them,
// which is what MapToGRPCError and the gateway switch on.
var (
	ErrInvalidArgument  = fmt.Errorf("invalid argument")
	ErrConflict         = fmt.Errorf("conflict")
	ErrNotFound         = fmt.Errorf("not found")
	ErrUnauthenticated  = fmt.Errorf("unauthenticated")
	ErrPermissionDenied = fmt.Errorf("permission denied")
	ErrUnavailable      = fmt.Errorf("unavailable")
)

var (
	ErrSelfConversation          = fmt.Errorf("%w: sender and recipient must be different users", ErrInvalidArgument)
	ErrEmptyParticipant          = fmt.Errorf("%w: participant id is empty", ErrInvalidArgument)
	ErrConversationAlreadyExists = fmt.Errorf("%w: conversation already exists for this pair", ErrConflict)
	ErrConversationNotFound      = fmt.Errorf("%w: conversation", ErrNotFound)

	ErrUserAlreadyExists  = fmt.Errorf("%w: user already registered", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrInvalidPassword    = fmt.Errorf("%w: password does not meet complexity rules", ErrInvalidArgument)
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrNotParticipant     = fmt.Errorf("%w: caller is not a participant", ErrPermissionDenied)

	ErrServiceNotFound = fmt.Errorf("%w: service", ErrNotFound)
	ErrServiceInactive = fmt.Errorf("%w: service is not alive", ErrUnavailable)

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
