package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrCollegeOnly      ErrCode = "COLLEGE_ACCESS_ONLY"
	ErrNotResourceOwner ErrCode = "NOT_RESOURCE_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrConflict      ErrCode = "CONFLICT"
	ErrInvalidState  ErrCode = "INVALID_STATE"
	ErrRouteNotFound ErrCode = "ROUTE_NOT_FOUND"

	// ─── Limits ────────────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"
	ErrPayloadTooLarge   ErrCode = "PAYLOAD_TOO_LARGE"

	// ─── Server ────────────────────────────────────────────────────────
	ErrRemoteUnavailable ErrCode = "REMOTE_UNAVAILABLE"
	ErrInternal          ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrCollegeOnly:
		return "This resource is restricted to college accounts."
	case ErrNotResourceOwner:
		return "This resource belongs to another account."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrInvalidState:
		return "The resource is not in a state that allows this action."
	case ErrRouteNotFound:
		return "Route not found."

	// ─── Limits ────────────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrPayloadTooLarge:
		return "Request body exceeds the size limit."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrRemoteUnavailable:
		return "A backing service is temporarily unavailable."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
