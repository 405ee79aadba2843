package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrUnknownBank ErrCode = "UNKNOWN_BANK"

	// ─── Library ───────────────────────────────────────────────────────
	ErrLibraryUnavailable ErrCode = "LIBRARY_UNAVAILABLE"

	// ─── Equation balancer ─────────────────────────────────────────────
	ErrEmptyEquationSide ErrCode = "EMPTY_EQUATION_SIDE"
	ErrInvalidFormula    ErrCode = "INVALID_FORMULA"

	// ─── Quiz stream ───────────────────────────────────────────────────
	ErrInvalidOption ErrCode = "INVALID_OPTION"
	ErrUnknownAction ErrCode = "UNKNOWN_ACTION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrUnknownBank:
		return "Unknown quiz bank."

	// ─── Library ───────────────────────────────────────────────────────
	case ErrLibraryUnavailable:
		return "Failed to load library data. Please refresh the page."

	// ─── Equation balancer ─────────────────────────────────────────────
	case ErrEmptyEquationSide:
		return "Please enter both reactants and products."
	case ErrInvalidFormula:
		return "Invalid chemical formula format."

	// ─── Quiz stream ───────────────────────────────────────────────────
	case ErrInvalidOption:
		return "That option does not exist for this question."
	case ErrUnknownAction:
		return "Unknown quiz action."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
