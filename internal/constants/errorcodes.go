package constants

// Machine-readable error codes, used for structured logging and to keep the
// auth failure modes distinguishable for observability even though they all
// surface as the same 401 to the caller.
const (
	// CodeAuthMissing indicates no authorization credential was supplied.
	CodeAuthMissing = "auth_missing"

	// CodeAuthMalformed indicates the authorization header was not a valid
	// scheme/token pair.
	CodeAuthMalformed = "auth_malformed"

	// CodeAuthRejected indicates the supplied token failed verification,
	// whether invalid or expired.
	CodeAuthRejected = "auth_rejected"

	// CodeTokenExpired indicates a well-formed token past its expiry.
	CodeTokenExpired = "token_expired"

	// CodeTokenInvalid indicates a malformed, tampered or wrongly signed token.
	CodeTokenInvalid = "token_invalid"

	// CodeValidationError indicates a request failed input validation.
	CodeValidationError = "validation_error"

	// CodeDuplicateResource indicates a uniqueness conflict.
	CodeDuplicateResource = "duplicate_resource"

	// CodeNotFound indicates the requested resource does not exist.
	CodeNotFound = "not_found"

	// CodeInternalError indicates an unexpected server-side failure.
	CodeInternalError = "internal_error"
)
