package constants

// HTTP Headers used by the application.
const (
	// HeaderAuthorization is the standard authorization header.
	HeaderAuthorization = "Authorization"

	// HeaderContentType identifies the media type of the body.
	HeaderContentType = "Content-Type"

	// HeaderXRequestID carries the request correlation ID.
	HeaderXRequestID = "X-Request-ID"

	// HeaderXContentTypeOptions prevents MIME type sniffing.
	HeaderXContentTypeOptions = "X-Content-Type-Options"

	// HeaderXFrameOptions controls whether the response may be framed.
	HeaderXFrameOptions = "X-Frame-Options"
)

// Header Values used by the application.
const (
	// ContentTypeJSON is the JSON media type.
	ContentTypeJSON = "application/json"

	// BearerTokenPrefix is the scheme prefix of an accepted authorization header.
	BearerTokenPrefix = "Bearer "

	// ContentTypeOptionsNoSniff disables MIME type sniffing.
	ContentTypeOptionsNoSniff = "nosniff"

	// FrameOptionsDeny forbids framing of responses.
	FrameOptionsDeny = "DENY"
)

// Context key names for values attached to the request context.
const (
	// EmailContextKey stores the authenticated user's email.
	EmailContextKey = "user_email"

	// NameContextKey stores the authenticated user's display name.
	NameContextKey = "user_name"

	// RequestIDContextKey stores the unique request ID.
	RequestIDContextKey = "request_id"
)

// User-facing messages. Error bodies are a JSON object with a single
// human-readable "error" field, so these strings are the whole contract.
const (
	// MsgMissingToken is returned when no authorization credential is present.
	MsgMissingToken = "Missing authentication token"

	// MsgMalformedAuthHeader is returned when the authorization header is not
	// a scheme/token pair.
	MsgMalformedAuthHeader = "Invalid authorization header"

	// MsgInvalidOrExpiredToken is returned when token verification fails.
	// Invalid and expired tokens are not distinguished to the caller.
	MsgInvalidOrExpiredToken = "Invalid or expired token"

	// MsgInvalidCredentials is returned for both unknown email and wrong
	// password, to avoid leaking account existence.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgUserExists is returned on duplicate registration.
	MsgUserExists = "User already exists"

	// MsgEndpointNotFound is returned for unknown routes.
	MsgEndpointNotFound = "Endpoint not found"

	// MsgNoFileUploaded is returned when the upload field is absent.
	MsgNoFileUploaded = "No file uploaded"

	// MsgNoFileSelected is returned when the upload field carries an empty filename.
	MsgNoFileSelected = "No file selected"

	// MsgInvalidFileType is returned when the file extension is not in the allowlist.
	MsgInvalidFileType = "Invalid file type. Allowed: png, jpg, jpeg, gif, bmp"

	// MsgFileTooLarge is returned when an upload exceeds MaxUploadSize.
	MsgFileTooLarge = "File too large. Maximum size: 5MB"

	// MsgHistoryFailed is returned when the analysis history query fails.
	MsgHistoryFailed = "Failed to fetch history"

	// MsgRegistrationFailed is returned for unexpected failures during registration.
	MsgRegistrationFailed = "Registration failed"

	// MsgLoginFailed is returned for unexpected failures during login.
	MsgLoginFailed = "Login failed"

	// MsgInternalServerError is the generic message for unexpected failures.
	// Internal detail is logged server-side and never leaked.
	MsgInternalServerError = "Internal server error"

	// MsgDetectionFailed is returned when the detection pipeline fails
	// after validation succeeded.
	MsgDetectionFailed = "Server error. Please try again."
)
