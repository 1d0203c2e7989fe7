package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest       = "error.invalid_request"
	ErrKeyInvalidRequestBody   = "error.invalid_request_body"
	ErrKeyInvalidParameter     = "error.invalid_parameter"
	ErrKeyValidation           = "error.validation"
	ErrKeyInternalError        = "error.internal_error"
	ErrKeyUnauthorized         = "error.unauthorized"
	ErrKeyInvalidCredentials   = "error.invalid_credentials"
	ErrKeyTokenRequired        = "error.token_required"
	ErrKeySessionExpired       = "error.session_expired"
	ErrKeyVerificationRequired = "error.verification_required"
	ErrKeyNotFound             = "error.not_found"
	ErrKeyRateLimitExceeded    = "error.rate_limit_exceeded"
	ErrKeyConflict             = "error.conflict"
	ErrKeyTimeout              = "error.timeout"
	ErrKeyUpstream             = "error.upstream"
	ErrKeyServiceUnavailable   = "error.service_unavailable"

	// Contract drafts.
	ErrKeyDraftNotFound    = "error.draft.not_found"
	ErrKeyDraftConflict    = "error.draft.conflict"
	ErrKeyDraftStepForward = "error.draft.step_forward"
	ErrKeyDraftLastStep    = "error.draft.last_step"
	ErrKeyDraftUnknownStep = "error.draft.unknown_step"
)

// Success message translation keys.
const (
	SuccessKeyLoggedOut     = "success.logged_out"
	SuccessKeyClientDeleted = "success.client_deleted"
	SuccessKeyDraftDeleted  = "success.draft_deleted"
)
