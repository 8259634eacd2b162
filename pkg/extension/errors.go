package extension

// Error codes returned by extension construction and dispatch.
const (
	CodeInvalidExtension = "INVALID_EXTENSION"
	CodeDuplicateVersion = "DUPLICATE_VERSION"
	CodeVersionNotFound  = "VERSION_NOT_FOUND"
	CodeMigrateFailed    = "MIGRATE_FAILED"
)

// ExtensionError is a structured error from the extension layer.
type ExtensionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *ExtensionError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Code + ": " + e.Message
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *ExtensionError) Unwrap() error {
	return e.Cause
}
