// Package dispatcher routes incoming extension protocol messages to settings
// extension operations.
package dispatcher

import "encoding/json"

// Protocol method names.
const (
	MethodSet          = "set"
	MethodGenerate     = "generate"
	MethodValidate     = "validate"
	MethodMigrate      = "migrate"
	MethodFloodMigrate = "flood-migrate"
	MethodListVersions = "list-versions"
)

// ExtensionRequest is the JSON envelope for incoming extension requests.
type ExtensionRequest struct {
	ID      string             `json:"id"`
	Setting string             `json:"setting,omitempty"`
	Method  string             `json:"method"`
	Version string             `json:"version,omitempty"`
	Params  json.RawMessage    `json:"params,omitempty"`
	Ctx     *InvocationContext `json:"ctx,omitempty"`
}

// ExtensionResponse is the JSON envelope for extension responses.
type ExtensionResponse struct {
	ID     string       `json:"id"`
	Ok     bool         `json:"ok"`
	Result interface{}  `json:"result,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail holds structured error information crossing the wire.
type ErrorDetail struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Version   string          `json:"version,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	Retryable bool            `json:"retryable"`
}

// InvocationContext holds context from the caller.
type InvocationContext struct {
	RequestID string `json:"requestId,omitempty"`
	TimeoutMs int    `json:"timeoutMs,omitempty"`
}

// SetParams holds parameters for the set method.
type SetParams struct {
	// Current is the currently stored value; absent or null if never set.
	Current json.RawMessage `json:"current,omitempty"`
	// Target is the caller-proposed new value.
	Target json.RawMessage `json:"target"`
}

// GenerateParams holds parameters for the generate method.
type GenerateParams struct {
	// ExistingPartial is the partial state this model returned on its previous
	// generation cycle, if any.
	ExistingPartial json.RawMessage `json:"existing_partial,omitempty"`
	// DependentSettings is the key→value snapshot of values generated so far
	// by declared dependencies, if any were declared.
	DependentSettings json.RawMessage `json:"dependent_settings,omitempty"`
}

// ValidateParams holds parameters for the validate method.
type ValidateParams struct {
	Value json.RawMessage `json:"value"`
	// ValidatedSettings is the key→value snapshot of already-validated
	// settings, if any.
	ValidatedSettings json.RawMessage `json:"validated_settings,omitempty"`
}

// MigrateParams holds parameters for the migrate method.
type MigrateParams struct {
	Value json.RawMessage `json:"value"`
	From  string          `json:"from"`
	To    string          `json:"to"`
}

// FloodMigrateParams holds parameters for the flood-migrate method.
type FloodMigrateParams struct {
	Value json.RawMessage `json:"value"`
	From  string          `json:"from"`
}

// ListVersionsOutput holds the result of the list-versions method.
type ListVersionsOutput struct {
	Extension string   `json:"extension"`
	Versions  []string `json:"versions"`
}
