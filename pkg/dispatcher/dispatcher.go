package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/events"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/extension"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/model"
)

const logPrefix = "dispatcher:dispatch"

// Dispatcher routes extension protocol requests to settings extension
// operations and maps structured errors onto wire error codes.
type Dispatcher struct {
	ext       *extension.SettingsExtension
	publisher events.EventPublisher
}

// NewDispatcher creates a new Dispatcher. Pass nil for publisher to skip
// change events.
func NewDispatcher(ext *extension.SettingsExtension, publisher events.EventPublisher) *Dispatcher {
	if publisher == nil {
		publisher = &events.NoOpPublisher{}
	}
	return &Dispatcher{ext: ext, publisher: publisher}
}

// Dispatch routes a request to the appropriate extension operation and returns
// a response. A validation result of false is a successful response with a
// false result, never an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req *ExtensionRequest) *ExtensionResponse {
	slog.Debug(fmt.Sprintf("%s - setting=%s method=%s version=%s id=%s", logPrefix, req.Setting, req.Method, req.Version, req.ID))

	// Subjects are usually extension-specific, but a misrouted request must not
	// be served by the wrong settings domain.
	if req.Setting != "" && req.Setting != d.ext.Name() {
		return errorResponse(req.ID, "EXTENSION_MISMATCH",
			fmt.Sprintf("request addressed to extension '%s', this extension serves '%s'", req.Setting, d.ext.Name()), false)
	}

	switch req.Method {
	case MethodSet:
		return d.handleSet(ctx, req)
	case MethodGenerate:
		return d.handleGenerate(req)
	case MethodValidate:
		return d.handleValidate(req)
	case MethodMigrate:
		return d.handleMigrate(req)
	case MethodFloodMigrate:
		return d.handleFloodMigrate(req)
	case MethodListVersions:
		return d.handleListVersions(req)
	default:
		return errorResponse(req.ID, "METHOD_NOT_FOUND", fmt.Sprintf("unknown method: %s", req.Method), false)
	}
}

func (d *Dispatcher) handleSet(ctx context.Context, req *ExtensionRequest) *ExtensionResponse {
	var params SetParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, "INVALID_ARGUMENT", "failed to parse set params", false)
	}

	result, err := d.ext.Set(req.Version, params.Current, params.Target)
	if err != nil {
		return settingErrorToResponse(req.ID, err)
	}

	event := &events.SettingsChangedEvent{
		Extension: d.ext.Name(),
		Version:   req.Version,
		Value:     result,
	}
	if err := d.publisher.PublishChanged(ctx, event); err != nil {
		slog.Warn(fmt.Sprintf("%s - failed to publish change event: %v", logPrefix, err))
	}

	return &ExtensionResponse{ID: req.ID, Ok: true, Result: json.RawMessage(result)}
}

func (d *Dispatcher) handleGenerate(req *ExtensionRequest) *ExtensionResponse {
	var params GenerateParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, "INVALID_ARGUMENT", "failed to parse generate params", false)
	}

	result, err := d.ext.Generate(req.Version, params.ExistingPartial, params.DependentSettings)
	if err != nil {
		return settingErrorToResponse(req.ID, err)
	}
	return &ExtensionResponse{ID: req.ID, Ok: true, Result: result}
}

func (d *Dispatcher) handleValidate(req *ExtensionRequest) *ExtensionResponse {
	var params ValidateParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, "INVALID_ARGUMENT", "failed to parse validate params", false)
	}

	ok, err := d.ext.Validate(req.Version, params.Value, params.ValidatedSettings)
	if err != nil {
		return settingErrorToResponse(req.ID, err)
	}
	return &ExtensionResponse{ID: req.ID, Ok: true, Result: ok}
}

func (d *Dispatcher) handleMigrate(req *ExtensionRequest) *ExtensionResponse {
	var params MigrateParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, "INVALID_ARGUMENT", "failed to parse migrate params", false)
	}

	result, err := d.ext.Migrate(params.Value, params.From, params.To)
	if err != nil {
		return settingErrorToResponse(req.ID, err)
	}
	return &ExtensionResponse{ID: req.ID, Ok: true, Result: json.RawMessage(result)}
}

func (d *Dispatcher) handleFloodMigrate(req *ExtensionRequest) *ExtensionResponse {
	var params FloodMigrateParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, "INVALID_ARGUMENT", "failed to parse flood-migrate params", false)
	}

	results, err := d.ext.FloodMigrate(params.Value, params.From)
	if err != nil {
		return settingErrorToResponse(req.ID, err)
	}
	return &ExtensionResponse{ID: req.ID, Ok: true, Result: results}
}

func (d *Dispatcher) handleListVersions(req *ExtensionRequest) *ExtensionResponse {
	return &ExtensionResponse{ID: req.ID, Ok: true, Result: &ListVersionsOutput{
		Extension: d.ext.Name(),
		Versions:  d.ext.Versions(),
	}}
}

// --- helpers ---

func errorResponse(id, code, message string, retryable bool) *ExtensionResponse {
	return &ExtensionResponse{
		ID: id,
		Ok: false,
		Error: &ErrorDetail{
			Code:      code,
			Message:   message,
			Retryable: retryable,
		},
	}
}

// settingErrorCodes maps model error kinds to wire error codes.
var settingErrorCodes = map[string]string{
	model.KindDeserializeInput: "DESERIALIZE_INPUT",
	model.KindParseSetting:     "PARSE_SETTING",
	model.KindGenerateSetting:  "GENERATE_FAILED",
	model.KindSetSetting:       "SET_FAILED",
	model.KindValidateSetting:  "VALIDATE_FAILED",
	model.KindMigrateSetting:   "MIGRATE_FAILED",
	model.KindSerializeResult:  "SERIALIZE_RESULT",
}

func settingErrorToResponse(id string, err error) *ExtensionResponse {
	var settingErr *model.SettingError
	if errors.As(err, &settingErr) {
		code, ok := settingErrorCodes[settingErr.Kind]
		if !ok {
			code = "INTERNAL_ERROR"
		}
		return &ExtensionResponse{
			ID: id,
			Ok: false,
			Error: &ErrorDetail{
				Code:    code,
				Message: settingErr.Error(),
				Version: settingErr.Version,
				Input:   settingErr.Input,
			},
		}
	}

	var extErr *extension.ExtensionError
	if errors.As(err, &extErr) {
		return &ExtensionResponse{
			ID: id,
			Ok: false,
			Error: &ErrorDetail{
				Code:    extErr.Code,
				Message: extErr.Error(),
			},
		}
	}

	return errorResponse(id, "INTERNAL_ERROR", err.Error(), true)
}
