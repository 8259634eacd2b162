package model

import (
	"encoding/json"
	"fmt"
)

// GenerateResult is the outcome of one generation cycle for a setting: either
// NeedsData (generation is incomplete, carrying any accumulated partial state)
// or Complete (generation finished, carrying the final value).
//
// Once a model returns Complete, the settings system stops invoking Generate
// for that value within the current generation cycle.
type GenerateResult[P, C any] struct {
	needsData bool
	partial   *P
	complete  C
}

// NeedsData signals that other settings must generate more data before this
// generation can complete. The partial may be nil when no state has been
// accumulated yet.
func NeedsData[P, C any](partial *P) GenerateResult[P, C] {
	return GenerateResult[P, C]{needsData: true, partial: partial}
}

// Complete signals that generation has finished with the given value.
func Complete[P, C any](value C) GenerateResult[P, C] {
	return GenerateResult[P, C]{complete: value}
}

// IsComplete reports whether this result carries a final value.
func (r GenerateResult[P, C]) IsComplete() bool {
	return !r.needsData
}

// Partial returns the accumulated partial state of a NeedsData result.
// It is nil for Complete results and for NeedsData results without state.
func (r GenerateResult[P, C]) Partial() *P {
	return r.partial
}

// Value returns the final value of a Complete result. For NeedsData results it
// returns the zero value of C.
func (r GenerateResult[P, C]) Value() C {
	return r.complete
}

// Serialize converts both variants' payloads into raw JSON for transport.
//
// The conversion is total: if either payload fails to serialize the whole
// result is an error, never a partially serialized mix.
func (r GenerateResult[P, C]) Serialize() (RawGenerateResult, error) {
	if r.needsData {
		if r.partial == nil {
			return RawNeedsData(nil), nil
		}
		data, err := json.Marshal(r.partial)
		if err != nil {
			return RawGenerateResult{}, err
		}
		return RawNeedsData(data), nil
	}
	data, err := json.Marshal(r.complete)
	if err != nil {
		return RawGenerateResult{}, err
	}
	return RawComplete(data), nil
}

// RawGenerateResult is a GenerateResult whose payloads have been serialized to
// raw JSON. Its wire form is `{"NeedsData": <partial|null>}` or
// `{"Complete": <value>}`.
type RawGenerateResult struct {
	needsData bool
	payload   json.RawMessage
}

// RawNeedsData constructs the serialized form of a NeedsData result. A nil
// payload represents absent partial state.
func RawNeedsData(partial json.RawMessage) RawGenerateResult {
	return RawGenerateResult{needsData: true, payload: partial}
}

// RawComplete constructs the serialized form of a Complete result.
func RawComplete(value json.RawMessage) RawGenerateResult {
	return RawGenerateResult{payload: value}
}

// IsComplete reports whether this result carries a final value.
func (r RawGenerateResult) IsComplete() bool {
	return !r.needsData
}

// Payload returns the raw JSON payload: the partial state for NeedsData (nil
// when absent) or the final value for Complete.
func (r RawGenerateResult) Payload() json.RawMessage {
	return r.payload
}

// MarshalJSON encodes the tagged-union wire form.
func (r RawGenerateResult) MarshalJSON() ([]byte, error) {
	variant := "Complete"
	if r.needsData {
		variant = "NeedsData"
	}
	payload := r.payload
	if payload == nil {
		if !r.needsData {
			return nil, fmt.Errorf("generate result: Complete variant requires a payload")
		}
		payload = json.RawMessage("null")
	}
	return json.Marshal(map[string]json.RawMessage{variant: payload})
}

// UnmarshalJSON decodes the tagged-union wire form.
func (r *RawGenerateResult) UnmarshalJSON(data []byte) error {
	var variants map[string]json.RawMessage
	if err := json.Unmarshal(data, &variants); err != nil {
		return err
	}
	if len(variants) != 1 {
		return fmt.Errorf("generate result: expected exactly one variant, got %d", len(variants))
	}
	if payload, ok := variants["NeedsData"]; ok {
		if isJSONNull(payload) {
			payload = nil
		}
		*r = RawNeedsData(payload)
		return nil
	}
	if payload, ok := variants["Complete"]; ok {
		*r = RawComplete(payload)
		return nil
	}
	for variant := range variants {
		return fmt.Errorf("generate result: unknown variant %q", variant)
	}
	return nil
}

// isJSONNull reports whether a raw message is absent or the JSON literal null.
func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
