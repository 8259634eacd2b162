package example

import (
	"encoding/json"
	"testing"
)

func TestModelV1_SetFromScratch(t *testing.T) {
	m := NewV1Setting()

	got, err := m.Set(nil, json.RawMessage(`{"name":"a","favorite_number":3}`))
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var value ExampleSettingsV1
	if err := json.Unmarshal(got, &value); err != nil {
		t.Fatalf("failed to parse set result: %v", err)
	}
	if value.Name != "a" || value.FavoriteNumber != 3 {
		t.Errorf("unexpected set result %+v", value)
	}
}

func TestModelV1_GenerateIsDeterministic(t *testing.T) {
	m := NewV1Setting()

	first, err := m.Generate(nil, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	second, err := m.Generate(nil, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if !first.IsComplete() || !second.IsComplete() {
		t.Fatal("expected v1 generation to complete")
	}
	if string(first.Payload()) != string(second.Payload()) {
		t.Errorf("identical inputs produced %s then %s", first.Payload(), second.Payload())
	}
}

func TestModelV1_Validate(t *testing.T) {
	m := NewV1Setting()

	ok, err := m.Validate(json.RawMessage(`{"name":"a","favorite_number":3}`), nil)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !ok {
		t.Error("expected value to validate")
	}

	ok, err = m.Validate(json.RawMessage(`{"name":"a","favorite_number":-1}`), nil)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if ok {
		t.Error("expected negative favorite_number to fail validation")
	}
}

func TestModelV2_GenerateWaitsForMotd(t *testing.T) {
	m := NewV2Setting()

	// No dependency snapshot yet: another cycle is needed.
	result, err := m.Generate(nil, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.IsComplete() {
		t.Fatal("expected NeedsData without a dependency snapshot")
	}

	// Snapshot present but no motd yet: still waiting.
	result, err = m.Generate(nil, json.RawMessage(`{"other":"x"}`))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.IsComplete() {
		t.Fatal("expected NeedsData while motd is missing")
	}

	// Motd arrived: generation completes.
	result, err = m.Generate(nil, json.RawMessage(`{"motd":"hello"}`))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !result.IsComplete() {
		t.Fatal("expected Complete once motd is available")
	}

	var value ExampleSettingsV2
	if err := json.Unmarshal(result.Payload(), &value); err != nil {
		t.Fatalf("failed to parse generated value: %v", err)
	}
	if value.Motd != "hello" {
		t.Errorf("motd = %q, want hello", value.Motd)
	}
}

func TestModelV2_GenerateMalformedDependencies(t *testing.T) {
	m := NewV2Setting()

	if _, err := m.Generate(nil, json.RawMessage(`{"motd":42}`)); err == nil {
		t.Error("expected non-string motd to fail generation")
	}
}

func TestMigrationRoundTrip(t *testing.T) {
	v1 := NewV1Setting()
	v2 := NewV2Setting()

	forward, err := v1.MigrateForward(json.RawMessage(`{"name":"a","favorite_number":3}`))
	if err != nil {
		t.Fatalf("migrate forward failed: %v", err)
	}
	back, err := v2.MigrateBackward(forward)
	if err != nil {
		t.Fatalf("migrate backward failed: %v", err)
	}

	var value ExampleSettingsV1
	if err := json.Unmarshal(back, &value); err != nil {
		t.Fatalf("failed to parse round-tripped value: %v", err)
	}
	if value.Name != "a" || value.FavoriteNumber != 3 {
		t.Errorf("round trip lost data: %+v", value)
	}
}
