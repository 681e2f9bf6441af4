package telemetry

import (
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(Options{Mode: "sim", Ruleset: "standard", Level: 50, Seed: 42})

	got := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		got[kv.Key] = kv.Value
	}

	if v := got["service.name"].AsString(); v != serviceName {
		t.Errorf("service.name = %q, want %q", v, serviceName)
	}
	if v := got["battlesim.mode"].AsString(); v != "sim" {
		t.Errorf("battlesim.mode = %q, want sim", v)
	}
	if v := got["battlesim.ruleset"].AsString(); v != "standard" {
		t.Errorf("battlesim.ruleset = %q, want standard", v)
	}
	if v := got["battlesim.level"].AsInt64(); v != 50 {
		t.Errorf("battlesim.level = %d, want 50", v)
	}
	if v := got["battlesim.seed"].AsInt64(); v != 42 {
		t.Errorf("battlesim.seed = %d, want 42", v)
	}
}

func TestResourceAttributesSkipEmpty(t *testing.T) {
	for _, kv := range resourceAttributes(Options{}) {
		if kv.Key == "battlesim.mode" || kv.Key == "battlesim.ruleset" {
			t.Errorf("unexpected empty attribute %s", kv.Key)
		}
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "AlwaysOnSampler"},
		{1, "AlwaysOnSampler"},
		{2, "AlwaysOnSampler"},
		{0.25, "ParentBased{root:TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		if got := sampler(tt.ratio).Description(); !strings.HasPrefix(got, tt.want) {
			t.Errorf("sampler(%v).Description() = %q, want prefix %q", tt.ratio, got, tt.want)
		}
	}
}

func TestBattleAttributes(t *testing.T) {
	attrs := BattleAttributes("b1", "trainer", "doubles")
	want := map[attribute.Key]string{"battle_id": "b1", "type": "trainer", "format": "doubles"}

	if len(attrs) != len(want) {
		t.Fatalf("len(BattleAttributes()) = %d, want %d", len(attrs), len(want))
	}
	for _, kv := range attrs {
		if kv.Value.AsString() != want[kv.Key] {
			t.Errorf("%s = %q, want %q", kv.Key, kv.Value.AsString(), want[kv.Key])
		}
	}
}
