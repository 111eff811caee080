package checklist

import (
	"encoding/json"
	"testing"

	"gorm.io/datatypes"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

func typedItem(itemType domain.ItemType, rules, options string) *domain.ChecklistItem {
	it := &domain.ChecklistItem{ItemKey: "test_item", Label: "Test", ItemType: itemType}
	if rules != "" {
		it.ValidationRules = datatypes.JSON([]byte(rules))
	}
	if options != "" {
		it.EnumOptions = datatypes.JSON([]byte(options))
	}
	return it
}

func TestParseValueRating(t *testing.T) {
	it := typedItem(domain.ItemTypeRating, `{"min":1,"max":5}`, "")

	v, err := ParseValue(it, json.RawMessage(`3`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(RatingValue) != 3 {
		t.Fatalf("expected 3, got %v", v)
	}

	if _, err := ParseValue(it, json.RawMessage(`0`)); err == nil {
		t.Fatal("expected out of range error for 0")
	}
	if _, err := ParseValue(it, json.RawMessage(`6`)); err == nil {
		t.Fatal("expected out of range error for 6")
	}
	if _, err := ParseValue(it, json.RawMessage(`2.5`)); err == nil {
		t.Fatal("expected error for fractional rating")
	}
	if _, err := ParseValue(it, json.RawMessage(`"3"`)); err == nil {
		t.Fatal("expected error for string rating")
	}
}

func TestParseValueBoolean(t *testing.T) {
	it := typedItem(domain.ItemTypeBoolean, "", "")

	v, err := ParseValue(it, json.RawMessage(`false`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// false is an answer, not an absent value
	if v.Empty() {
		t.Fatal("false must not be empty")
	}

	if _, err := ParseValue(it, json.RawMessage(`"yes"`)); err == nil {
		t.Fatal("expected error for non-boolean")
	}
}

func TestParseValueEnumMembership(t *testing.T) {
	it := typedItem(domain.ItemTypeEnum, "", `[{"value":"daily","label":"Daily"},{"value":"weekly","label":"Weekly"}]`)

	if _, err := ParseValue(it, json.RawMessage(`"daily"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseValue(it, json.RawMessage(`"monthly"`)); err == nil {
		t.Fatal("expected error for value outside options")
	}
}

func TestParseValueIntegerBounds(t *testing.T) {
	it := typedItem(domain.ItemTypeInteger, `{"min":0,"max":100}`, "")

	if _, err := ParseValue(it, json.RawMessage(`42`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseValue(it, json.RawMessage(`-1`)); err == nil {
		t.Fatal("expected below-minimum error")
	}
	if _, err := ParseValue(it, json.RawMessage(`101`)); err == nil {
		t.Fatal("expected above-maximum error")
	}
}

func TestParseValueTextareaMaxLength(t *testing.T) {
	it := typedItem(domain.ItemTypeTextarea, `{"max_length":5}`, "")

	if _, err := ParseValue(it, json.RawMessage(`"short"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseValue(it, json.RawMessage(`"too long for the rule"`)); err == nil {
		t.Fatal("expected max length error")
	}
}

func TestParseValueTimestamp(t *testing.T) {
	it := typedItem(domain.ItemTypeTimestamp, "", "")

	if _, err := ParseValue(it, json.RawMessage(`"2026-08-12T10:00:00Z"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseValue(it, json.RawMessage(`"yesterday"`)); err == nil {
		t.Fatal("expected error for non-ISO timestamp")
	}
}

func TestParseValueMultiSelect(t *testing.T) {
	it := typedItem(domain.ItemTypeMultiSelect, "", `[{"value":"kitchen","label":"Kitchen"},{"value":"office","label":"Office"}]`)

	v, err := ParseValue(it, json.RawMessage(`["kitchen","office"]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.(MultiSelectValue)) != 2 {
		t.Fatalf("expected 2 selections, got %v", v)
	}
	if _, err := ParseValue(it, json.RawMessage(`["garage"]`)); err == nil {
		t.Fatal("expected error for unknown option")
	}
}

func TestParseValueEmptyReturnsNil(t *testing.T) {
	it := typedItem(domain.ItemTypeText, "", "")

	for _, raw := range []string{`null`, `""`, `[]`, ``} {
		v, err := ParseValue(it, json.RawMessage(raw))
		if err != nil {
			t.Fatalf("value %q: unexpected error: %v", raw, err)
		}
		if v != nil {
			t.Fatalf("value %q should parse to nil, got %v", raw, v)
		}
	}
}

func TestIsEmptyJSON(t *testing.T) {
	empty := []string{``, `null`, `""`, `[]`, ` null `}
	for _, raw := range empty {
		if !IsEmptyJSON(json.RawMessage(raw)) {
			t.Fatalf("%q should be empty", raw)
		}
	}
	nonEmpty := []string{`0`, `false`, `"a"`, `[1]`, `{}`}
	for _, raw := range nonEmpty {
		if IsEmptyJSON(json.RawMessage(raw)) {
			t.Fatalf("%q should not be empty", raw)
		}
	}
}

func TestNumericValue(t *testing.T) {
	if n, ok := NumericValue(json.RawMessage(`2`)); !ok || n != 2 {
		t.Fatalf("expected 2, got %v %v", n, ok)
	}
	if n, ok := NumericValue(json.RawMessage(`-1.5`)); !ok || n != -1.5 {
		t.Fatalf("expected -1.5, got %v %v", n, ok)
	}
	if _, ok := NumericValue(json.RawMessage(`"2"`)); ok {
		t.Fatal("numeric string must not count as a number")
	}
	if _, ok := NumericValue(json.RawMessage(`true`)); ok {
		t.Fatal("boolean must not count as a number")
	}
}
