package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

// Value is the typed form of a response value. Instead of threading an
// untyped jsonb blob through the write path, each incoming value is parsed
// against the item's declared type here, at the store boundary.
type Value interface {
	Kind() domain.ItemType
	// Empty reports whether the value counts as "no answer". False and
	// zero are answers; "" and [] are not.
	Empty() bool
	JSON() json.RawMessage
}

type RatingValue int

func (RatingValue) Kind() domain.ItemType { return domain.ItemTypeRating }
func (RatingValue) Empty() bool           { return false }
func (v RatingValue) JSON() json.RawMessage {
	b, _ := json.Marshal(int(v))
	return b
}

type BooleanValue bool

func (BooleanValue) Kind() domain.ItemType { return domain.ItemTypeBoolean }
func (BooleanValue) Empty() bool           { return false }
func (v BooleanValue) JSON() json.RawMessage {
	b, _ := json.Marshal(bool(v))
	return b
}

type EnumValue string

func (EnumValue) Kind() domain.ItemType { return domain.ItemTypeEnum }
func (v EnumValue) Empty() bool         { return v == "" }
func (v EnumValue) JSON() json.RawMessage {
	b, _ := json.Marshal(string(v))
	return b
}

type IntegerValue int

func (IntegerValue) Kind() domain.ItemType { return domain.ItemTypeInteger }
func (IntegerValue) Empty() bool           { return false }
func (v IntegerValue) JSON() json.RawMessage {
	b, _ := json.Marshal(int(v))
	return b
}

type TextValue string

func (TextValue) Kind() domain.ItemType { return domain.ItemTypeText }
func (v TextValue) Empty() bool         { return v == "" }
func (v TextValue) JSON() json.RawMessage {
	b, _ := json.Marshal(string(v))
	return b
}

type TextareaValue string

func (TextareaValue) Kind() domain.ItemType { return domain.ItemTypeTextarea }
func (v TextareaValue) Empty() bool         { return v == "" }
func (v TextareaValue) JSON() json.RawMessage {
	b, _ := json.Marshal(string(v))
	return b
}

// TimestampValue holds an ISO 8601 timestamp string.
type TimestampValue string

func (TimestampValue) Kind() domain.ItemType { return domain.ItemTypeTimestamp }
func (v TimestampValue) Empty() bool         { return v == "" }
func (v TimestampValue) JSON() json.RawMessage {
	b, _ := json.Marshal(string(v))
	return b
}

type MultiSelectValue []string

func (MultiSelectValue) Kind() domain.ItemType { return domain.ItemTypeMultiSelect }
func (v MultiSelectValue) Empty() bool         { return len(v) == 0 }
func (v MultiSelectValue) JSON() json.RawMessage {
	b, _ := json.Marshal([]string(v))
	return b
}

// ParseValue decodes a raw response value against the item's declared type
// and validation rules. A JSON null returns (nil, nil): no value.
func ParseValue(item *domain.ChecklistItem, raw json.RawMessage) (Value, error) {
	if IsEmptyJSON(raw) {
		return nil, nil
	}

	var rules domain.ValidationRules
	if len(item.ValidationRules) > 0 {
		if err := json.Unmarshal(item.ValidationRules, &rules); err != nil {
			return nil, fmt.Errorf("item %q: invalid validation_rules: %w", item.ItemKey, err)
		}
	}

	switch item.ItemType {
	case domain.ItemTypeRating:
		n, err := decodeInt(raw)
		if err != nil {
			return nil, fmt.Errorf("item %q: rating must be a number: %w", item.ItemKey, err)
		}
		min, max := 1, 5
		if rules.Min != nil {
			min = *rules.Min
		}
		if rules.Max != nil {
			max = *rules.Max
		}
		if n < min || n > max {
			return nil, fmt.Errorf("item %q: rating %d out of range [%d, %d]", item.ItemKey, n, min, max)
		}
		return RatingValue(n), nil

	case domain.ItemTypeBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("item %q: expected boolean: %w", item.ItemKey, err)
		}
		return BooleanValue(b), nil

	case domain.ItemTypeEnum:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("item %q: expected string: %w", item.ItemKey, err)
		}
		if s != "" {
			if err := checkEnumOption(item, s); err != nil {
				return nil, err
			}
		}
		return EnumValue(s), nil

	case domain.ItemTypeInteger:
		n, err := decodeInt(raw)
		if err != nil {
			return nil, fmt.Errorf("item %q: expected integer: %w", item.ItemKey, err)
		}
		if rules.Min != nil && n < *rules.Min {
			return nil, fmt.Errorf("item %q: %d below minimum %d", item.ItemKey, n, *rules.Min)
		}
		if rules.Max != nil && n > *rules.Max {
			return nil, fmt.Errorf("item %q: %d above maximum %d", item.ItemKey, n, *rules.Max)
		}
		return IntegerValue(n), nil

	case domain.ItemTypeText, domain.ItemTypeTextarea:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("item %q: expected string: %w", item.ItemKey, err)
		}
		if rules.MaxLength != nil && len(s) > *rules.MaxLength {
			return nil, fmt.Errorf("item %q: text exceeds max length %d", item.ItemKey, *rules.MaxLength)
		}
		if item.ItemType == domain.ItemTypeTextarea {
			return TextareaValue(s), nil
		}
		return TextValue(s), nil

	case domain.ItemTypeTimestamp:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("item %q: expected string: %w", item.ItemKey, err)
		}
		if s != "" {
			if _, err := time.Parse(time.RFC3339, s); err != nil {
				return nil, fmt.Errorf("item %q: not an ISO 8601 timestamp: %w", item.ItemKey, err)
			}
		}
		return TimestampValue(s), nil

	case domain.ItemTypeMultiSelect:
		var vals []string
		if err := json.Unmarshal(raw, &vals); err != nil {
			return nil, fmt.Errorf("item %q: expected string array: %w", item.ItemKey, err)
		}
		for _, s := range vals {
			if err := checkEnumOption(item, s); err != nil {
				return nil, err
			}
		}
		return MultiSelectValue(vals), nil
	}

	return nil, fmt.Errorf("item %q: unknown item type %q", item.ItemKey, item.ItemType)
}

func decodeInt(raw json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return n, nil
}

func checkEnumOption(item *domain.ChecklistItem, value string) error {
	if len(item.EnumOptions) == 0 {
		return nil
	}
	var opts []domain.EnumOption
	if err := json.Unmarshal(item.EnumOptions, &opts); err != nil {
		return fmt.Errorf("item %q: invalid enum_options: %w", item.ItemKey, err)
	}
	if len(opts) == 0 {
		return nil
	}
	for _, o := range opts {
		if o.Value == value {
			return nil
		}
	}
	return fmt.Errorf("item %q: %q is not one of the allowed options", item.ItemKey, value)
}

// IsEmptyJSON reports whether a raw value counts as absent: missing, JSON
// null, the empty string, or an empty array. Zero and false are answers.
func IsEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	if bytes.Equal(trimmed, []byte(`""`)) || bytes.Equal(trimmed, []byte("[]")) {
		return true
	}
	return false
}

// NumericValue extracts a raw value as a number. Only genuinely numeric
// JSON counts; numeric strings do not.
func NumericValue(raw json.RawMessage) (float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, false
	}
	c := trimmed[0]
	if c != '-' && (c < '0' || c > '9') {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return 0, false
	}
	return f, true
}
