package checklist

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

func item(key string, itemType domain.ItemType, required bool) domain.ChecklistItem {
	return domain.ChecklistItem{
		ID:       uuid.New(),
		ItemKey:  key,
		Label:    key,
		ItemType: itemType,
		Required: required,
	}
}

func respond(items []domain.ChecklistItem, values map[string]string) map[uuid.UUID]Response {
	out := make(map[uuid.UUID]Response, len(values))
	for _, it := range items {
		if raw, ok := values[it.ItemKey]; ok {
			out[it.ID] = Response{Value: json.RawMessage(raw)}
		}
	}
	return out
}

func hasError(result Result, itemKey string) bool {
	for _, e := range result.Errors {
		if e.ItemKey == itemKey {
			return true
		}
	}
	return false
}

func TestValidateAllRequiredAnswered(t *testing.T) {
	items := []domain.ChecklistItem{
		item("floors_score", domain.ItemTypeRating, true),
		item("completed_at", domain.ItemTypeTimestamp, true),
		item("notes", domain.ItemTypeTextarea, false),
	}
	responses := respond(items, map[string]string{
		"floors_score": `4`,
		"completed_at": `"2026-08-12T10:00:00Z"`,
	})

	result := Validate(items, responses, nil)
	if !result.Valid {
		t.Fatalf("expected valid result, got errors %+v", result.Errors)
	}
	if len(result.MissingItemKeys) != 0 {
		t.Fatalf("expected no missing items, got %v", result.MissingItemKeys)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	items := []domain.ChecklistItem{
		item("floors_score", domain.ItemTypeRating, true),
		item("completed_at", domain.ItemTypeTimestamp, true),
	}
	responses := respond(items, map[string]string{"floors_score": `4`})

	result := Validate(items, responses, nil)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.MissingItemKeys) != 1 || result.MissingItemKeys[0] != "completed_at" {
		t.Fatalf("expected completed_at missing, got %v", result.MissingItemKeys)
	}
	if !hasError(result, "completed_at") {
		t.Fatalf("expected error for completed_at, got %+v", result.Errors)
	}
	if result.Errors[0].Message != "This field is required" {
		t.Fatalf("unexpected message %q", result.Errors[0].Message)
	}
}

func TestValidateEmptyValueCountsAsMissing(t *testing.T) {
	items := []domain.ChecklistItem{item("notes", domain.ItemTypeTextarea, true)}

	for _, raw := range []string{`null`, `""`, `[]`} {
		responses := respond(items, map[string]string{"notes": raw})
		result := Validate(items, responses, nil)
		if result.Valid {
			t.Fatalf("value %s should count as missing", raw)
		}
	}
}

func TestValidateLowScoreNeedsReasonAndPhoto(t *testing.T) {
	items := []domain.ChecklistItem{
		item("floors_score", domain.ItemTypeRating, true),
		item("deviation_reason", domain.ItemTypeTextarea, false),
	}
	responses := respond(items, map[string]string{"floors_score": `2`})

	result := Validate(items, responses, nil)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if !hasError(result, "deviation_reason") {
		t.Fatalf("expected deviation_reason error, got %+v", result.Errors)
	}
	if !hasError(result, "photo") {
		t.Fatalf("expected photo error, got %+v", result.Errors)
	}
	// Independent errors: the missing reason must not hide the photo
	// requirement or the other way around.
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(result.Errors))
	}
}

func TestValidateLowScoreSatisfied(t *testing.T) {
	items := []domain.ChecklistItem{
		item("floors_score", domain.ItemTypeRating, true),
		item("deviation_reason", domain.ItemTypeTextarea, false),
	}
	responses := respond(items, map[string]string{
		"floors_score":     `1`,
		"deviation_reason": `"mop broke mid shift"`,
	})
	files := []File{{ChecklistItemID: nil}}

	result := Validate(items, responses, files)
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Errors)
	}
}

func TestValidateGeneralPhotoSatisfiesDeviation(t *testing.T) {
	scoreID := uuid.New()
	items := []domain.ChecklistItem{
		{ID: scoreID, ItemKey: "floors_score", Label: "Floors", ItemType: domain.ItemTypeRating, Required: true},
		item("deviation_reason", domain.ItemTypeTextarea, false),
	}
	responses := respond(items, map[string]string{
		"floors_score":     `2`,
		"deviation_reason": `"spill in hallway"`,
	})

	// A photo attached to a different item still counts.
	otherItem := uuid.New()
	result := Validate(items, responses, []File{{ChecklistItemID: &otherItem}})
	if !result.Valid {
		t.Fatalf("photo on any item should satisfy the rule, got %+v", result.Errors)
	}
}

func TestValidateHighScoresNeedNoReason(t *testing.T) {
	items := []domain.ChecklistItem{
		item("floors_score", domain.ItemTypeRating, true),
		item("surfaces_score", domain.ItemTypeRating, true),
		item("deviation_reason", domain.ItemTypeTextarea, false),
	}
	responses := respond(items, map[string]string{
		"floors_score":   `3`,
		"surfaces_score": `5`,
	})

	result := Validate(items, responses, nil)
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Errors)
	}
}

func TestValidateNonNumericScoreNeverTriggers(t *testing.T) {
	items := []domain.ChecklistItem{
		item("floors_score", domain.ItemTypeRating, true),
		item("deviation_reason", domain.ItemTypeTextarea, false),
	}
	// A string that happens to look like a low number is not a number.
	responses := respond(items, map[string]string{"floors_score": `"2"`})

	result := Validate(items, responses, nil)
	if hasError(result, "deviation_reason") || hasError(result, "photo") {
		t.Fatalf("string value should not trigger deviation rule: %+v", result.Errors)
	}
}

func TestValidateNonScoreRatingIgnored(t *testing.T) {
	items := []domain.ChecklistItem{
		item("overall_impression", domain.ItemTypeRating, true),
		item("deviation_reason", domain.ItemTypeTextarea, false),
	}
	responses := respond(items, map[string]string{"overall_impression": `1`})

	result := Validate(items, responses, nil)
	if hasError(result, "deviation_reason") {
		t.Fatalf("rating without _score suffix should not trigger: %+v", result.Errors)
	}
}

func TestValidateLowScoreWithoutReasonItem(t *testing.T) {
	// Template without a deviation_reason item: only the photo half of the
	// rule can fire.
	items := []domain.ChecklistItem{item("floors_score", domain.ItemTypeRating, true)}
	responses := respond(items, map[string]string{"floors_score": `1`})

	result := Validate(items, responses, nil)
	if hasError(result, "deviation_reason") {
		t.Fatalf("no deviation_reason item, no reason error expected: %+v", result.Errors)
	}
	if !hasError(result, "photo") {
		t.Fatalf("expected photo error, got %+v", result.Errors)
	}
}
