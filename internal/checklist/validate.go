package checklist

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

// DeviationReasonKey is the item key whose response becomes mandatory when
// any score item rates 2 or below.
const DeviationReasonKey = "deviation_reason"

// ScoreItemSuffix marks rating items whose values can trigger the
// deviation rule.
const ScoreItemSuffix = "_score"

// LowScoreThreshold is inclusive: a score of exactly 2 triggers the rule.
const LowScoreThreshold = 2

type ItemError struct {
	ItemKey string `json:"item_key"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

type Result struct {
	Valid           bool        `json:"valid"`
	Errors          []ItemError `json:"errors"`
	MissingItemKeys []string    `json:"missing_items"`
}

// Response is one stored answer as seen by the validator.
type Response struct {
	Value json.RawMessage
	Note  string
}

// File is the minimal view of an attachment the validator needs. A nil
// ChecklistItemID means a general attachment.
type File struct {
	ChecklistItemID *uuid.UUID
}

// Validate runs the submission gate over a template's items, the stored
// responses keyed by item id, and the inspection's files. It is a pure
// function: no I/O, rerunnable on every submit attempt.
func Validate(items []domain.ChecklistItem, responses map[uuid.UUID]Response, files []File) Result {
	result := Result{
		Errors:          []ItemError{},
		MissingItemKeys: []string{},
	}

	for _, item := range items {
		if !item.Required {
			continue
		}
		resp, ok := responses[item.ID]
		if !ok || IsEmptyJSON(resp.Value) {
			result.MissingItemKeys = append(result.MissingItemKeys, item.ItemKey)
			result.Errors = append(result.Errors, ItemError{
				ItemKey: item.ItemKey,
				Label:   item.Label,
				Message: "This field is required",
			})
		}
	}

	if hasLowScore(items, responses) {
		if deviation := findItem(items, DeviationReasonKey); deviation != nil {
			resp, ok := responses[deviation.ID]
			if !ok || IsEmptyJSON(resp.Value) {
				result.Errors = append(result.Errors, ItemError{
					ItemKey: DeviationReasonKey,
					Label:   deviation.Label,
					Message: "Deviation reason is required when any score is 2 or below",
				})
			}
		}
		// Any file on the inspection satisfies the photo requirement,
		// whether item-scoped or general; the photo does not have to hang
		// off the item that scored low.
		if len(files) == 0 {
			result.Errors = append(result.Errors, ItemError{
				ItemKey: "photo",
				Label:   "Photo",
				Message: "At least one photo is required when any score is 2 or below",
			})
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// hasLowScore reports whether any score item carries a numeric response at
// or below the threshold. String-typed or missing values never trigger.
func hasLowScore(items []domain.ChecklistItem, responses map[uuid.UUID]Response) bool {
	for _, item := range items {
		if !IsScoreItem(&item) {
			continue
		}
		resp, ok := responses[item.ID]
		if !ok {
			continue
		}
		if n, ok := NumericValue(resp.Value); ok && n <= LowScoreThreshold {
			return true
		}
	}
	return false
}

// IsScoreItem reports whether an item participates in the deviation rule.
func IsScoreItem(item *domain.ChecklistItem) bool {
	return item.ItemType == domain.ItemTypeRating && strings.HasSuffix(item.ItemKey, ScoreItemSuffix)
}

func findItem(items []domain.ChecklistItem, key string) *domain.ChecklistItem {
	for i := range items {
		if items[i].ItemKey == key {
			return &items[i]
		}
	}
	return nil
}
