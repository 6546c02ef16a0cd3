package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse creates a standardized error response. The details field is
// only populated for read failures; write paths log the full error and keep
// the body sanitized.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"error":   message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	return c.Status(status).JSON(response)
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// Pointer returns a pointer to the given value
func Pointer[T any](v T) *T {
	return &v
}

// BatchOutcome is the per-item result of an independent sub-operation in a
// batch (invites, group member inserts). Preserved end-to-end so a partial
// failure surfaces as 207 with the exact failures, not a single boolean.
type BatchOutcome struct {
	Item  string `json:"item"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// AnyFailed reports whether any outcome in the batch failed.
func AnyFailed(outcomes []BatchOutcome) bool {
	for _, o := range outcomes {
		if !o.OK {
			return true
		}
	}
	return false
}

// NormalizeTags accepts tags as a list or a comma-separated string and
// returns a trimmed list with empties dropped.
func NormalizeTags(raw interface{}) []string {
	var candidates []string
	switch v := raw.(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				candidates = append(candidates, s)
			}
		}
	case []string:
		candidates = v
	case string:
		candidates = strings.Split(v, ",")
	case nil:
		return []string{}
	}

	tags := make([]string, 0, len(candidates))
	for _, tag := range candidates {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// NormalizeNotes trims free-form notes, mapping empty input to nil.
func NormalizeNotes(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
