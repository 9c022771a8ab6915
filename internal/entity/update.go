package entity

// LessonUpdate is the update operation applied to a lesson document: Inc
// holds field-wise numeric increments, Set holds field-wise replacements.
// Both may be populated and are applied together. No bounds or shape
// checks are performed on either side; a negative increment can drive
// space below zero and that is the caller's problem.
type LessonUpdate struct {
	Inc map[string]any
	Set map[string]any
}

// LessonUpdateFromPayload builds a LessonUpdate from a raw request body.
// An "$inc" sub-object becomes Inc, a "$set" sub-object becomes Set, and
// a payload carrying neither is treated wholesale as a Set.
func LessonUpdateFromPayload(payload map[string]any) LessonUpdate {
	var update LessonUpdate

	if inc, ok := payload["$inc"].(map[string]any); ok {
		update.Inc = inc
	}
	if set, ok := payload["$set"].(map[string]any); ok {
		update.Set = set
	}

	if update.Inc == nil && update.Set == nil {
		update.Set = payload
	}

	return update
}

// IsEmpty reports whether the update carries no fields at all.
func (u LessonUpdate) IsEmpty() bool {
	return len(u.Inc) == 0 && len(u.Set) == 0
}
