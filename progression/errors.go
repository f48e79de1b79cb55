package progression

import "fmt"

// NotFoundError reports that a referenced entity does not resolve.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// InvalidSubmissionError reports a malformed evaluation submission. Partial
// submissions are rejected before scoring, never scored partially.
type InvalidSubmissionError struct {
	Reason string
}

func (e *InvalidSubmissionError) Error() string {
	return "invalid submission: " + e.Reason
}

// DataIntegrityError reports duplicate order keys within a course or module.
// The engine fails loudly instead of silently re-sorting on an undefined
// secondary key; this is a content authoring problem, not a user error.
type DataIntegrityError struct {
	Entity     string // "module" or "chapter"
	OwnerID    uint   // course id for modules, module id for chapters
	OrderIndex int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("duplicate order index %d among %ss of %s %d",
		e.OrderIndex, e.Entity, e.ownerKind(), e.OwnerID)
}

func (e *DataIntegrityError) ownerKind() string {
	switch e.Entity {
	case "module":
		return "course"
	case "question":
		return "evaluation"
	default:
		return "module"
	}
}
