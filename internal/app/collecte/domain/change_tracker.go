package domain

// Field names a persisted attribute of an aggregate.
type Field string

// Campaign and enrollment fields tracked for partial updates.
const (
	FieldYear       Field = "year"
	FieldTitle      Field = "title"
	FieldSlug       Field = "slug"
	FieldStartAt    Field = "start_at"
	FieldEndAt      Field = "end_at"
	FieldGraceUntil Field = "grace_until"
	FieldLockedAt   Field = "locked_at"
	FieldStatus     Field = "status"
	FieldDeletedAt  Field = "deleted_at"

	FieldEnabled     Field = "enabled"
	FieldValidatedAt Field = "validated_at"
)

// ChangeTracker records which fields of an aggregate were modified so the
// repositories only write those columns.
type ChangeTracker struct {
	dirty map[Field]struct{}
}

// NewChangeTracker creates an empty tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[Field]struct{})}
}

// MarkDirty marks fields as modified.
func (ct *ChangeTracker) MarkDirty(fields ...Field) {
	for _, f := range fields {
		ct.dirty[f] = struct{}{}
	}
}

// Dirty reports whether f has been modified.
func (ct *ChangeTracker) Dirty(f Field) bool {
	_, ok := ct.dirty[f]
	return ok
}

// Clear forgets all modifications, typically after a successful commit.
func (ct *ChangeTracker) Clear() {
	clear(ct.dirty)
}

// HasChanges returns true if any field has been modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}
