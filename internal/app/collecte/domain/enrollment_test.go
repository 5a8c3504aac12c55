package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollment(t *testing.T) {
	now := day(2025, 2, 1)

	t.Run("new enrollment records a toggle", func(t *testing.T) {
		e := NewEnrollment("e1", "c1", "s1", true, now)
		assert.True(t, e.Enabled())
		require.Len(t, e.DomainEvents(), 1)
		assert.Equal(t, EventEnrollmentToggled, e.DomainEvents()[0].EventType())
	})

	t.Run("toggling to the same value is a no-op", func(t *testing.T) {
		e := ReconstructEnrollment("e1", "c1", "s1", true, EnrollmentWindow{}, nil, now, now)
		assert.False(t, e.SetEnabled(true, now))
		assert.Empty(t, e.DomainEvents())

		assert.True(t, e.SetEnabled(false, now))
		assert.False(t, e.Enabled())
		assert.True(t, e.Changes().Dirty(FieldEnabled))
	})

	t.Run("override window must be ordered", func(t *testing.T) {
		e := ReconstructEnrollment("e1", "c1", "s1", true, EnrollmentWindow{}, nil, now, now)
		err := e.SetWindow(EnrollmentWindow{StartAt: ptr(day(2025, 3, 10)), EndAt: ptr(day(2025, 3, 1))}, now)
		assert.ErrorIs(t, err, ErrInvalidEnrollmentWindow)

		require.NoError(t, e.SetWindow(EnrollmentWindow{StartAt: ptr(day(2025, 3, 1))}, now))
		assert.Equal(t, day(2025, 3, 1), *e.Window().StartAt)
		assert.Nil(t, e.Window().EndAt)
	})

	t.Run("validation happens once", func(t *testing.T) {
		e := ReconstructEnrollment("e1", "c1", "s1", true, EnrollmentWindow{}, nil, now, now)
		require.NoError(t, e.Validate(now))
		assert.Equal(t, now, *e.ValidatedAt())
		assert.ErrorIs(t, e.Validate(now), ErrEnrollmentValidated)
	})
}
