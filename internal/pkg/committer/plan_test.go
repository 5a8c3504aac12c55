package committer

import (
	"errors"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan(t *testing.T) {
	t.Run("ignores nil mutations", func(t *testing.T) {
		plan := NewPlan()
		plan.Add(nil)
		assert.True(t, plan.IsEmpty())
	})

	t.Run("collects mutations in order", func(t *testing.T) {
		plan := NewPlan()
		first := spanner.Delete("campaigns", spanner.Key{"c1"})
		second := spanner.Delete("outbox_events", spanner.Key{"e1"})
		plan.Add(first)
		plan.AddMultiple([]*spanner.Mutation{nil, second})

		assert.Equal(t, 2, plan.Count())
		assert.Same(t, first, plan.Mutations()[0])
		assert.Same(t, second, plan.Mutations()[1])
	})
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(ErrDuplicateKey))
	assert.True(t, IsDuplicateKey(errors.Join(errors.New("insert campaign"), ErrDuplicateKey)))
	assert.False(t, IsDuplicateKey(errors.New("deadline exceeded")))
}
