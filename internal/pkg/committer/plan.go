// Package committer collects Spanner mutations produced by repositories and
// applies them in a single commit.
//
// Repositories never write on their own. They translate aggregates into
// mutations, the caller gathers those mutations together with the outbox rows
// describing the change, and the plan is applied atomically:
//
//	plan := committer.NewPlan()
//	plan.Add(campaignModel.InsertMut(data))
//	plan.AddMultiple(outboxMuts)
//	return c.Apply(ctx, plan)
//
// When a write depends on a read (a uniqueness check, an upsert), use
// ApplyWithCheck so the read and the buffered mutations share one
// read-write transaction.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// ErrDuplicateKey is returned when a commit is rejected by a unique key or
// unique index.
var ErrDuplicateKey = errors.New("duplicate key")

// Committer executes CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return wrapCommitError(err)
	}
	return nil
}

// ApplyWithCheck runs check inside a read-write transaction and buffers the
// plan only if check succeeds. check may add mutations to the plan (for
// instance when an upsert decides between insert and update).
func (c *Committer) ApplyWithCheck(
	ctx context.Context,
	plan *CommitPlan,
	check func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *CommitPlan) error,
) error {
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		// The closure can be retried on abort; never let a retry see the
		// mutations a previous attempt appended.
		attempt := NewPlan()
		attempt.AddMultiple(plan.Mutations())
		if check != nil {
			if err := check(ctx, txn, attempt); err != nil {
				return err
			}
		}
		if attempt.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(attempt.Mutations())
	})
	if err != nil {
		return wrapCommitError(err)
	}
	return nil
}

// IsDuplicateKey reports whether err was caused by a unique constraint.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, ErrDuplicateKey) {
		return true
	}
	return spanner.ErrCode(err) == codes.AlreadyExists
}

func wrapCommitError(err error) error {
	if spanner.ErrCode(err) == codes.AlreadyExists {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return fmt.Errorf("failed to apply commit plan: %w", err)
}
