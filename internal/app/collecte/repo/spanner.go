package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/models/m_outbox"
	"github.com/light-bringer/collecte-service/internal/pkg/committer"
)

// querier is satisfied by read-only and read-write transactions.
type querier interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// queryAll runs stmt and decodes every row with decode.
func queryAll[T any](ctx context.Context, q querier, stmt spanner.Statement, decode func(*spanner.Row) (T, error)) ([]T, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	var out []T
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate rows: %w", err)
		}
		v, err := decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// queryCount runs a COUNT(*) statement.
func queryCount(ctx context.Context, q querier, stmt spanner.Statement) (int64, error) {
	counts, err := queryAll(ctx, q, stmt, func(row *spanner.Row) (int64, error) {
		var n int64
		if err := row.Column(0, &n); err != nil {
			return 0, fmt.Errorf("failed to parse count: %w", err)
		}
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, nil
	}
	return counts[0], nil
}

// exists reports whether stmt yields at least one row.
func exists(ctx context.Context, q querier, stmt spanner.Statement) (bool, error) {
	n, err := queryCount(ctx, q, stmt)
	return n > 0, err
}

// outboxMutations turns pending domain events into outbox inserts.
func outboxMutations(model *m_outbox.Model, events []domain.DomainEvent, now time.Time) ([]*spanner.Mutation, error) {
	enriched, err := contracts.EnrichEvents(events, now)
	if err != nil {
		return nil, err
	}
	muts := make([]*spanner.Mutation, 0, len(enriched))
	for _, ev := range enriched {
		muts = append(muts, model.InsertMut(&m_outbox.Data{
			EventID:     ev.EventID,
			EventType:   ev.EventType,
			AggregateID: ev.AggregateID,
			Payload:     spanner.NullJSON{Value: json.RawMessage(ev.Payload), Valid: ev.Payload != ""},
			Status:      ev.Status,
			CreatedAt:   ev.CreatedAt,
		}))
	}
	return muts, nil
}

// commitError maps a failed commit. A unique index violation, or a check
// that already returned target, becomes target; anything else is wrapped.
func commitError(err, target error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, target) || committer.IsDuplicateKey(err) {
		return target
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func nullTime(t *time.Time) spanner.NullTime {
	if t == nil {
		return spanner.NullTime{}
	}
	return spanner.NullTime{Time: *t, Valid: true}
}

func timePtr(nt spanner.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}
