package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IndexStats counts the index rows written and pruned for one store.
type IndexStats struct {
	Added   int64 `json:"added"`
	Removed int64 `json:"removed"`
}

// IndexRebuilder brings the opportunity index in line with the record
// stores using bulk SQL on a pgx pool.
type IndexRebuilder struct {
	pool *pgxpool.Pool
}

func NewIndexRebuilder(pool *pgxpool.Pool) *IndexRebuilder {
	return &IndexRebuilder{
		pool: pool,
	}
}

// Rebuild indexes every stored record that has no index row and drops rows
// whose record no longer exists. Existing rows are never rewritten. With
// dryRun set the changes are counted and rolled back.
func (b *IndexRebuilder) Rebuild(ctx context.Context, dryRun bool) (map[model.OpportunityType]IndexStats, error) {
	tx, err := b.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stats := make(map[model.OpportunityType]IndexStats, len(model.SearchOrder))
	for _, t := range model.SearchOrder {
		var s IndexStats

		tag, err := tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO opportunity_index (id, type, created_at)
			SELECT id, $1, now() FROM %s
			ON CONFLICT (id) DO NOTHING
		`, t.Store()), string(t))
		if err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", t.Store(), err)
		}
		s.Added = tag.RowsAffected()

		tag, err = tx.Exec(ctx, fmt.Sprintf(`
			DELETE FROM opportunity_index i
			WHERE i.type = $1
			AND NOT EXISTS (SELECT 1 FROM %s r WHERE r.id = i.id)
		`, t.Store()), string(t))
		if err != nil {
			return nil, fmt.Errorf("failed to prune index for %s: %w", t.Store(), err)
		}
		s.Removed = tag.RowsAffected()

		stats[t] = s
	}

	if dryRun {
		return stats, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit index rebuild: %w", err)
	}
	return stats, nil
}
