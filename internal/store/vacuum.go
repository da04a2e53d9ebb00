// vacuum.go holds the two maintenance operations that touch the database
// file itself: WAL checkpointing and compaction.
//
// VACUUM rewrites the whole file under an exclusive lock, so it only runs
// from `darc vacuum`. Checkpoint runs on every service Close so a committed
// catalog never ships with its latest writes stranded in a -wal sidecar.
//
// Design: deletes in the catalog are hard deletes (cascades and set-null do
// the bookkeeping), so freed pages accumulate after large removals such as
// dropping a collection subtree. VACUUM returns them to the filesystem.

package store

import (
	"context"
	"fmt"
)

// Vacuum rebuilds the database file and returns the number of bytes
// reclaimed. The WAL is checkpointed first so the size comparison is
// against the real main file.
func (s *SQLiteStore) Vacuum(ctx context.Context) (int64, error) {
	if err := s.Checkpoint(ctx); err != nil {
		return 0, err
	}
	before, err := s.fileSize(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return 0, fmt.Errorf("vacuum: %w", err)
	}
	after, err := s.fileSize(ctx)
	if err != nil {
		return 0, err
	}
	return before - after, nil
}

// fileSize reports page_count * page_size, the logical size of the main file.
func (s *SQLiteStore) fileSize(ctx context.Context) (int64, error) {
	var pages, size int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_count`).Scan(&pages); err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_size`).Scan(&size); err != nil {
		return 0, fmt.Errorf("page size: %w", err)
	}
	return pages * size, nil
}

// Checkpoint folds the WAL into the main file and truncates it, leaving
// darc.db complete on its own for git.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}
