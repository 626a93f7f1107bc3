package storage

import (
	"context"
	"fmt"
)

// txRepos are the repositories bound to a single transaction.
type txRepos struct {
	kv          *KVRepo
	transitions *TransitionRepo
}

// inTx runs fn against repositories sharing one transaction. Nothing is
// written unless fn returns nil; op names the failing write in errors.
func (s *Store) inTx(ctx context.Context, op string, fn func(r txRepos) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(txRepos{kv: NewKVRepo(tx), transitions: NewTransitionRepo(tx)}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
