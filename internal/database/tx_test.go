package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/iliyamo/olympics-logistics/internal/storetest"
)

func nbooked(t *testing.T, db *sql.DB) int {
	t.Helper()
	n, _ := storetest.Counts(t, db, storetest.JourneyVan)
	return n
}

func bump(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `UPDATE journey SET nbooked = nbooked + 1 WHERE journey_id = ?`, storetest.JourneyVan)
	return err
}

func TestWithTx_Commits(t *testing.T) {
	db := storetest.Open(t)
	ctx := context.Background()

	if err := WithTx(ctx, db, nil, func(tx *sql.Tx) error { return bump(ctx, tx) }); err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}
	if got := nbooked(t, db); got != 1 {
		t.Errorf("nbooked = %d, want 1", got)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := storetest.Open(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, db, nil, func(tx *sql.Tx) error {
		if err := bump(ctx, tx); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}
	if got := nbooked(t, db); got != 0 {
		t.Errorf("nbooked = %d, want 0 after rollback", got)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := storetest.Open(t)
	ctx := context.Background()

	func() {
		defer func() { _ = recover() }()
		_ = WithTx(ctx, db, nil, func(tx *sql.Tx) error {
			_ = bump(ctx, tx)
			panic("mid-transaction")
		})
	}()

	// the single pooled connection is free again only if the tx ended
	if got := nbooked(t, db); got != 0 {
		t.Errorf("nbooked = %d, want 0 after panic", got)
	}
}
