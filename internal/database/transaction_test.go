package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func createBuildLog(t *testing.T, ctx context.Context, db Database) {
	t.Helper()
	err := db.Session(ctx).Exec("CREATE TABLE build_log (id INTEGER PRIMARY KEY, name TEXT)").Error
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
}

func countBuildLog(t *testing.T, ctx context.Context, db Database) int64 {
	t.Helper()
	var count int64
	if err := db.Session(ctx).Raw("SELECT COUNT(*) FROM build_log").Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestNewTransaction(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)

	txn, err := NewTransaction(ctx, db)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}

	if txn.Session() == nil {
		t.Error("Session() returned nil")
	}

	if err := txn.Rollback(); err != nil {
		t.Errorf("Rollback: %v", err)
	}
}

func TestTransaction_Commit(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)
	createBuildLog(t, ctx, db)

	txn, err := NewTransaction(ctx, db)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}

	if err := txn.Session().Exec("INSERT INTO build_log (name) VALUES (?)", "E100_construct").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if count := countBuildLog(t, ctx, db); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	// Second commit should be a no-op.
	if err := txn.Commit(); err != nil {
		t.Errorf("second Commit should not error: %v", err)
	}
}

func TestTransaction_Rollback(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)
	createBuildLog(t, ctx, db)

	txn, err := NewTransaction(ctx, db)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}

	if err := txn.Session().Exec("INSERT INTO build_log (name) VALUES (?)", "E100_construct").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := txn.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	if count := countBuildLog(t, ctx, db); count != 0 {
		t.Errorf("expected count 0 after rollback, got %d", count)
	}

	// Rollback after rollback should be a no-op.
	if err := txn.Rollback(); err != nil {
		t.Errorf("second Rollback should not error: %v", err)
	}
}

func TestTransaction_RollbackAfterCommit(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)

	txn, err := NewTransaction(ctx, db)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}

	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := txn.Rollback(); err != nil {
		t.Errorf("Rollback after Commit should not error: %v", err)
	}
}

func TestWithTransaction_Success(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)
	createBuildLog(t, ctx, db)

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO build_log (name) VALUES (?)", "E100_construct").Error
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	if count := countBuildLog(t, ctx, db); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestWithTransaction_Error(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)
	createBuildLog(t, ctx, db)

	failed := errors.New("collector failed")
	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO build_log (name) VALUES (?)", "E100_construct").Error; err != nil {
			return err
		}
		return failed
	})
	if !errors.Is(err, failed) {
		t.Errorf("expected collector error, got: %v", err)
	}

	if count := countBuildLog(t, ctx, db); count != 0 {
		t.Errorf("expected count 0 after error, got %d", count)
	}
}

func TestWithTransactionResult_Success(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)

	result, err := WithTransactionResult(ctx, db, func(tx *gorm.DB) (int, error) {
		var val int
		if err := tx.Raw("SELECT 42").Scan(&val).Error; err != nil {
			return 0, err
		}
		return val, nil
	})
	if err != nil {
		t.Fatalf("WithTransactionResult: %v", err)
	}
	if result != 42 {
		t.Errorf("expected result 42, got %d", result)
	}
}

func TestWithTransactionResult_Error(t *testing.T) {
	ctx := context.Background()
	db, _ := openSQLite(t)

	failed := errors.New("collector failed")
	_, err := WithTransactionResult(ctx, db, func(tx *gorm.DB) (int, error) {
		return 0, failed
	})
	if !errors.Is(err, failed) {
		t.Errorf("expected collector error, got: %v", err)
	}
}
