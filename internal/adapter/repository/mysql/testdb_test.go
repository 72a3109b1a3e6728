package mysql

import (
	"testing"

	"gorm.io/gorm"

	"sacco-backend/internal/domain/approval"
	"sacco-backend/internal/domain/guarantor"
	"sacco-backend/internal/domain/ledger"
	"sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/penalty"
	"sacco-backend/internal/domain/workflow"
	"sacco-backend/internal/infrastructure/db"
)

// openTestDB gives each test an isolated in-memory sqlite database with
// the full schema. TranslateError is on, matching the mysql connection,
// so the duplicate-key path behaves the same in tests.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&loan.Loan{},
		&guarantor.Guarantee{},
		&approval.Action{},
		&penalty.Penalty{},
		&workflow.Definition{},
		&workflow.Step{},
		&ledger.Share{},
		&ledger.Repayment{},
		&ledger.WelfarePayment{},
		&ledger.Member{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return conn
}
