package testutil_test

import (
	"testing"
	"time"

	"billow/internal/errors"
	"billow/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "bills", "bill_payments", "bill_deferments", "paychecks", "deposits", "gigs", "recurring_incomes", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a non-empty ID")
	}

	bill := testutil.CreateTestBill(t, db, user.ID, 5000, 15)
	if bill.Amount == nil || *bill.Amount != 5000 {
		t.Error("expected bill amount 5000")
	}
	if bill.DueDay == nil || *bill.DueDay != 15 {
		t.Error("expected due day 15")
	}

	payment := testutil.CreateTestPayment(t, db, bill.ID, 5000, testutil.Date(2024, time.January, 15))
	if payment.AppliedMonth != "2024-01" {
		t.Errorf("expected applied month 2024-01, got %s", payment.AppliedMonth)
	}

	paycheck := testutil.CreateTestPaycheck(t, db, user.ID, 20000, testutil.Date(2024, time.January, 5))
	if paycheck.Amount != 20000 {
		t.Errorf("expected amount 20000, got %d", paycheck.Amount)
	}

	gig := testutil.CreateTestGig(t, db, user.ID, 30000, testutil.Date(2024, time.January, 10), testutil.Date(2024, time.January, 20))
	if gig.EndDate.Before(gig.StartDate) {
		t.Error("gig end date should not precede start date")
	}

	recurring := testutil.CreateTestRecurringIncome(t, db, user.ID, 15000, 1, testutil.Date(2024, time.January, 1))
	if recurring.DayOfMonth == nil || *recurring.DayOfMonth != 1 {
		t.Error("expected recurring day of month 1")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBillNotFound, "custom message")
	testutil.AssertAppError(t, err, "BILL_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
