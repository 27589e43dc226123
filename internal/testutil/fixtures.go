package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"billow/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a midnight-UTC calendar date, the form every fixture stores.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBill creates a recurring bill due on the given day of the month.
func CreateTestBill(t *testing.T, db *gorm.DB, userID string, amount int64, dueDay int) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Bill %d", nextID()),
		Amount:   &amount,
		DueDay:   &dueDay,
		Priority: models.BillPriorityMedium,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestOneTimeBill creates a bill with a fixed due date.
func CreateTestOneTimeBill(t *testing.T, db *gorm.DB, userID string, amount int64, dueDate time.Time) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		UserID:   userID,
		Name:     fmt.Sprintf("Test One-Time Bill %d", nextID()),
		Amount:   &amount,
		DueDate:  &dueDate,
		Priority: models.BillPriorityMedium,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestPayment records a paid payment against a bill.
func CreateTestPayment(t *testing.T, db *gorm.DB, billID string, amount int64, on time.Time) *models.BillPayment {
	t.Helper()

	payment := &models.BillPayment{
		BillID:       billID,
		Amount:       amount,
		PaymentDate:  on,
		AppliedMonth: on.Format("2006-01"),
		IsPaid:       true,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}

// CreateTestPaycheck creates a paycheck on the given date.
func CreateTestPaycheck(t *testing.T, db *gorm.DB, userID string, amount int64, on time.Time) *models.Paycheck {
	t.Helper()

	paycheck := &models.Paycheck{
		UserID: userID,
		Name:   fmt.Sprintf("Test Paycheck %d", nextID()),
		Amount: amount,
		Date:   on,
	}
	if err := db.Create(paycheck).Error; err != nil {
		t.Fatalf("failed to create test paycheck: %v", err)
	}
	return paycheck
}

// CreateTestDeposit creates a deposit on the given date.
func CreateTestDeposit(t *testing.T, db *gorm.DB, userID string, amount int64, on time.Time) *models.Deposit {
	t.Helper()

	deposit := &models.Deposit{
		UserID: userID,
		Name:   fmt.Sprintf("Test Deposit %d", nextID()),
		Amount: amount,
		Date:   on,
	}
	if err := db.Create(deposit).Error; err != nil {
		t.Fatalf("failed to create test deposit: %v", err)
	}
	return deposit
}

// CreateTestGig creates a gig spanning the given range.
func CreateTestGig(t *testing.T, db *gorm.DB, userID string, amount int64, start, end time.Time) *models.Gig {
	t.Helper()

	gig := &models.Gig{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Gig %d", nextID()),
		Amount:    amount,
		StartDate: start,
		EndDate:   end,
	}
	if err := db.Create(gig).Error; err != nil {
		t.Fatalf("failed to create test gig: %v", err)
	}
	return gig
}

// CreateTestRecurringIncome creates a monthly paycheck template anchored on
// the given day.
func CreateTestRecurringIncome(t *testing.T, db *gorm.DB, userID string, amount int64, dayOfMonth int, start time.Time) *models.RecurringIncome {
	t.Helper()

	recurring := &models.RecurringIncome{
		UserID:     userID,
		Kind:       models.IncomeKindPaycheck,
		Name:       fmt.Sprintf("Test Recurring %d", nextID()),
		Amount:     amount,
		StartDate:  start,
		Unit:       models.RecurrenceUnitMonth,
		Interval:   1,
		DayOfMonth: &dayOfMonth,
	}
	if err := db.Create(recurring).Error; err != nil {
		t.Fatalf("failed to create test recurring income: %v", err)
	}
	return recurring
}
