package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phaseGateTwo/cms-backend/internal/models"
)

func newOTP(phone, code string) *models.OTPRecord {
	return &models.OTPRecord{
		PhoneNumber: phone,
		Code:        code,
		CreatedAt:   time.Now(),
	}
}

func TestPutOTPReplacesPreviousRecord(t *testing.T) {
	store := NewMemoryStore()

	if err := store.PutOTP(newOTP("555", "111111")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}
	if err := store.PutOTP(newOTP("555", "222222")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}

	// The old code must be gone.
	if _, err := store.TakeOTPIfMatches("555", "111111"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old code should not match, got err=%v", err)
	}

	record, err := store.TakeOTPIfMatches("555", "222222")
	if err != nil {
		t.Fatalf("new code should match: %v", err)
	}
	if record.Code != "222222" {
		t.Fatalf("unexpected code %q", record.Code)
	}
}

func TestTakeOTPIfMatchesConsumesExactlyOnce(t *testing.T) {
	store := NewMemoryStore()

	if err := store.PutOTP(newOTP("555", "123456")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}

	if _, err := store.TakeOTPIfMatches("555", "123456"); err != nil {
		t.Fatalf("first take should succeed: %v", err)
	}
	if _, err := store.TakeOTPIfMatches("555", "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second take should miss, got err=%v", err)
	}
}

func TestTakeOTPIfMatchesLeavesStateOnMismatch(t *testing.T) {
	store := NewMemoryStore()

	if err := store.PutOTP(newOTP("555", "123456")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}

	if _, err := store.TakeOTPIfMatches("555", "999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("mismatched code should miss, got err=%v", err)
	}

	// A mismatch must not consume the record.
	if _, err := store.TakeOTPIfMatches("555", "123456"); err != nil {
		t.Fatalf("correct code should still work: %v", err)
	}
}

func TestTakeOTPIfMatchesSingleWinnerUnderConcurrency(t *testing.T) {
	store := NewMemoryStore()

	if err := store.PutOTP(newOTP("555", "123456")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}

	const callers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.TakeOTPIfMatches("555", "123456"); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	var won int
	for range wins {
		won++
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}
}

func TestExpiredOTPIsUnreadable(t *testing.T) {
	store := NewMemoryStoreWithTTL(20 * time.Millisecond)

	if err := store.PutOTP(newOTP("555", "123456")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := store.GetOTP("555"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired record should be absent on get, got err=%v", err)
	}
	if _, err := store.TakeOTPIfMatches("555", "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired record should not validate, got err=%v", err)
	}
}

func TestDeleteExpiredOTPs(t *testing.T) {
	store := NewMemoryStoreWithTTL(20 * time.Millisecond)

	if err := store.PutOTP(newOTP("111", "123456")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}
	if err := store.PutOTP(newOTP("222", "654321")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	// A fresh record must survive the sweep.
	if err := store.PutOTP(newOTP("333", "777777")); err != nil {
		t.Fatalf("PutOTP: %v", err)
	}

	removed, err := store.DeleteExpiredOTPs()
	if err != nil {
		t.Fatalf("DeleteExpiredOTPs: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, err := store.GetOTP("333"); err != nil {
		t.Fatalf("fresh record should survive: %v", err)
	}
}

func TestUserLifecycle(t *testing.T) {
	store := NewMemoryStore()

	user := &models.User{UserID: "u1", PhoneNumber: "555", FullName: "Ann", Email: "a@x.com"}
	if _, err := store.CreateUser(user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	exists, err := store.UserExistsByPhone("555")
	if err != nil || !exists {
		t.Fatalf("UserExistsByPhone = %v, %v", exists, err)
	}

	byPhone, err := store.GetUserByPhone("555")
	if err != nil {
		t.Fatalf("GetUserByPhone: %v", err)
	}
	if byPhone.UserID != "u1" {
		t.Fatalf("unexpected user %q", byPhone.UserID)
	}

	// Phone numbers are unique.
	dup := &models.User{UserID: "u2", PhoneNumber: "555"}
	if _, err := store.CreateUser(dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate phone should fail, got err=%v", err)
	}

	byPhone.FullName = "Anna"
	if err := store.UpdateUser(byPhone); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	updated, err := store.GetUserByID("u1")
	if err != nil || updated.FullName != "Anna" {
		t.Fatalf("update not applied: %+v, %v", updated, err)
	}

	if _, err := store.GetUserByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user should be ErrNotFound, got %v", err)
	}
}

func TestContactScoping(t *testing.T) {
	store := NewMemoryStore()

	owned := &models.Contact{ContactID: "c1", UserID: "u1", FullName: "Bob", Phone: "777"}
	foreign := &models.Contact{ContactID: "c2", UserID: "u2", FullName: "Eve", Phone: "888"}
	if _, err := store.CreateContact(owned); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if _, err := store.CreateContact(foreign); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	if _, err := store.GetContactByIDAndUser("c1", "u1"); err != nil {
		t.Fatalf("owner should see own contact: %v", err)
	}
	if _, err := store.GetContactByIDAndUser("c2", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign contact should be invisible, got err=%v", err)
	}

	if _, err := store.GetContactByPhoneAndUser("777", "u1"); err != nil {
		t.Fatalf("lookup by phone: %v", err)
	}

	contacts, err := store.GetContactsByUser("u1")
	if err != nil || len(contacts) != 1 {
		t.Fatalf("expected 1 contact for u1, got %d (%v)", len(contacts), err)
	}

	if err := store.DeleteContact("c1"); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
	if err := store.DeleteContact("c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete should miss, got err=%v", err)
	}
}

func TestContactPhoneUniquePerOwner(t *testing.T) {
	store := NewMemoryStore()

	first := &models.Contact{ContactID: "c1", UserID: "u1", FullName: "Bob", Phone: "777"}
	if _, err := store.CreateContact(first); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	dup := &models.Contact{ContactID: "c2", UserID: "u1", FullName: "Robert", Phone: "777"}
	if _, err := store.CreateContact(dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("same owner and phone should be ErrDuplicate, got %v", err)
	}

	// The same phone under a different owner is fine.
	other := &models.Contact{ContactID: "c3", UserID: "u2", FullName: "Bob", Phone: "777"}
	if _, err := store.CreateContact(other); err != nil {
		t.Fatalf("different owner, same phone: %v", err)
	}

	contacts, err := store.GetContactsByUser("u1")
	if err != nil || len(contacts) != 1 {
		t.Fatalf("expected 1 contact for u1, got %d (%v)", len(contacts), err)
	}
}
