package storage

import (
	"sync"
	"time"

	"github.com/phaseGateTwo/cms-backend/internal/models"
)

// MemoryStore holds all data in memory. Used for tests and local development
// (USE_MEMORY_STORE=true).
type MemoryStore struct {
	users    map[string]*models.User      // keyed by user ID
	phones   map[string]string            // phone number -> user ID
	otps     map[string]*models.OTPRecord // keyed by phone number
	contacts map[string]*models.Contact   // keyed by contact ID

	// Mutexes for thread safety
	userMu    sync.RWMutex
	otpMu     sync.RWMutex
	contactMu sync.RWMutex

	otpTTL time.Duration
}

// NewMemoryStore creates a new in-memory storage with the default OTP TTL.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithTTL(DefaultOTPTTL)
}

// NewMemoryStoreWithTTL creates an in-memory storage whose OTP records
// expire after ttl. Tests use a short ttl to exercise expiry.
func NewMemoryStoreWithTTL(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		users:    make(map[string]*models.User),
		phones:   make(map[string]string),
		otps:     make(map[string]*models.OTPRecord),
		contacts: make(map[string]*models.Contact),
		otpTTL:   ttl,
	}

	// Expired records are also rejected on read, so the sweep only
	// reclaims memory for codes nobody ever submits.
	go m.sweepExpiredOTPs()

	return m
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.phones[user.PhoneNumber]; exists {
		return nil, ErrDuplicate
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	saved := *user
	m.users[user.UserID] = &saved
	m.phones[user.PhoneNumber] = user.UserID
	return user, nil
}

func (m *MemoryStore) GetUserByID(userID string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[userID]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MemoryStore) GetUserByPhone(phone string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	userID, exists := m.phones[phone]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *m.users[userID]
	return &copied, nil
}

func (m *MemoryStore) UserExistsByPhone(phone string) (bool, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	_, exists := m.phones[phone]
	return exists, nil
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.users[user.UserID]; !exists {
		return ErrNotFound
	}

	user.UpdatedAt = time.Now()
	saved := *user
	m.users[user.UserID] = &saved
	return nil
}

// OTP operations

func (m *MemoryStore) PutOTP(record *models.OTPRecord) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	// Last write wins: any previous record for this phone is replaced and
	// its TTL countdown restarts.
	saved := *record
	m.otps[record.PhoneNumber] = &saved
	return nil
}

func (m *MemoryStore) GetOTP(phone string) (*models.OTPRecord, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	record, exists := m.otps[phone]
	if !exists || m.expired(record) {
		delete(m.otps, phone)
		return nil, ErrNotFound
	}
	copied := *record
	return &copied, nil
}

// TakeOTPIfMatches deletes and returns the record for phone if its code
// matches. The whole check-and-delete happens under one write lock, so at
// most one concurrent caller can consume a given code.
func (m *MemoryStore) TakeOTPIfMatches(phone, code string) (*models.OTPRecord, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	record, exists := m.otps[phone]
	if !exists {
		return nil, ErrNotFound
	}
	if m.expired(record) {
		delete(m.otps, phone)
		return nil, ErrNotFound
	}
	if record.Code != code {
		return nil, ErrNotFound
	}

	delete(m.otps, phone)
	return record, nil
}

func (m *MemoryStore) DeleteExpiredOTPs() (int64, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var removed int64
	for phone, record := range m.otps {
		if m.expired(record) {
			delete(m.otps, phone)
			removed++
		}
	}
	return removed, nil
}

// expired must be called with otpMu held.
func (m *MemoryStore) expired(record *models.OTPRecord) bool {
	return time.Since(record.CreatedAt) > m.otpTTL
}

// sweepExpiredOTPs runs periodically to reclaim expired OTP records
func (m *MemoryStore) sweepExpiredOTPs() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.DeleteExpiredOTPs()
	}
}

// Contact operations

func (m *MemoryStore) CreateContact(contact *models.Contact) (*models.Contact, error) {
	m.contactMu.Lock()
	defer m.contactMu.Unlock()

	// A phone number is unique per owner, checked under the write lock so
	// concurrent adds cannot both slip through.
	for _, existing := range m.contacts {
		if existing.UserID == contact.UserID && existing.Phone == contact.Phone {
			return nil, ErrDuplicate
		}
	}

	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	saved := *contact
	m.contacts[contact.ContactID] = &saved
	return contact, nil
}

func (m *MemoryStore) GetContactByID(contactID string) (*models.Contact, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	contact, exists := m.contacts[contactID]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *contact
	return &copied, nil
}

func (m *MemoryStore) GetContactByIDAndUser(contactID, userID string) (*models.Contact, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	contact, exists := m.contacts[contactID]
	if !exists || contact.UserID != userID {
		return nil, ErrNotFound
	}
	copied := *contact
	return &copied, nil
}

func (m *MemoryStore) GetContactByPhoneAndUser(phone, userID string) (*models.Contact, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	for _, contact := range m.contacts {
		if contact.UserID == userID && contact.Phone == phone {
			copied := *contact
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetContactsByUser(userID string) ([]*models.Contact, error) {
	m.contactMu.RLock()
	defer m.contactMu.RUnlock()

	var contacts []*models.Contact
	for _, contact := range m.contacts {
		if contact.UserID == userID {
			copied := *contact
			contacts = append(contacts, &copied)
		}
	}
	return contacts, nil
}

func (m *MemoryStore) UpdateContact(contact *models.Contact) error {
	m.contactMu.Lock()
	defer m.contactMu.Unlock()

	if _, exists := m.contacts[contact.ContactID]; !exists {
		return ErrNotFound
	}

	contact.UpdatedAt = time.Now()
	saved := *contact
	m.contacts[contact.ContactID] = &saved
	return nil
}

func (m *MemoryStore) DeleteContact(contactID string) error {
	m.contactMu.Lock()
	defer m.contactMu.Unlock()

	if _, exists := m.contacts[contactID]; !exists {
		return ErrNotFound
	}
	delete(m.contacts, contactID)
	return nil
}
