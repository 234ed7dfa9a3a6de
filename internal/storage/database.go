package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phaseGateTwo/cms-backend/internal/models"
)

// DatabaseStore implements Store on PostgreSQL via GORM.
type DatabaseStore struct {
	db     *gorm.DB
	otpTTL time.Duration
}

// NewDatabaseStore creates a database-backed storage
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{
		db:     db,
		otpTTL: DefaultOTPTTL,
	}
}

// User operations

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "phone_number = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStore) UserExistsByPhone(phone string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("phone_number = ?", phone).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *DatabaseStore) UpdateUser(user *models.User) error {
	result := s.db.Model(&models.User{}).Where("user_id = ?", user.UserID).Updates(map[string]interface{}{
		"full_name": user.FullName,
		"email":     user.Email,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// OTP operations

func (s *DatabaseStore) PutOTP(record *models.OTPRecord) error {
	// Upsert on the phone-number primary key: a new code replaces the old
	// record and restarts its TTL.
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone_number"}},
		UpdateAll: true,
	}).Create(record).Error
}

func (s *DatabaseStore) GetOTP(phone string) (*models.OTPRecord, error) {
	var record models.OTPRecord
	err := s.db.First(&record, "phone_number = ? AND created_at > ?", phone, s.cutoff()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// TakeOTPIfMatches consumes the record in a single conditional
// DELETE .. RETURNING, so concurrent submissions of the same code race on
// one atomic statement and only one of them gets the row back.
func (s *DatabaseStore) TakeOTPIfMatches(phone, code string) (*models.OTPRecord, error) {
	var record models.OTPRecord
	result := s.db.Clauses(clause.Returning{}).
		Where("phone_number = ? AND code = ? AND created_at > ?", phone, code, s.cutoff()).
		Delete(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (s *DatabaseStore) DeleteExpiredOTPs() (int64, error) {
	result := s.db.Where("created_at <= ?", s.cutoff()).Delete(&models.OTPRecord{})
	return result.RowsAffected, result.Error
}

func (s *DatabaseStore) cutoff() time.Time {
	return time.Now().Add(-s.otpTTL)
}

// Contact operations

func (s *DatabaseStore) CreateContact(contact *models.Contact) (*models.Contact, error) {
	if err := s.db.Create(contact).Error; err != nil {
		// The (user_id, phone) unique index backs the one-contact-per-phone
		// rule under concurrent adds.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return contact, nil
}

func (s *DatabaseStore) GetContactByID(contactID string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.First(&contact, "contact_id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (s *DatabaseStore) GetContactByIDAndUser(contactID, userID string) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.First(&contact, "contact_id = ? AND user_id = ?", contactID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (s *DatabaseStore) GetContactByPhoneAndUser(phone, userID string) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.First(&contact, "phone = ? AND user_id = ?", phone, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (s *DatabaseStore) GetContactsByUser(userID string) ([]*models.Contact, error) {
	var contacts []*models.Contact
	if err := s.db.Where("user_id = ?", userID).Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *DatabaseStore) UpdateContact(contact *models.Contact) error {
	result := s.db.Model(&models.Contact{}).Where("contact_id = ?", contact.ContactID).Updates(map[string]interface{}{
		"full_name": contact.FullName,
		"phone":     contact.Phone,
		"email":     contact.Email,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) DeleteContact(contactID string) error {
	result := s.db.Delete(&models.Contact{}, "contact_id = ?", contactID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
