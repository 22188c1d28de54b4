package services

import (
	"errors"

	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/gorm"
)

type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

func (v *AccountService) GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := v.db.Preload("Profile").First(&account, "id = ?", id).Error; err != nil {
		return account, err
	}

	return account, nil
}

func (v *AccountService) GetProfileByEmail(email string) (models.Profile, error) {
	var profile models.Profile
	if err := v.db.Where(&models.Profile{Email: email}).First(&profile).Error; err != nil {
		return profile, err
	}

	return profile, nil
}

// EnsureProfile creates the profile row on first sign in if it is absent.
func (v *AccountService) EnsureProfile(account *models.Account) error {
	if account.Profile.ID != 0 {
		return nil
	}

	var profile models.Profile
	err := v.db.Where(&models.Profile{AccountID: account.ID}).First(&profile).Error
	if err == nil {
		account.Profile = profile
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	profile = models.Profile{
		AccountID: account.ID,
		Email:     account.Email,
	}
	if err := v.db.Save(&profile).Error; err != nil {
		return err
	}

	account.Profile = profile
	return nil
}

func (v *AccountService) EditProfile(account models.Account, fullName string) (models.Profile, error) {
	if err := v.EnsureProfile(&account); err != nil {
		return account.Profile, err
	}

	profile := account.Profile
	profile.FullName = fullName

	if err := v.db.Save(&profile).Error; err != nil {
		return profile, err
	}

	return profile, nil
}
