package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const resetTokenValidity = 30 * time.Minute

// AuthService is the identity authority of the deployment: it owns
// credentials, issues session tokens and handles the password reset
// round-trip.
type AuthService struct {
	db       *gorm.DB
	postman  *Postman
	accounts *AccountService
	secret   []byte
	validity time.Duration
}

func NewAuthService(db *gorm.DB, postman *Postman, accounts *AccountService) *AuthService {
	hours := viper.GetInt("security.token_valid_hours")
	if hours <= 0 {
		hours = 72
	}

	return &AuthService{
		db:       db,
		postman:  postman,
		accounts: accounts,
		secret:   []byte(viper.GetString("security.jwt_secret")),
		validity: time.Duration(hours) * time.Hour,
	}
}

func (v *AuthService) SignUp(email, password string) (models.Account, error) {
	var account models.Account
	if err := v.db.Where(&models.Account{Email: email}).
		First(&account).Error; err == nil {
		return account, fmt.Errorf("email %s is already registered", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, err
	}

	account = models.Account{
		Email:    email,
		Password: string(hash),
		Profile:  models.Profile{Email: email},
	}

	if err := v.db.Save(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

// SignIn verifies the credentials and issues a session token. The profile is
// created lazily here when an account predates the profiles table.
func (v *AuthService) SignIn(email, password string) (string, models.Account, error) {
	var account models.Account
	if err := v.db.Preload("Profile").
		Where(&models.Account{Email: email}).
		First(&account).Error; err != nil {
		return "", account, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return "", account, ErrInvalidCredentials
	}

	if err := v.accounts.EnsureProfile(&account); err != nil {
		return "", account, err
	}

	token, err := v.issueToken(account)
	return token, account, err
}

func (v *AuthService) issueToken(account models.Account) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(int(account.ID)),
		Issuer:    "meetinghub",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(v.validity)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Authenticate resolves a bearer token back to its account.
func (v *AuthService) Authenticate(tokenStr string) (models.Account, error) {
	var account models.Account

	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return account, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return account, err
	}
	id, err := strconv.Atoi(subject)
	if err != nil {
		return account, err
	}

	if err := v.db.Preload("Profile").First(&account, "id = ?", id).Error; err != nil {
		return account, err
	}

	return account, nil
}

// RequestPasswordReset issues a single-use token and mails the reset link.
// An unknown email reports success without side effects, so the endpoint
// cannot be used to enumerate accounts.
func (v *AuthService) RequestPasswordReset(email string) error {
	var account models.Account
	if err := v.db.Where(&models.Account{Email: email}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	ticket := models.MagicToken{
		Token:     uuid.NewString(),
		AccountID: account.ID,
		ExpiredAt: time.Now().Add(resetTokenValidity),
	}
	if err := v.db.Save(&ticket).Error; err != nil {
		return err
	}

	if err := v.postman.DeliverPasswordReset(account.Email, ticket.Token); err != nil {
		log.Warn().Err(err).Str("email", account.Email).Msg("Unable to deliver password reset email...")
	}

	return nil
}

func (v *AuthService) ResetPassword(token, password string) error {
	var ticket models.MagicToken
	if err := v.db.Where(&models.MagicToken{Token: token}).First(&ticket).Error; err != nil {
		return fmt.Errorf("invalid reset token")
	}
	if ticket.IsExpired() {
		return fmt.Errorf("reset token has expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := v.db.Model(&models.Account{}).
		Where("id = ?", ticket.AccountID).
		Update("password", string(hash)).Error; err != nil {
		return err
	}

	return v.db.Delete(&ticket).Error
}
