package services

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timetomeet/meetinghub/pkg/internal/models"
	"gorm.io/gorm"
)

func testAuth(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()

	viper.Set("security.jwt_secret", "unit-test-secret")
	viper.Set("security.token_valid_hours", 1)

	return NewAuthService(db, &Postman{}, NewAccountService(db))
}

func TestSignUpAndSignIn(t *testing.T) {
	db := testDB(t)
	auth := testAuth(t, db)

	account, err := auth.SignUp("user@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", account.Password)

	_, err = auth.SignUp("user@example.com", "another password")
	assert.Error(t, err, "duplicate email must be rejected")

	token, signedIn, err := auth.SignIn("user@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, account.ID, signedIn.ID)

	_, _, err = auth.SignIn("user@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.SignIn("nobody@example.com", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRoundTrip(t *testing.T) {
	db := testDB(t)
	auth := testAuth(t, db)

	_, err := auth.SignUp("user@example.com", "correct horse battery")
	require.NoError(t, err)

	token, account, err := auth.SignIn("user@example.com", "correct horse battery")
	require.NoError(t, err)

	resolved, err := auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)
	assert.Equal(t, account.Email, resolved.Profile.Email)

	_, err = auth.Authenticate("not-a-token")
	assert.Error(t, err)
}

func TestPasswordReset(t *testing.T) {
	db := testDB(t)
	auth := testAuth(t, db)

	account, err := auth.SignUp("user@example.com", "original password")
	require.NoError(t, err)

	// Unknown emails report success so the endpoint cannot enumerate accounts.
	assert.NoError(t, auth.RequestPasswordReset("nobody@example.com"))

	require.NoError(t, auth.RequestPasswordReset(account.Email))

	var ticket models.MagicToken
	require.NoError(t, db.First(&ticket, "account_id = ?", account.ID).Error)

	assert.Error(t, auth.ResetPassword("bogus-token", "new password!!"))
	require.NoError(t, auth.ResetPassword(ticket.Token, "new password!!"))

	_, _, err = auth.SignIn(account.Email, "original password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.SignIn(account.Email, "new password!!")
	assert.NoError(t, err)

	assert.Error(t, auth.ResetPassword(ticket.Token, "again"),
		"reset tokens are single use")
}
