package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/testhelpers"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(testhelpers.TestConfig(t.TempDir()))
}

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := newAuth(t)

	user, err := auth.Register(db, Credentials{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "password123", user.PasswordHash)

	res, err := auth.Login(db, Credentials{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	p, err := auth.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.False(t, p.IsAdmin)
}

func TestRegisterValidation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := newAuth(t)

	cases := []Credentials{
		{Username: "al", Password: "password123"},
		{Username: string(make([]byte, 51)), Password: "password123"},
		{Username: "alice", Password: "short"},
		{Username: "", Password: ""},
	}
	for _, c := range cases {
		_, err := auth.Register(db, c)
		assert.True(t, types.IsType(err, types.TypeValidation), "%q: %v", c.Username, err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := newAuth(t)

	_, err := auth.Register(db, Credentials{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = auth.Register(db, Credentials{Username: "alice", Password: "different123"})
	ce, ok := types.AsCustomError(err)
	require.True(t, ok, err)
	assert.Equal(t, 409, ce.Code)
	assert.Equal(t, "Username already taken", ce.Message)
}

func TestLoginDoesNotDistinguishFailures(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := newAuth(t)
	_, err := auth.Register(db, Credentials{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, errMissing := auth.Login(db, Credentials{Username: "nobody", Password: "password123"})
	_, errWrong := auth.Login(db, Credentials{Username: "alice", Password: "wrongpassword"})

	assert.Equal(t, errMissing, errWrong)
	ce, ok := types.AsCustomError(errWrong)
	require.True(t, ok)
	assert.Equal(t, 401, ce.Code)
	assert.Equal(t, "Invalid credentials", ce.Message)
}

func TestLongPasswords(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := newAuth(t)
	long := strings.Repeat("a", 100)

	_, err := auth.Register(db, Credentials{Username: "alice", Password: long})
	require.NoError(t, err)

	res, err := auth.Login(db, Credentials{Username: "alice", Password: long})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	// The longest accepted password also provisions
	_, err = auth.ProvisionAdmin(db, "admin", strings.Repeat("b", 200))
	require.NoError(t, err)
	_, err = auth.Login(db, Credentials{Username: "admin", Password: strings.Repeat("b", 200)})
	require.NoError(t, err)

	_, err = auth.Login(db, Credentials{Username: "alice", Password: strings.Repeat("c", 100)})
	assert.True(t, types.IsType(err, types.TypeAuth), "%v", err)
}

func TestUnknownUserStillComparesAHash(t *testing.T) {
	auth := newAuth(t)
	require.NotEmpty(t, auth.dummyHash)

	cost, err := bcrypt.Cost(auth.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost, "dummy hash uses the configured cost")

	db := testhelpers.NewTestDB(t)
	_, err = auth.Login(db, Credentials{Username: "nobody", Password: strings.Repeat("x", 120)})
	ce, ok := types.AsCustomError(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, 401, ce.Code)
	assert.Equal(t, "Invalid credentials", ce.Message)
}

func TestTokenCarriesAdminAndExpires(t *testing.T) {
	auth := newAuth(t)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return issued }

	token, err := auth.IssueToken(Principal{UserID: 7, IsAdmin: true})
	require.NoError(t, err)

	p, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, &Principal{UserID: 7, IsAdmin: true}, p)

	auth.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }
	_, err = auth.VerifyToken(token)
	assert.True(t, types.IsType(err, types.TypeAuth))
}

func TestVerifyTokenRejects(t *testing.T) {
	auth := newAuth(t)

	_, err := auth.VerifyToken("")
	require.True(t, types.IsType(err, types.TypeAuth))
	assert.Equal(t, "Missing token", err.(*types.CustomError).Message)

	_, err = auth.VerifyToken("not-a-token")
	assert.True(t, types.IsType(err, types.TypeAuth))

	// Signed with another secret
	other := &AuthService{secret: []byte("other"), ttl: time.Hour, now: time.Now}
	token, err := other.IssueToken(Principal{UserID: 1})
	require.NoError(t, err)
	_, err = auth.VerifyToken(token)
	assert.True(t, types.IsType(err, types.TypeAuth))

	// Unsigned
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.VerifyToken(none)
	assert.True(t, types.IsType(err, types.TypeAuth))
}

func TestProvisionAdmin(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := newAuth(t)

	user, err := auth.ProvisionAdmin(db, "admin", "password123")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	// Second run rotates the password and keeps one row
	_, err = auth.ProvisionAdmin(db, "admin", "newpassword1")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = auth.Login(db, Credentials{Username: "admin", Password: "password123"})
	assert.True(t, types.IsType(err, types.TypeAuth))

	res, err := auth.Login(db, Credentials{Username: "admin", Password: "newpassword1"})
	require.NoError(t, err)
	p, err := auth.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.True(t, p.IsAdmin)
}
