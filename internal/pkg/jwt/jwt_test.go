package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndDecode_RoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "alice", "SUPPLIER", testSecret, 20*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := DecodeAccessToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, "SUPPLIER", claims.Role)
	require.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t, time.Now().Add(20*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDecode_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "alice", "CUSTOMER", testSecret, time.Minute)
	require.NoError(t, err)

	_, err = DecodeAccessToken(token, "another-secret")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecode_Tampered(t *testing.T) {
	token, err := GenerateAccessToken(1, "alice", "CUSTOMER", testSecret, time.Minute)
	require.NoError(t, err)

	// Flip one character of the payload segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = DecodeAccessToken(tampered, testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := DecodeAccessToken("not-a-token", testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

// The codec must hand back claims of an expired token untouched; whether it
// is still usable is the guard's call, not the codec's.
func TestDecode_ExpiredTokenStillDecodes(t *testing.T) {
	claims := Claims{
		UserID: 7,
		Role:   "CUSTOMER",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "bob",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	decoded, err := DecodeAccessToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, uint(7), decoded.UserID)
	require.Equal(t, "bob", decoded.Subject)
}

func TestDecode_RejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must never pass
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{"sub": "alice"})
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = DecodeAccessToken(signed, testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
