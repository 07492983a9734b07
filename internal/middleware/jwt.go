package middleware

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
)

const TokenIssuer = "grievance-service"

// IssueAccessToken mints a signed RS256 access token for a user. The
// role claim is what the authorization layer keys off, so it always
// reflects the role stored at login time.
func IssueAccessToken(priv *rsa.PrivateKey, userID uuid.UUID, role models.RoleType, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"iss":  TokenIssuer,
		"sub":  userID.String(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(priv)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token against the service public
// key, enforcing the signing method and issuer.
func ValidateToken(tokenString string, pub *rsa.PublicKey) (*jwt.Token, error) {
	return jwt.Parse(
		tokenString,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return pub, nil
		},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
}
