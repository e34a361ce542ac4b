package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// JWTClaims is the token payload. CompanyID is the Company document id and
// scopes every query made on behalf of the session.
type JWTClaims struct {
	Email     string `json:"email"`
	CompanyID string `json:"companyId"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

var (
	jwtSecret  = []byte("change-me")
	expiration = 24 * time.Hour
)

// Configure sets the signing secret and token lifetime from config.
func Configure(secret, expires string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if d, err := time.ParseDuration(expires); err == nil && d > 0 {
		expiration = d
	}
}

func Secret() []byte { return jwtSecret }

func GenerateJWT(email, companyID string) (string, error) {
	claims := &JWTClaims{
		Email:     email,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
