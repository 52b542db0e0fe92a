// file: utils/jwt.go
package utils

import (
	"os"
	"time"

	"github.com/MiKhin1115/uitCTF/models"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(secretFromEnv())

func secretFromEnv() string {
	if s := os.Getenv("UITCTF_JWT_SECRET"); s != "" {
		return s
	}
	return "a-very-secure-secret-that-should-be-in-config-file"
}

type Claims struct {
	UserID   uint32          `json:"user_id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(user models.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, err
}
