package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a researcher (study owner) session token encodes
type ResearcherUserClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewResearcherUserToken(
	expiresIn time.Duration,
	userID string,
	email string,
	name string,
	secretKey string,
) (tokenString string, err error) {
	claims := ResearcherUserClaims{
		email,
		name,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateResearcherUserToken(tokenString string, secretKey string) (claims *ResearcherUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResearcherUserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*ResearcherUserClaims)
	valid = valid && token.Valid
	return
}
