package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinEmailLen = 5
	MaxEmailLen = 100

	MinPasswordLen = 8
	MaxPasswordLen = 72

	HashFactor = 10

	tokenTTL = time.Hour * 72
)

var (
	ErrFieldIsEmpty = errors.New("field is empty")
	ErrBadEmail     = errors.New("invalid email")
	ErrBadPassword  = errors.New("invalid password")
	ErrUnknownRole  = errors.New("unknown role")
	ErrFileTooLarge = errors.New("file exceeds the 10MB limit")
	ErrBadFileType  = errors.New("file must be an image or a pdf")
)

func validateEmail(email string) error {
	if email == "" {
		return ErrFieldIsEmpty
	}

	emailLen := len(email)
	if emailLen < MinEmailLen || emailLen > MaxEmailLen {
		return fmt.Errorf("%w: length must be in range [%d, %d]", ErrBadEmail, MinEmailLen, MaxEmailLen)
	}

	if strings.Count(email, "@") != 1 {
		return fmt.Errorf("%w: must contain exactly one @", ErrBadEmail)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrFieldIsEmpty
	}

	passwordLen := len(password)
	if passwordLen < MinPasswordLen || passwordLen > MaxPasswordLen {
		return fmt.Errorf("%w: length must be in range [%d, %d]", ErrBadPassword, MinPasswordLen, MaxPasswordLen)
	}
	return nil
}

func validateRole(role string) error {
	if role == "" {
		return ErrFieldIsEmpty
	}
	if !model.AllowedRoles[role] {
		return fmt.Errorf("%q: %w", role, ErrUnknownRole)
	}
	return nil
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), HashFactor)
}

func checkPassword(hashed []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hashed, []byte(password)) == nil
}

func issueToken(secret, userID, email, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
