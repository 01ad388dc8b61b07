package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the account persistence surface AuthService depends on.
type UserStore interface {
	Create(u models.User, passwordHash string) (models.User, error)
	GetByEmail(email string) (models.User, string, error)
}

// AuthService owns registration, login and session-token handling. Tokens
// are stateless JWTs carrying only the email claim; logout is client-side
// cookie deletion.
type AuthService struct {
	Users     UserStore
	Secret    []byte
	TokenTTL  time.Duration
	RequestID string
}

const defaultTokenTTL = 7 * 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register validates the input, hashes the password and stores the account.
// Duplicate email/name surface as field-level conflicts from the store.
func (s AuthService) Register(in RegisterInput) (models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	errs := domain.FieldErrors{}
	if !emailPattern.MatchString(in.Email) {
		errs["email"] = "invalid email address"
	}
	if n := utf8.RuneCountInString(in.Name); n < 2 || n > 32 {
		errs["name"] = "name must be between 2 and 32 characters"
	}
	if len(in.Password) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	if len(errs) > 0 {
		return models.User{}, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	user, err := s.Users.Create(models.User{Email: in.Email, Name: in.Name}, string(hash))
	if err != nil {
		return models.User{}, err
	}

	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", user.ID))
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password are reported
// as distinct errors so the client can target the right form field.
func (s AuthService) Login(email, password string) (models.User, error) {
	email = strings.TrimSpace(email)

	errs := domain.FieldErrors{}
	if email == "" {
		errs["email"] = "email must not be empty"
	}
	if password == "" {
		errs["password"] = "password must not be empty"
	}
	if len(errs) > 0 {
		return models.User{}, errs
	}

	user, hash, err := s.Users.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, domain.NotFoundError{Resource: "user", Field: "email", Msg: "no account registered with this email", Err: err}
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.User{}, domain.InvalidCredentialsError{Field: "password", Msg: "wrong password"}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return user, nil
}

// IssueToken mints the session JWT for a verified account.
func (s AuthService) IssueToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(s.ttl()).Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, nil
}

// ResolveToken verifies signature and expiry and returns the email claim.
func (s AuthService) ResolveToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", domain.UnauthenticatedError{Msg: "invalid or expired token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.UnauthenticatedError{Msg: "invalid token claims"}
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", domain.UnauthenticatedError{Msg: "token has no email claim"}
	}
	return email, nil
}

func (s AuthService) ttl() time.Duration {
	if s.TokenTTL != 0 {
		return s.TokenTTL
	}
	return defaultTokenTTL
}
