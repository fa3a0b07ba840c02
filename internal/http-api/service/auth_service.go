package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"cinehub/internal/config"
	"cinehub/internal/http-api/middleware/auth"
	"cinehub/internal/http-api/models"
	"cinehub/internal/http-api/repository"
	"cinehub/internal/http-api/roles"
	"cinehub/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrEmailMismatch           = errors.New("email does not match the registered username")
	ErrUsernameMismatch        = errors.New("username does not match the registered email")
	ErrRestrictedUsername      = errors.New("username is restricted")
	ErrUsernameTooLong         = errors.New("username is too long")
	ErrInvalidUsername         = errors.New("username must contain only letters, numbers, and @/./+/-/_ characters")
	ErrInvalidToken            = errors.New("invalid token")
)

const maxUsernameLength = 150

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// AuthClaims is the verified identity carried in an access token.
type AuthClaims struct {
	UserID   string
	Username string
	Role     roles.Role
}

type AuthService interface {
	// Signup validates the identity pair, gets-or-creates an inactive
	// account, and dispatches a fresh confirmation code. The code is never
	// returned to the caller.
	Signup(ctx context.Context, username, email string) (*models.User, error)
	// CreateToken exchanges a (username, code) pair for a bearer token,
	// activating the account. Codes are single-use: the stored hash is
	// cleared on success.
	CreateToken(ctx context.Context, username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*AuthClaims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	mailer         mailer.Mailer
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, m mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo:       userRepo,
		mailer:         m,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// ValidateUsername applies the account naming rules: the character
// pattern, the length cap, and the reserved literal "me" (which collides
// with the self-service endpoint).
func ValidateUsername(username string) error {
	if strings.EqualFold(username, "me") {
		return ErrRestrictedUsername
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	// An existing username may re-signup only with its registered email,
	// and an existing email only with its registered username.
	byUsername, err := s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byUsername != nil && byUsername.Email != email {
		return nil, ErrEmailMismatch
	}

	byEmail, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byEmail != nil && byEmail.Username != username {
		return nil, ErrUsernameMismatch
	}

	user := byUsername
	if user == nil {
		user = &models.User{
			Username: username,
			Email:    email,
			Role:     string(roles.User),
			Active:   false,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	}

	code, err := auth.GenerateCode()
	if err != nil {
		return nil, err
	}
	hashed, err := auth.HashCode(code)
	if err != nil {
		return nil, err
	}
	user.ConfirmationCode = hashed
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	// one delivery attempt; a failure aborts the request
	if err := s.mailer.SendConfirmationCode(ctx, user.Email, code); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) CreateToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// an empty stored hash means no outstanding code (already exchanged)
	if user.ConfirmationCode == "" {
		return "", ErrInvalidConfirmationCode
	}
	if err := auth.VerifyCode(user.ConfirmationCode, confirmationCode); err != nil {
		return "", ErrInvalidConfirmationCode
	}

	user.Active = true
	user.ConfirmationCode = ""
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, _ := mapClaims["user_id"].(string)
	username, _ := mapClaims["username"].(string)
	role, _ := mapClaims["role"].(string)
	// Tokens are only ever minted for signed-in accounts, so a claim of
	// "anonymous" is as bogus as an unknown role.
	if userID == "" || !roles.IsAuthenticated(roles.Role(role)) {
		return nil, ErrInvalidToken
	}

	return &AuthClaims{
		UserID:   userID,
		Username: username,
		Role:     roles.Role(role),
	}, nil
}
