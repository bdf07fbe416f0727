package service

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/scanmark/attendance-api/internal/models"
	"github.com/scanmark/attendance-api/pkg/config"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
)

// AuthService authenticates the single configured admin and manages the
// signed session token. The admin flag is carried in the token signature;
// nothing client-side is trusted.
type AuthService struct {
	admin     config.AdminConfig
	session   config.SessionConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(admin config.AdminConfig, session config.SessionConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{admin: admin, session: session, validator: validate, logger: logger, now: time.Now}
}

// Login checks the submitted credential against the configured admin and
// returns a signed session token on success.
func (s *AuthService) Login(req models.LoginRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(s.admin.Email))) == 1

	passwordOK := false
	switch {
	case s.admin.PasswordHash != "":
		passwordOK = bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(req.Password)) == nil
	case s.admin.Password != "":
		passwordOK = subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.admin.Password)) == 1
	}

	if !emailOK || !passwordOK {
		return "", appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid admin email or password")
	}

	token, err := s.issueToken(email)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	s.logger.Info("admin login", zap.String("email", email))
	return token, nil
}

// ValidateSession parses and verifies a session token, requiring the admin claim.
func (s *AuthService) ValidateSession(token string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.session.Secret), nil
	})
	if err != nil || !parsed.Valid || !claims.Admin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "admin login required")
	}
	return claims, nil
}

// CookieName returns the configured session cookie name.
func (s *AuthService) CookieName() string {
	return s.session.CookieName
}

// SessionTTL returns the configured session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.session.TTL
}

func (s *AuthService) issueToken(email string) (string, error) {
	now := s.now().UTC()
	claims := models.SessionClaims{
		Email: email,
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.session.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.session.Secret))
}
