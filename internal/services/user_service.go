package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/storage"
	"job-tracker-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SessionClaims are the claims carried by session tokens. The subject is the
// user id.
type SessionClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject.
func (c *SessionClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type userService struct {
	repo          storage.UserRepository
	revoked       storage.TokenRevocationStore
	validate      *validator.Validate
	jwtSecret     []byte
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewUserService creates a new instance of UserService. revoked may be nil,
// in which case logout only ends the session client-side.
func NewUserService(repo storage.UserRepository, revoked storage.TokenRevocationStore, validate *validator.Validate, jwtSecret string, jwtExpiration time.Duration) UserService {
	return &userService{
		repo:          repo,
		revoked:       revoked,
		validate:      validate,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}
}

// Register creates an applicant account and signs it in.
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Email, req.Password, req.FullName, req.Phone, models.RoleApplicant)
	if err != nil {
		return nil, err
	}
	return s.signIn(user)
}

// Login checks the credentials and issues a session token.
func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.WithField("email", req.Email).Info("Login attempt failed: user not found")
			return nil, ErrInvalidCredentials
		}
		return nil, mapRepoError(err, "fetching user for login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.WithField("email", req.Email).Info("Login attempt failed: invalid password")
		return nil, ErrInvalidCredentials
	}

	return s.signIn(user)
}

// Me returns the profile of the authenticated user.
func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching user %s", userID))
	}
	return user, nil
}

// Logout revokes the token until it would have expired.
func (s *userService) Logout(ctx context.Context, claims *SessionClaims) error {
	if s.revoked == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		log.WithError(err).WithField("subject", claims.Subject).Error("Failed to revoke token")
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

// VerifyToken parses and checks a session token, including revocation.
func (s *userService) VerifyToken(ctx context.Context, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", jwt.ErrTokenInvalidSubject)
	}

	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// ErrTokenRevoked is returned by VerifyToken for logged-out tokens.
var ErrTokenRevoked = errors.New("token has been revoked")

// EnsureAdmin creates the admin account unless a user with that email exists.
func (s *userService) EnsureAdmin(ctx context.Context, email, password, fullName string) error {
	email = normalizeEmail(email)
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsAdmin() {
			log.WithField("email", email).Warn("Bootstrap admin email belongs to a non-admin account")
		}
		return nil
	case !errors.Is(err, storage.ErrNotFound):
		return mapRepoError(err, "looking up bootstrap admin")
	}

	if _, err := s.createUser(ctx, email, password, strings.TrimSpace(fullName), "", models.RoleAdmin); err != nil {
		return err
	}
	log.WithField("email", email).Info("Bootstrap admin account created")
	return nil
}

func (s *userService) createUser(ctx context.Context, email, password, fullName, phone string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user, err := s.repo.Create(ctx, &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     fullName,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, mapRepoError(err, "creating user")
	}
	return user, nil
}

func (s *userService) signIn(user *models.User) (*dto.AuthResponse, error) {
	now := s.now()
	claims := &SessionClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Error generating JWT token")
		return nil, fmt.Errorf("failed to generate login token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
