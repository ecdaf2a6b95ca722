package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodnet/internal/domain"
	tokenrepo "foodnet/internal/repository/token"
	userrepo "foodnet/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles signup/login flows for region-scoped accounts.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo userrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Address           string   `json:"address"`
	Roles             []string `json:"roles"`
	CooperativeMember bool     `json:"cooperativeMember"`
}

// Signup registers a new user within the given region.
func (s *Service) Signup(ctx context.Context, regionID string, in SignupInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, domain.Validation("email", "required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, domain.Validation("password", "too short")
	}
	roles, err := normalizeRoles(in.Roles)
	if err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := domain.User{
		RegionID:          regionID,
		Email:             email,
		PasswordHash:      string(hashed),
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Address:           strings.TrimSpace(in.Address),
		Roles:             roles,
		CooperativeMember: in.CooperativeMember,
	}
	return s.repo.Create(ctx, u)
}

// Login validates credentials and returns issued tokens plus the user.
func (s *Service) Login(ctx context.Context, regionID, email, password string) (*domain.User, string, string, error) {
	password = strings.TrimSpace(password)
	u, err := s.repo.GetByEmail(ctx, regionID, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.RegionID, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, u.RegionID, u.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, regionID, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok || meta.RegionID != regionID {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, regionID, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func normalizeRoles(in []string) ([]string, error) {
	if len(in) == 0 {
		return []string{domain.RoleBuyer}, nil
	}
	seen := map[string]bool{}
	var out []string
	for _, r := range in {
		r = strings.TrimSpace(strings.ToLower(r))
		switch r {
		case domain.RoleBuyer, domain.RoleSeller, domain.RoleCourier:
		default:
			return nil, domain.Validation("roles", "unknown role "+r)
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out, nil
}
