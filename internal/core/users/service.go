package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"Socialsphere/internal/core/identity"
)

type userService struct {
	userRepo   UserRepository
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// newUserServiceWithCost lets tests use bcrypt.MinCost
func newUserServiceWithCost(userRepo UserRepository, cost int) *userService {
	return &userService{userRepo: userRepo, bcryptCost: cost}
}

// Register validates the request, hashes the password and creates the account.
// Nothing is written when validation fails.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, NewValidationError("password", "This field is required.")
	}
	if req.Password != req.PasswordConfirm {
		return nil, NewValidationError("password", "Passwords don't match")
	}
	if err := validatePassword(req.Password, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return nil, NewValidationError("username", "A user with that username already exists.")
	case errors.Is(err, ErrEmailTaken):
		return nil, NewValidationError("email", "A user with that email already exists.")
	case err != nil:
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate returns the user when the password matches its stored hash
func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID retrieves a user by id
func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}

// GetMe retrieves the authenticated principal's record
func (s *userService) GetMe(ctx context.Context, principal identity.Principal) (*User, error) {
	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}
	return s.userRepo.GetByID(ctx, principal.UserID)
}

// GetProfile retrieves a profile by username
func (s *userService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, user)
}

// GetOwnProfile retrieves the principal's profile
func (s *userService) GetOwnProfile(ctx context.Context, principal identity.Principal) (*Profile, error) {
	user, err := s.GetMe(ctx, principal)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, user)
}

// UpdateProfile changes the principal's email, bio or avatar
func (s *userService) UpdateProfile(ctx context.Context, principal identity.Principal, req UpdateProfileRequest) (*Profile, error) {
	if !principal.Authenticated() {
		return nil, identity.ErrUnauthenticated
	}

	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		req.Email = &email
	}
	if req.Bio != nil && strings.ContainsRune(*req.Bio, 0) {
		return nil, NewValidationError("bio", "Null characters are not allowed.")
	}
	if req.Avatar != nil && strings.ContainsRune(*req.Avatar, 0) {
		return nil, NewValidationError("avatar", "Null characters are not allowed.")
	}
	if req.Bio != nil && utf8.RuneCountInString(*req.Bio) > maxBioLength {
		return nil, NewValidationError("bio", "Ensure this field has no more than 500 characters.")
	}
	if req.Avatar != nil && utf8.RuneCountInString(*req.Avatar) > maxAvatarLength {
		return nil, NewValidationError("avatar", "Ensure this field has no more than 255 characters.")
	}

	user, err := s.userRepo.UpdateProfile(ctx, principal.UserID, req)
	if errors.Is(err, ErrEmailTaken) {
		return nil, NewValidationError("email", "A user with that email already exists.")
	}
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, user)
}

// GetPublicByIDs returns author projections for the given ids; unknown ids are omitted
func (s *userService) GetPublicByIDs(ctx context.Context, ids []int64) (map[int64]PublicUser, error) {
	result := make(map[int64]PublicUser, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	found, err := s.userRepo.GetByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	for id, user := range found {
		result[id] = user.Public()
	}
	return result, nil
}

func (s *userService) withStats(ctx context.Context, user *User) (*Profile, error) {
	count, err := s.userRepo.CountPosts(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	return &Profile{User: *user, PostsCount: count}, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
