// Package services implements the application's business logic. Each
// service owns an in-memory authoritative copy of its collection, mutates
// it optimistically, persists through its repository and rolls the memory
// state back when the write fails.
package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/events"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/storage"
	"github.com/taskvault/taskvault/internal/utils"
	"github.com/taskvault/taskvault/internal/validation"
)

var (
	ErrEmailTaken         = apperrors.New(apperrors.KindDuplicate, "an account with this email already exists")
	ErrInvalidCredentials = apperrors.New(apperrors.KindInvalidCredentials, "invalid email or password")
	ErrNotAuthenticated   = apperrors.New(apperrors.KindInvalidCredentials, "no user is signed in")
	ErrWrongPassword      = apperrors.New(apperrors.KindInvalidCredentials, "current password is incorrect")
	ErrUserNotFound       = apperrors.New(apperrors.KindNotFound, "user not found")
)

// AuthService handles registration, login and profile business logic. It
// keeps the user roster in memory and restores a persisted session at
// construction time.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	tasks    repository.TaskRepository
	cats     repository.CategoryRepository
	settings repository.SettingsRepository
	bus      *events.Bus

	roster  []models.User
	current *models.User
	now     func() time.Time
}

// NewAuthService creates an AuthService, loads the roster and restores the
// persisted session if its user still exists.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tasks repository.TaskRepository,
	cats repository.CategoryRepository,
	settings repository.SettingsRepository,
	bus *events.Bus,
) (*AuthService, error) {
	roster, err := users.All()
	if err != nil {
		return nil, err
	}

	s := &AuthService{
		users:    users,
		sessions: sessions,
		tasks:    tasks,
		cats:     cats,
		settings: settings,
		bus:      bus,
		roster:   roster,
		now:      time.Now,
	}
	if err := s.restoreSession(); err != nil {
		return nil, err
	}
	return s, nil
}

// restoreSession resurrects a persisted session. A session pointing at a
// user that no longer exists is stale and gets cleared instead of
// restored.
func (s *AuthService) restoreSession() error {
	session, ok, err := s.sessions.Get()
	if err != nil {
		// Unreadable session data means a stale or corrupt record, not a
		// fatal startup condition. Drop it and start signed out.
		if apperrors.IsDeserialization(err) {
			return s.sessions.Clear()
		}
		return err
	}
	if !ok {
		return nil
	}

	for i := range s.roster {
		if s.roster[i].ID == session.ID {
			user := s.roster[i]
			s.current = &user
			return nil
		}
	}
	return s.sessions.Clear()
}

// RegisterInput represents the required information to create an account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Register creates a new account and signs it in.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)

	if err := validation.Email(email); err != nil {
		return nil, err
	}
	if err := validation.Username(username); err != nil {
		return nil, err
	}
	if err := validation.Password(input.Password); err != nil {
		return nil, err
	}
	if s.findByEmail(email) != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence, "failed to hash password", err)
	}

	user := models.User{
		ID:           utils.NewID("user"),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    storage.NewDateTime(s.now()),
		Profile:      models.DefaultProfile(),
	}

	prev := s.roster
	s.roster = append(append([]models.User(nil), s.roster...), user)
	if err := s.users.Save(s.roster); err != nil {
		s.roster = prev
		return nil, err
	}

	if err := s.signIn(user); err != nil {
		return nil, err
	}
	out := user
	return &out, nil
}

// LoginInput represents the credentials for signing in.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies the credentials and establishes the session.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user := s.findByEmail(email)
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.signIn(*user); err != nil {
		return nil, err
	}
	out := *user
	return &out, nil
}

// Logout clears the session. Logging out while signed out is a no-op.
func (s *AuthService) Logout() error {
	if s.current == nil {
		return nil
	}
	if err := s.sessions.Clear(); err != nil {
		return err
	}
	s.current = nil
	s.bus.Publish(events.SessionChanged{Authenticated: false})
	return nil
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *AuthService) CurrentUser() *models.User {
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// IsAuthenticated reports whether a user is signed in.
func (s *AuthService) IsAuthenticated() bool {
	return s.current != nil
}

// ChangePassword replaces a user's password after verifying the current
// one. When the changed user is the signed-in one, the live session
// follows.
func (s *AuthService) ChangePassword(email, currentPassword, newPassword string) error {
	user := s.findByEmail(strings.TrimSpace(strings.ToLower(email)))
	if user == nil {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}
	if err := validation.Password(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, "failed to hash password", err)
	}

	updated := *user
	updated.PasswordHash = string(hash)
	return s.saveUser(updated)
}

// UpdateProfileInput carries the profile fields to change. Nil fields stay
// untouched.
type UpdateProfileInput struct {
	Theme         *string
	Notifications *bool
}

// UpdateProfile updates the signed-in user's preferences.
func (s *AuthService) UpdateProfile(input UpdateProfileInput) (*models.User, error) {
	if s.current == nil {
		return nil, ErrNotAuthenticated
	}

	updated := *s.current
	if input.Theme != nil {
		if err := validation.Theme(*input.Theme); err != nil {
			return nil, err
		}
		updated.Profile.Theme = *input.Theme
	}
	if input.Notifications != nil {
		updated.Profile.Notifications = *input.Notifications
	}

	if err := s.saveUser(updated); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(sessionFromUser(updated)); err != nil {
		return nil, err
	}

	out := updated
	s.bus.Publish(events.ProfileUpdated{User: &out})
	return &out, nil
}

// DeleteAccount removes the signed-in user and everything that belongs to
// them: tasks, categories, avatar and session.
func (s *AuthService) DeleteAccount(password string) error {
	if s.current == nil {
		return ErrNotAuthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(s.current.PasswordHash), []byte(password)) != nil {
		return ErrWrongPassword
	}
	userID := s.current.ID

	prev := s.roster
	remaining := make([]models.User, 0, len(s.roster))
	for _, u := range s.roster {
		if u.ID != userID {
			remaining = append(remaining, u)
		}
	}
	s.roster = remaining
	if err := s.users.Save(s.roster); err != nil {
		s.roster = prev
		return err
	}

	if err := s.tasks.Delete(userID); err != nil {
		return err
	}
	if err := s.cats.DeleteForUser(userID); err != nil {
		return err
	}
	if err := s.settings.RemoveAvatar(userID); err != nil {
		return err
	}
	if err := s.sessions.Clear(); err != nil {
		return err
	}

	s.current = nil
	s.bus.Publish(events.SessionChanged{Authenticated: false})
	return nil
}

// signIn sets the in-memory current user, persists the session and
// announces the change.
func (s *AuthService) signIn(user models.User) error {
	if err := s.sessions.Set(sessionFromUser(user)); err != nil {
		return err
	}
	s.current = &user
	s.bus.Publish(events.SessionChanged{Authenticated: true, User: s.CurrentUser()})
	return nil
}

// saveUser writes an updated user back to the roster, rolling back when
// persistence fails. The current pointer follows when it is the same user.
func (s *AuthService) saveUser(updated models.User) error {
	prev := s.roster
	next := make([]models.User, len(s.roster))
	copy(next, s.roster)
	for i := range next {
		if next[i].ID == updated.ID {
			next[i] = updated
			break
		}
	}

	s.roster = next
	if err := s.users.Save(s.roster); err != nil {
		s.roster = prev
		return err
	}
	if s.current != nil && s.current.ID == updated.ID {
		s.current = &updated
	}
	return nil
}

func (s *AuthService) findByEmail(email string) *models.User {
	for i := range s.roster {
		if strings.EqualFold(s.roster[i].Email, email) {
			return &s.roster[i]
		}
	}
	return nil
}

// sessionFromUser projects a user onto the persisted session shape,
// leaving the password digest behind.
func sessionFromUser(u models.User) models.Session {
	return models.Session{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
		Profile:   u.Profile,
	}
}
