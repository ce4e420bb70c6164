package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"wordbook/internal/domain"
	"wordbook/internal/repository"

	"github.com/samber/lo"
)

// AuthService handles bot password authentication
type AuthService struct {
	slots       repository.SlotRepository
	botPassword string

	mu sync.Mutex
}

// NewAuthService creates a new auth service
func NewAuthService(slots repository.SlotRepository, botPassword string) *AuthService {
	return &AuthService{
		slots:       slots,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return password == s.botPassword
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.authorizedUsers()
	if err != nil {
		return false, err
	}
	return lo.Contains(users, userID), nil
}

// AuthorizeUser adds a user to the authorized list
func (s *AuthService) AuthorizeUser(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.authorizedUsers()
	if err != nil {
		return err
	}
	if lo.Contains(users, userID) {
		return nil
	}

	data, err := json.Marshal(append(users, userID))
	if err != nil {
		return fmt.Errorf("failed to encode authorized users: %w", err)
	}
	return s.slots.Set(domain.AuthorizedUsersKey, data)
}

func (s *AuthService) authorizedUsers() ([]int64, error) {
	data, found, err := s.slots.Get(domain.AuthorizedUsersKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var users []int64
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: authorized users: %v", domain.ErrMalformedStoredData, err)
	}
	return users, nil
}
