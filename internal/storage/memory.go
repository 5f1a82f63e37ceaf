package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vantagefin/vantage/internal/models"
)

// MemoryStorage backs tests and local runs without postgres. It implements
// both UserStore and PortfolioStore.
type MemoryStorage struct {
	mu         sync.RWMutex
	users      map[string]*models.User // keyed by user ID
	emails     map[string]string      // email -> user ID
	portfolios []*models.Portfolio
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:  make(map[string]*models.User),
		emails: make(map[string]string),
	}
}

func (s *MemoryStorage) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.users[user.ID] = user
	s.emails[email] = user.ID

	copied := *user
	return &copied, nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.emails[email]
	if !exists {
		return nil, nil
	}

	copied := *s.users[userID]
	return &copied, nil
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, nil
	}

	copied := *user
	copied.PasswordHash = ""
	return &copied, nil
}

func (s *MemoryStorage) UpdateUser(ctx context.Context, userID, name, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, nil
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		delete(s.emails, user.Email)
		user.Email = email
		s.emails[email] = userID
	}
	if passwordHash != "" {
		user.PasswordHash = passwordHash
	}
	user.UpdatedAt = time.Now()

	copied := *user
	copied.PasswordHash = ""
	return &copied, nil
}

func (s *MemoryStorage) CreatePortfolio(ctx context.Context, portfolio *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *portfolio
	s.portfolios = append(s.portfolios, &copied)
	return nil
}

func (s *MemoryStorage) GetFirstByUserID(ctx context.Context, userID string) (*models.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*models.Portfolio
	for _, p := range s.portfolios {
		if p.UserID == userID {
			matches = append(matches, p)
		}
	}

	if len(matches) == 0 {
		return nil, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})

	copied := *matches[0]
	return &copied, nil
}
