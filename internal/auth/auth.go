package auth

import (
	"errors"
	"sort"
	"sync"
)

// ErrForbidden is returned when a non-admin user attempts an admin action.
var ErrForbidden = errors.New("auth: forbidden")

// Service holds the administrator identity and the mutable allow-list.
// The allow-list is seeded from config at startup and grows only through
// Promote; it is intentionally not persisted and resets on restart.
type Service struct {
	adminID int64

	mu      sync.Mutex
	allowed map[int64]struct{}
}

func New(adminID int64, initial []int64) *Service {
	s := &Service{adminID: adminID, allowed: make(map[int64]struct{}, len(initial))}
	for _, id := range initial {
		s.allowed[id] = struct{}{}
	}
	return s
}

func (s *Service) IsAdmin(userID int64) bool {
	return userID == s.adminID
}

// IsAuthorized reports whether userID may talk to the bot.
// The administrator is authorized regardless of allow-list membership.
func (s *Service) IsAuthorized(userID int64) bool {
	if userID == s.adminID {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.allowed[userID]
	return ok
}

// Promote adds target to the allow-list. Only the administrator may
// promote; repeated promotions of the same identity are no-ops.
func (s *Service) Promote(requester, target int64) error {
	if requester != s.adminID {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowed[target] = struct{}{}
	return nil
}

// AllowedIDs returns a sorted snapshot of the allow-list for broadcast
// fan-out. It reflects every promotion completed before the call.
func (s *Service) AllowedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.allowed))
	for id := range s.allowed {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
