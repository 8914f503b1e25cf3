package workspace

import (
	"sort"
	"sync"
)

type membership struct {
	userID      string
	communityID string
}

// Memberships is the process-wide (user, community) relation set. It is safe
// for concurrent use by many workspaces.
type Memberships struct {
	mu  sync.RWMutex
	set map[membership]struct{}
}

// NewMemberships creates an empty relation set.
func NewMemberships() *Memberships {
	return &Memberships{set: make(map[membership]struct{})}
}

// Join adds the pair and reports whether it was new.
func (m *Memberships) Join(userID, communityID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := membership{userID, communityID}
	if _, ok := m.set[key]; ok {
		return false
	}
	m.set[key] = struct{}{}
	return true
}

// Leave removes the pair and reports whether it existed.
func (m *Memberships) Leave(userID, communityID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := membership{userID, communityID}
	if _, ok := m.set[key]; !ok {
		return false
	}
	delete(m.set, key)
	return true
}

// IsMember reports whether userID belongs to communityID.
func (m *Memberships) IsMember(userID, communityID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.set[membership{userID, communityID}]
	return ok
}

// Members lists the users in communityID.
func (m *Memberships) Members(communityID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for key := range m.set {
		if key.communityID == communityID {
			out = append(out, key.userID)
		}
	}
	sort.Strings(out)
	return out
}
