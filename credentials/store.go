// Package credentials holds the upstream API key and the mapping from client
// session tokens to the upstream character identifiers they resolved to.
package credentials

import (
	"context"
	"sync"
	"time"

	maplegw "github.com/maplegw/go-maplegw"
)

type entry struct {
	ocid     maplegw.Ocid
	storedAt time.Time
}

// Store is created once per process and shared by every request. The API key
// never changes after construction, the identity map is guarded by identitiesLock.
type Store struct {
	log    maplegw.Logger
	apiKey string

	// ttl is zero when mappings never expire.
	ttl time.Duration
	now func() time.Time

	identities     map[string]entry
	identitiesLock sync.RWMutex
}

type Options struct {
	Log maplegw.Logger

	ApiKey string

	// IdentityTTL is how long a token mapping stays valid, zero disables expiry.
	IdentityTTL time.Duration

	// Now overrides the clock, mostly useful for tests.
	Now func() time.Time
}

func NewStore(opts *Options) *Store {
	s := &Store{
		log:        opts.Log,
		apiKey:     opts.ApiKey,
		ttl:        opts.IdentityTTL,
		now:        opts.Now,
		identities: map[string]entry{},
	}

	if s.log == nil {
		s.log = &maplegw.NullLogger{}
	}
	if s.now == nil {
		s.now = time.Now
	}

	return s
}

func (s *Store) ApiKey() string {
	return s.apiKey
}

// SetIdentity stores the identity for the given token, replacing any previous one.
func (s *Store) SetIdentity(token string, ocid maplegw.Ocid) {
	s.identitiesLock.Lock()
	defer s.identitiesLock.Unlock()

	if prev, ok := s.identities[token]; ok && prev.ocid != ocid {
		s.log.Debugf("replacing identity for token %s", maplegw.ObfuscateToken(token))
	}

	s.identities[token] = entry{ocid: ocid, storedAt: s.now()}
}

// GetIdentity returns the identity stored for the token. A missing or expired
// mapping is reported with ok set to false.
func (s *Store) GetIdentity(token string) (_ maplegw.Ocid, ok bool) {
	s.identitiesLock.RLock()
	defer s.identitiesLock.RUnlock()

	e, ok := s.identities[token]
	if !ok || s.expired(e, s.now()) {
		return "", false
	}

	return e.ocid, true
}

// ForgetIdentity drops the mapping for the token, if any.
func (s *Store) ForgetIdentity(token string) bool {
	s.identitiesLock.Lock()
	defer s.identitiesLock.Unlock()

	_, ok := s.identities[token]
	delete(s.identities, token)
	return ok
}

// Len returns the number of stored mappings, including expired ones not yet pruned.
func (s *Store) Len() int {
	s.identitiesLock.RLock()
	defer s.identitiesLock.RUnlock()
	return len(s.identities)
}

func (s *Store) expired(e entry, now time.Time) bool {
	return s.ttl > 0 && e.storedAt.Add(s.ttl).Before(now)
}

// Prune removes every expired mapping and returns how many were removed.
func (s *Store) Prune(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.identitiesLock.Lock()
	defer s.identitiesLock.Unlock()

	var removed int
	for token, e := range s.identities {
		if s.expired(e, now) {
			delete(s.identities, token)
			removed++
		}
	}

	return removed
}

// RunJanitor prunes expired mappings every interval until ctx is done.
// It returns immediately when no TTL is configured.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Prune(s.now()); removed > 0 {
				s.log.Debugf("pruned %d expired identities", removed)
			}
		}
	}
}
