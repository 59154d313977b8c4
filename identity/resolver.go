// Package identity resolves client session tokens to upstream character
// identities, asking the upstream only when no identity is cached yet.
package identity

import (
	"context"
	"errors"
	"fmt"

	maplegw "github.com/maplegw/go-maplegw"
)

var (
	ErrMissingToken     = errors.New("missing session token")
	ErrMissingName      = errors.New("missing character name")
	ErrResolutionFailed = errors.New("failed resolving identity")
)

// OcidLookup asks the upstream for the identity of a character name.
type OcidLookup interface {
	LookupOcid(ctx context.Context, characterName string) (maplegw.Ocid, error)
}

// IdentityStore is the part of the credential store used by the resolver.
type IdentityStore interface {
	GetIdentity(token string) (maplegw.Ocid, bool)
	SetIdentity(token string, ocid maplegw.Ocid)
}

// Resolver does not deduplicate concurrent lookups for the same token: the
// upstream lookup is idempotent and the last write wins with the same value.
type Resolver struct {
	log    maplegw.Logger
	store  IdentityStore
	lookup OcidLookup
}

func NewResolver(log maplegw.Logger, store IdentityStore, lookup OcidLookup) *Resolver {
	if log == nil {
		log = &maplegw.NullLogger{}
	}

	return &Resolver{log: log, store: store, lookup: lookup}
}

// Cached returns the identity already known for the token without contacting the upstream.
func (r *Resolver) Cached(token string) (maplegw.Ocid, bool) {
	if len(token) == 0 {
		return "", false
	}

	return r.store.GetIdentity(token)
}

// Resolve returns the identity for the token, looking up the character name
// upstream only if the token has no cached identity.
func (r *Resolver) Resolve(ctx context.Context, token, characterName string) (maplegw.Ocid, error) {
	if len(token) == 0 {
		return "", ErrMissingToken
	} else if len(characterName) == 0 {
		return "", ErrMissingName
	}

	if ocid, ok := r.store.GetIdentity(token); ok {
		r.log.Tracef("identity cache hit for %s", maplegw.ObfuscateToken(token))
		return ocid, nil
	}

	ocid, err := r.lookup.LookupOcid(ctx, characterName)
	if err != nil {
		return "", fmt.Errorf("%w for %s: %w", ErrResolutionFailed, characterName, err)
	}

	r.store.SetIdentity(token, ocid)
	r.log.Debugf("resolved identity of %s for %s", characterName, maplegw.ObfuscateToken(token))
	return ocid, nil
}
