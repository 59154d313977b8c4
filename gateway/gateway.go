// Package gateway composes identity resolution, upstream fetching and
// response normalization into the operations exposed to clients.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	maplegw "github.com/maplegw/go-maplegw"
	"github.com/maplegw/go-maplegw/identity"
	"github.com/maplegw/go-maplegw/normalize"
	"github.com/maplegw/go-maplegw/nxopen"
)

var (
	ErrIdentityUnresolved = errors.New("identity not resolved")
	ErrUnknownCategory    = nxopen.ErrUnknownCategory
	ErrMissingParameter   = errors.New("missing parameter")
)

// Upstream is the remote side of the gateway, implemented by nxopen.Client.
type Upstream interface {
	identity.OcidLookup
	Fetch(ctx context.Context, category maplegw.Category, ocid maplegw.Ocid, extra url.Values) (json.RawMessage, error)
}

// Store is the credential store as seen by the gateway.
type Store interface {
	identity.IdentityStore
	ForgetIdentity(token string) bool
}

// Params are the optional request parameters of a character category.
type Params struct {
	// NickName allows resolving the identity on the fly when the token is unknown.
	NickName string

	// Level is the skill grade, required by the skill category.
	Level *int
}

type Gateway struct {
	log maplegw.Logger

	store      Store
	resolver   *identity.Resolver
	upstream   Upstream
	normalizer *normalize.Normalizer
}

func New(log maplegw.Logger, store Store, upstream Upstream, normalizer *normalize.Normalizer) *Gateway {
	if log == nil {
		log = &maplegw.NullLogger{}
	}
	if normalizer == nil {
		normalizer = normalize.New()
	}

	return &Gateway{
		log:        log,
		store:      store,
		resolver:   identity.NewResolver(log, store, upstream),
		upstream:   upstream,
		normalizer: normalizer,
	}
}

// ResolveIdentity binds the token to the identity of the character name.
func (g *Gateway) ResolveIdentity(ctx context.Context, token, nickName string) (maplegw.Ocid, error) {
	return g.resolver.Resolve(ctx, token, nickName)
}

// Forget drops the identity bound to the token.
func (g *Gateway) Forget(token string) bool {
	return g.store.ForgetIdentity(token)
}

func (g *Gateway) identityFor(ctx context.Context, token string, params Params) (maplegw.Ocid, error) {
	if len(token) == 0 {
		return "", identity.ErrMissingToken
	}

	if ocid, ok := g.resolver.Cached(token); ok {
		return ocid, nil
	}

	if len(params.NickName) == 0 {
		return "", ErrIdentityUnresolved
	}

	return g.resolver.Resolve(ctx, token, params.NickName)
}

func extraParams(category maplegw.Category, params Params) (url.Values, error) {
	switch category {
	case maplegw.CategorySkill:
		if params.Level == nil {
			return nil, fmt.Errorf("%w: level", ErrMissingParameter)
		}

		return nxopen.SkillGradeParams(*params.Level), nil
	default:
		return nil, nil
	}
}

// Fetch returns the normalized data of a character category for the identity bound to the token.
func (g *Gateway) Fetch(ctx context.Context, token string, category maplegw.Category, params Params) (any, error) {
	if !category.IsCharacter() || !g.normalizer.Has(category) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	extra, err := extraParams(category, params)
	if err != nil {
		return nil, err
	}

	ocid, err := g.identityFor(ctx, token, params)
	if err != nil {
		return nil, err
	}

	raw, err := g.upstream.Fetch(ctx, category, ocid, extra)
	if err != nil {
		return nil, fmt.Errorf("failed fetching %s: %w", category, err)
	}

	val, err := g.normalizer.Normalize(category, raw)
	if err != nil {
		return nil, err
	}

	return val, nil
}
