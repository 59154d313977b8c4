// Package normalize turns raw upstream payloads into the shapes served to
// clients. Every category has a rule; most only decode, some also filter.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"

	maplegw "github.com/maplegw/go-maplegw"
)

var (
	ErrNoRule       = errors.New("no normalization rule")
	ErrDecodeFailed = errors.New("failed decoding upstream payload")
)

// Rule decodes the raw payload of a category and returns the value to send to the client.
type Rule func(raw json.RawMessage) (any, error)

// Normalizer maps categories to rules. Rules must be registered before the
// normalizer is shared between goroutines.
type Normalizer struct {
	rules map[maplegw.Category]Rule
}

// New returns a Normalizer with a rule for every character category.
func New() *Normalizer {
	n := &Normalizer{rules: map[maplegw.Category]Rule{}}

	n.Register(maplegw.CategoryBasic, PassThrough[Basic]())
	n.Register(maplegw.CategoryStat, PassThrough[Stat]())
	n.Register(maplegw.CategoryHyperStat, Transform(FilterHyperStat))
	n.Register(maplegw.CategoryPropensity, PassThrough[Propensity]())
	n.Register(maplegw.CategoryAbility, PassThrough[Ability]())
	n.Register(maplegw.CategoryItemEquipment, PassThrough[ItemEquipment]())
	n.Register(maplegw.CategorySymbolEquipment, PassThrough[Symbol]())
	n.Register(maplegw.CategorySetEffect, Transform(FilterSetEffect))
	n.Register(maplegw.CategorySkill, PassThrough[Skill]())
	n.Register(maplegw.CategoryLinkSkill, PassThrough[LinkSkill]())
	n.Register(maplegw.CategoryVMatrix, PassThrough[VMatrix]())
	n.Register(maplegw.CategoryHexaMatrix, PassThrough[HexaMatrix]())
	n.Register(maplegw.CategoryDojang, PassThrough[Dojang]())

	return n
}

// Register sets the rule for a category, replacing the previous one.
func (n *Normalizer) Register(category maplegw.Category, rule Rule) {
	n.rules[category] = rule
}

func (n *Normalizer) Has(category maplegw.Category) bool {
	_, ok := n.rules[category]
	return ok
}

func (n *Normalizer) Normalize(category maplegw.Category, raw json.RawMessage) (any, error) {
	rule, ok := n.rules[category]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoRule, category)
	}

	val, err := rule(raw)
	if err != nil {
		return nil, fmt.Errorf("failed normalizing %s: %w", category, err)
	}

	return val, nil
}

func decode[T any](raw json.RawMessage) (*T, error) {
	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	if d, ok := any(&val).(defaulter); ok {
		d.fillDefaults()
	}

	return &val, nil
}

// PassThrough only decodes the payload into T.
func PassThrough[T any]() Rule {
	return func(raw json.RawMessage) (any, error) {
		val, err := decode[T](raw)
		if err != nil {
			return nil, err
		}

		return val, nil
	}
}

// Transform decodes the payload into T and applies fn to it.
func Transform[T any](fn func(*T) *T) Rule {
	return func(raw json.RawMessage) (any, error) {
		val, err := decode[T](raw)
		if err != nil {
			return nil, err
		}

		return fn(val), nil
	}
}
