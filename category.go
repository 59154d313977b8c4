package go_maplegw

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Category selects the upstream endpoint and the normalization rule for a request.
type Category string

const (
	CategoryOcid            Category = "ocid"
	CategoryBasic           Category = "basic"
	CategoryStat            Category = "stat"
	CategoryHyperStat       Category = "hyper-stat"
	CategoryPropensity      Category = "propensity"
	CategoryAbility         Category = "ability"
	CategoryItemEquipment   Category = "item-equipment"
	CategorySymbolEquipment Category = "symbol-equipment"
	CategorySetEffect       Category = "set-effect"
	CategorySkill           Category = "skill"
	CategoryLinkSkill       Category = "link-skill"
	CategoryVMatrix         Category = "vmatrix"
	CategoryHexaMatrix      Category = "hexamatrix"
	CategoryDojang          Category = "dojang"
)

// CharacterCategories are the categories that read data for an already resolved character.
var CharacterCategories = []Category{
	CategoryBasic,
	CategoryStat,
	CategoryHyperStat,
	CategoryPropensity,
	CategoryAbility,
	CategoryItemEquipment,
	CategorySymbolEquipment,
	CategorySetEffect,
	CategorySkill,
	CategoryLinkSkill,
	CategoryVMatrix,
	CategoryHexaMatrix,
	CategoryDojang,
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c == CategoryOcid || slices.Contains(CharacterCategories, c) {
		return c, nil
	}

	return "", fmt.Errorf("unknown category: %s", s)
}

func (c Category) String() string {
	return string(c)
}

// IsCharacter reports whether the category needs a resolved ocid.
func (c Category) IsCharacter() bool {
	return slices.Contains(CharacterCategories, c)
}
