package nxopen

import (
	"net/url"
	"strconv"
	"time"

	maplegw "github.com/maplegw/go-maplegw"
)

const DefaultBaseUrl = "https://open.api.nexon.com/maplestory/v1/"

type endpoint struct {
	path string

	// dated endpoints take a date parameter pointing at the previous day.
	dated bool
}

var endpoints = map[maplegw.Category]endpoint{
	maplegw.CategoryOcid:            {path: "id"},
	maplegw.CategoryBasic:           {path: "character/basic", dated: true},
	maplegw.CategoryStat:            {path: "character/stat", dated: true},
	maplegw.CategoryHyperStat:       {path: "character/hyper-stat", dated: true},
	maplegw.CategoryPropensity:      {path: "character/propensity", dated: true},
	maplegw.CategoryAbility:         {path: "character/ability", dated: true},
	maplegw.CategoryItemEquipment:   {path: "character/item-equipment", dated: true},
	maplegw.CategorySymbolEquipment: {path: "character/symbol-equipment", dated: true},
	maplegw.CategorySetEffect:       {path: "character/set-effect", dated: true},
	maplegw.CategorySkill:           {path: "character/skill", dated: true},
	maplegw.CategoryLinkSkill:       {path: "character/link-skill", dated: true},
	maplegw.CategoryVMatrix:         {path: "character/vmatrix", dated: true},
	maplegw.CategoryHexaMatrix:      {path: "character/hexamatrix", dated: true},
	maplegw.CategoryDojang:          {path: "character/dojang", dated: true},
}

// seoul has no daylight saving time, a fixed zone avoids depending on tzdata.
var seoul = time.FixedZone("KST", 9*60*60)

// QueryDate returns the date the upstream should be queried for. Data for the
// current day is incomplete, so the previous day in Seoul time is used.
func QueryDate(now time.Time) string {
	return now.Add(-24 * time.Hour).In(seoul).Format(time.DateOnly)
}

// SkillGradeParams builds the extra parameters for the skill category.
func SkillGradeParams(level int) url.Values {
	return url.Values{"character_skill_grade": []string{strconv.Itoa(level)}}
}
