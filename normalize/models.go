package normalize

// Nullable upstream strings are declared as plain strings: a JSON null leaves
// them empty, which is what clients expect.

type Basic struct {
	CharacterName       string `json:"character_name"`
	WorldName           string `json:"world_name"`
	CharacterGender     string `json:"character_gender"`
	CharacterClass      string `json:"character_class"`
	CharacterClassLevel string `json:"character_class_level"`
	CharacterLevel      int    `json:"character_level"`
	CharacterExp        int64  `json:"character_exp"`
	CharacterExpRate    string `json:"character_exp_rate"`
	CharacterGuildName  string `json:"character_guild_name"`
	CharacterImage      string `json:"character_image"`
	CharacterDateCreate string `json:"character_date_create"`
}

type StatEntry struct {
	StatName  string `json:"stat_name"`
	StatValue string `json:"stat_value"`
}

type Stat struct {
	FinalStat []StatEntry `json:"final_stat"`
}

// HyperStatEntry is a single allocation of a hyper stat preset. The upstream
// sends null point and increase values for stats that were never invested in.
type HyperStatEntry struct {
	StatType     string  `json:"stat_type"`
	StatPoint    *int    `json:"stat_point"`
	StatLevel    int     `json:"stat_level"`
	StatIncrease *string `json:"stat_increase"`
}

type HyperStat struct {
	Preset1            []HyperStatEntry `json:"hyper_stat_preset_1"`
	Preset1RemainPoint int              `json:"hyper_stat_preset_1_remain_point"`
	Preset2            []HyperStatEntry `json:"hyper_stat_preset_2"`
	Preset2RemainPoint int              `json:"hyper_stat_preset_2_remain_point"`
	Preset3            []HyperStatEntry `json:"hyper_stat_preset_3"`
	Preset3RemainPoint int              `json:"hyper_stat_preset_3_remain_point"`
}

type Propensity struct {
	CharismaLevel    int `json:"charisma_level"`
	SensibilityLevel int `json:"sensibility_level"`
	InsightLevel     int `json:"insight_level"`
	WillingnessLevel int `json:"willingness_level"`
	HandicraftLevel  int `json:"handicraft_level"`
	CharmLevel       int `json:"charm_level"`
}

type AbilityInfo struct {
	AbilityNo    string `json:"ability_no"`
	AbilityGrade string `json:"ability_grade"`
	AbilityValue string `json:"ability_value"`
}

type Ability struct {
	AbilityGrade string        `json:"ability_grade"`
	AbilityInfo  []AbilityInfo `json:"ability_info"`
}

type ItemOption struct {
	Str                    string `json:"str"`
	Dex                    string `json:"dex"`
	Int                    string `json:"int"`
	Luk                    string `json:"luk"`
	MaxHp                  string `json:"max_hp"`
	MaxMp                  string `json:"max_mp"`
	AttackPower            string `json:"attack_power"`
	MagicPower             string `json:"magic_power"`
	Armor                  string `json:"armor"`
	Speed                  string `json:"speed"`
	Jump                   string `json:"jump"`
	BossDamage             string `json:"boss_damage"`
	IgnoreMonsterArmor     string `json:"ignore_monster_armor"`
	AllStat                string `json:"all_stat"`
	Damage                 string `json:"damage"`
	EquipmentLevelDecrease int    `json:"equipment_level_decrease"`
	MaxHpRate              string `json:"max_hp_rate"`
	MaxMpRate              string `json:"max_mp_rate"`
	BaseEquipmentLevel     int    `json:"base_equipment_level"`
}

type ItemExceptionalOption struct {
	Str                    string `json:"str"`
	Dex                    string `json:"dex"`
	Int                    string `json:"int"`
	Luk                    string `json:"luk"`
	MaxHp                  string `json:"max_hp"`
	MaxMp                  string `json:"max_mp"`
	AttackPower            string `json:"attack_power"`
	MagicPower             string `json:"magic_power"`
	ExceptionalUpgrade     int    `json:"exceptional_upgrade"`
	Armor                  string `json:"armor"`
	Speed                  string `json:"speed"`
	Jump                   string `json:"jump"`
	Damage                 string `json:"damage"`
	AllStat                string `json:"all_stat"`
	EquipmentLevelDecrease int    `json:"equipment_level_decrease"`
}

type ItemStatOption struct {
	Str         string `json:"str"`
	Dex         string `json:"dex"`
	Int         string `json:"int"`
	Luk         string `json:"luk"`
	MaxHp       string `json:"max_hp"`
	MaxMp       string `json:"max_mp"`
	AttackPower string `json:"attack_power"`
	MagicPower  string `json:"magic_power"`
	Armor       string `json:"armor"`
	Speed       string `json:"speed"`
	Jump        string `json:"jump"`
}

type Item struct {
	ItemEquipmentPart              string                `json:"item_equipment_part"`
	ItemEquipmentSlot              string                `json:"item_equipment_slot"`
	ItemName                       string                `json:"item_name"`
	ItemIcon                       string                `json:"item_icon"`
	ItemShapeName                  string                `json:"item_shape_name"`
	ItemShapeIcon                  string                `json:"item_shape_icon"`
	ItemTotalOption                ItemOption            `json:"item_total_option"`
	ItemBaseOption                 ItemOption            `json:"item_base_option"`
	PotentialOptionGrade           string                `json:"potential_option_grade"`
	AdditionalPotentialOptionGrade string                `json:"additional_potential_option_grade"`
	PotentialOption1               string                `json:"potential_option_1"`
	PotentialOption2               string                `json:"potential_option_2"`
	PotentialOption3               string                `json:"potential_option_3"`
	AdditionalPotentialOption1     string                `json:"additional_potential_option_1"`
	AdditionalPotentialOption2     string                `json:"additional_potential_option_2"`
	AdditionalPotentialOption3     string                `json:"additional_potential_option_3"`
	ItemExceptionalOption          ItemExceptionalOption `json:"item_exceptional_option"`
	ItemAddOption                  ItemExceptionalOption `json:"item_add_option"`
	ScrollUpgrade                  string                `json:"scroll_upgrade"`
	CuttableCount                  string                `json:"cuttable_count"`
	GoldenHammerFlag               string                `json:"golden_hammer_flag"`
	ScrollResilienceCount          string                `json:"scroll_resilience_count"`
	ScrollUpgradeableCount         string                `json:"scroll_upgradeable_count"`
	SoulName                       string                `json:"soul_name"`
	SoulOption                     string                `json:"soul_option"`
	Starforce                      string                `json:"starforce"`
	ItemEtcOption                  ItemStatOption        `json:"item_etc_option"`
	ItemStarforceOption            ItemStatOption        `json:"item_starforce_option"`
	SpecialRingLevel               int                   `json:"special_ring_level"`
}

type ItemEquipment struct {
	ItemEquipment []Item `json:"item_equipment"`
}

type SymbolInfo struct {
	SymbolName               string `json:"symbol_name"`
	SymbolIcon               string `json:"symbol_icon"`
	SymbolForce              string `json:"symbol_force"`
	SymbolLevel              int    `json:"symbol_level"`
	SymbolStr                string `json:"symbol_str"`
	SymbolDex                string `json:"symbol_dex"`
	SymbolInt                string `json:"symbol_int"`
	SymbolLuk                string `json:"symbol_luk"`
	SymbolHp                 string `json:"symbol_hp"`
	SymbolDropRate           string `json:"symbol_drop_rate"`
	SymbolMesoRate           string `json:"symbol_meso_rate"`
	SymbolExpRate            string `json:"symbol_exp_rate"`
	SymbolGrowthCount        int    `json:"symbol_growth_count"`
	SymbolRequireGrowthCount int    `json:"symbol_require_growth_count"`
}

type Symbol struct {
	Symbol []SymbolInfo `json:"symbol"`
}

// SetOption is a set bonus tier, active once SetCount pieces are equipped.
type SetOption struct {
	SetCount  int    `json:"set_count"`
	SetOption string `json:"set_option"`
}

type SetEffectInfo struct {
	SetName       string      `json:"set_name"`
	TotalSetCount int         `json:"total_set_count"`
	SetOptionFull []SetOption `json:"set_option_full"`
}

type SetEffect struct {
	SetEffect []SetEffectInfo `json:"set_effect"`
}

type SkillInfo struct {
	SkillName        string `json:"skill_name"`
	SkillDescription string `json:"skill_description"`
	SkillLevel       int    `json:"skill_level"`
	SkillEffect      string `json:"skill_effect"`
	SkillIcon        string `json:"skill_icon"`
	SkillEffectNext  string `json:"skill_effect_next"`
}

type Skill struct {
	CharacterSkill []SkillInfo `json:"character_skill"`
}

type LinkSkill struct {
	CharacterLinkSkill []SkillInfo `json:"character_link_skill"`
}

type VCore struct {
	SlotId      string `json:"slot_id"`
	SlotLevel   int    `json:"slot_level"`
	VCoreName   string `json:"v_core_name"`
	VCoreLevel  int    `json:"v_core_level"`
	VCoreSkill1 string `json:"v_core_skill_1"`
	VCoreSkill2 string `json:"v_core_skill_2"`
	VCoreSkill3 string `json:"v_core_skill_3"`
	VCoreType   string `json:"v_core_type"`
}

type VMatrix struct {
	CharacterVCoreEquipment                []VCore `json:"character_v_core_equipment"`
	CharacterVMatrixRemainSlotUpgradePoint int     `json:"character_v_matrix_remain_slot_upgrade_point"`
}

type HexaLinkedSkill struct {
	HexaSkillId string `json:"hexa_skill_id"`
}

type HexaCore struct {
	HexaCoreName  string            `json:"hexa_core_name"`
	HexaCoreLevel int               `json:"hexa_core_level"`
	HexaCoreType  string            `json:"hexa_core_type"`
	LinkedSkill   []HexaLinkedSkill `json:"linked_skill"`
}

type HexaMatrix struct {
	CharacterHexaCoreEquipment []HexaCore `json:"character_hexa_core_equipment"`
}

type Dojang struct {
	DojangBestFloor  int    `json:"dojang_best_floor"`
	DateDojangRecord string `json:"date_dojang_record"`
	DojangBestTime   int    `json:"dojang_best_time"`
}
