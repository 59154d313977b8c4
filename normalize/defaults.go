package normalize

// defaulter is implemented by models holding lists, a missing or null
// upstream list is sent to clients as an empty list.
type defaulter interface {
	fillDefaults()
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

func (s *Stat) fillDefaults() {
	s.FinalStat = orEmpty(s.FinalStat)
}

func (h *HyperStat) fillDefaults() {
	h.Preset1 = orEmpty(h.Preset1)
	h.Preset2 = orEmpty(h.Preset2)
	h.Preset3 = orEmpty(h.Preset3)
}

func (a *Ability) fillDefaults() {
	a.AbilityInfo = orEmpty(a.AbilityInfo)
}

func (ie *ItemEquipment) fillDefaults() {
	ie.ItemEquipment = orEmpty(ie.ItemEquipment)
}

func (s *Symbol) fillDefaults() {
	s.Symbol = orEmpty(s.Symbol)
}

func (se *SetEffect) fillDefaults() {
	se.SetEffect = orEmpty(se.SetEffect)
	for i := range se.SetEffect {
		se.SetEffect[i].SetOptionFull = orEmpty(se.SetEffect[i].SetOptionFull)
	}
}

func (s *Skill) fillDefaults() {
	s.CharacterSkill = orEmpty(s.CharacterSkill)
}

func (ls *LinkSkill) fillDefaults() {
	ls.CharacterLinkSkill = orEmpty(ls.CharacterLinkSkill)
}

func (vm *VMatrix) fillDefaults() {
	vm.CharacterVCoreEquipment = orEmpty(vm.CharacterVCoreEquipment)
}

func (hm *HexaMatrix) fillDefaults() {
	hm.CharacterHexaCoreEquipment = orEmpty(hm.CharacterHexaCoreEquipment)
	for i := range hm.CharacterHexaCoreEquipment {
		hm.CharacterHexaCoreEquipment[i].LinkedSkill = orEmpty(hm.CharacterHexaCoreEquipment[i].LinkedSkill)
	}
}
