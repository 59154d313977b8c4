package normalize

import "golang.org/x/exp/slices"

func filterHyperStatPreset(preset []HyperStatEntry) []HyperStatEntry {
	if preset == nil {
		return []HyperStatEntry{}
	}

	return slices.DeleteFunc(preset, func(e HyperStatEntry) bool {
		return e.StatPoint == nil || e.StatIncrease == nil
	})
}

// FilterHyperStat drops the entries of every preset that have no allocated
// points or no increase description. Remaining points are left untouched.
func FilterHyperStat(hs *HyperStat) *HyperStat {
	hs.Preset1 = filterHyperStatPreset(hs.Preset1)
	hs.Preset2 = filterHyperStatPreset(hs.Preset2)
	hs.Preset3 = filterHyperStatPreset(hs.Preset3)
	return hs
}
