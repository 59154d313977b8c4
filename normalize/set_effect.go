package normalize

import "golang.org/x/exp/slices"

// FilterSetEffect keeps only the set bonus tiers that are active for the
// number of equipped pieces, sets without any active tier are dropped.
// The order of sets and tiers is preserved.
func FilterSetEffect(se *SetEffect) *SetEffect {
	sets := make([]SetEffectInfo, 0, len(se.SetEffect))
	for _, set := range se.SetEffect {
		set.SetOptionFull = slices.DeleteFunc(set.SetOptionFull, func(opt SetOption) bool {
			return opt.SetCount > set.TotalSetCount
		})

		if len(set.SetOptionFull) == 0 {
			continue
		}

		sets = append(sets, set)
	}

	se.SetEffect = sets
	return se
}
