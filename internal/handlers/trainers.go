package handlers

import (
	"sort"

	"crownwellness.az/crown-web/internal/catalog"
)

// TrainersView lists the coaching staff with a few aggregate figures.
type TrainersView struct {
	Trainers        []catalog.Trainer
	Languages       []string
	Specializations int
}

// BuildTrainers aggregates the distinct languages and specializations.
func BuildTrainers(c *catalog.Catalog) TrainersView {
	langs := map[string]struct{}{}
	specs := map[string]struct{}{}
	for _, t := range c.Trainers {
		for _, l := range t.Languages {
			langs[l] = struct{}{}
		}
		for _, s := range t.Specializations {
			specs[s] = struct{}{}
		}
	}
	tv := TrainersView{
		Trainers:        c.Trainers,
		Specializations: len(specs),
	}
	for l := range langs {
		tv.Languages = append(tv.Languages, l)
	}
	sort.Strings(tv.Languages)
	return tv
}
