package checklist

import (
	"sort"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

// SectionOrder is the fixed display order of checklist sections.
var SectionOrder = []domain.ChecklistSection{
	domain.SectionMeta,
	domain.SectionCoreQuality,
	domain.SectionModules,
	domain.SectionExtras,
	domain.SectionFinalization,
}

var sectionRank = func() map[domain.ChecklistSection]int {
	m := make(map[domain.ChecklistSection]int, len(SectionOrder))
	for i, s := range SectionOrder {
		m[s] = i
	}
	return m
}()

// SectionRank returns the position of a section in the fixed order.
// Unknown sections sort last.
func SectionRank(s domain.ChecklistSection) int {
	if r, ok := sectionRank[s]; ok {
		return r
	}
	return len(SectionOrder)
}

// SortItems orders items by (section fixed order, sort_order), keeping
// insertion order for ties. The slice is sorted in place.
func SortItems(items []domain.ChecklistItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := SectionRank(items[i].Section), SectionRank(items[j].Section)
		if ri != rj {
			return ri < rj
		}
		return items[i].SortOrder < items[j].SortOrder
	})
}
