package validate

// Group is every issue of one category.
type Group struct {
	Category Category `json:"category"`
	Issues   []Issue  `json:"issues"`
}

// GroupByCategory partitions issues by category. Groups appear in the
// order their category first occurs and issues keep their input order.
// Nothing is sorted or de-duplicated.
func GroupByCategory(issues []Issue) []Group {
	idx := make(map[Category]int)
	var groups []Group
	for _, is := range issues {
		i, ok := idx[is.Category]
		if !ok {
			i = len(groups)
			idx[is.Category] = i
			groups = append(groups, Group{Category: is.Category})
		}
		groups[i].Issues = append(groups[i].Issues, is)
	}
	return groups
}

// IsOrphan reports whether c flags a row that points at a product id
// which does not exist. Links built from such issues would be dead.
func IsOrphan(c Category) bool {
	switch c {
	case CategoryOrphanPriceObservation,
		CategoryOrphanPriceBaseline,
		CategoryOrphanLinuxCompat,
		CategoryOrphanEditorial,
		CategoryOrphanChassisBenchmark,
		CategoryOrphanDeal:
		return true
	default:
		return false
	}
}
