// Package dynview provides dynamic, non-destructive views over slices and
// ordered maps. A view reduces its backing container through an ordered set
// of weighted filters and a single comparator into a key index; the
// container itself is never reordered or mutated.
//
// Views recompute synchronously when filters or the comparator change, and
// detect externally applied data changes through an index hash when Update
// is called. Subscribers are notified once per effective change. Derived
// views layer further filters and sorting on top of a parent's visible set
// and follow every parent update.
//
// Basic usage:
//
//	view, err := dynview.NewArrayView([]int{5, 3, 8, 1, 9, 2})
//	if err != nil {
//		log.Fatal(err)
//	}
//	view.Filters().Add(dynview.FilterFunc[int](func(v int) bool { return v > 2 }))
//	view.Sort().Set(dynview.CompareFunc[int](cmp.Compare[int]))
//
//	for v := range view.Values() {
//		fmt.Println(v) // 3 5 8 9
//	}
//
// Filters and comparators that implement Subscribable, such as TextFilter
// and KeySort, keep their views in sync automatically.
package dynview
