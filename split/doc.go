// Package split produces reproducible, class-proportional partitions.
//
// Stratified groups the members of a dataset.Group by class, shuffles each
// class with a seeded source and cuts it at the cumulative proportions. Per
// class counts use largest-remainder rounding: every group receives
// floor(n_c * p_g) examples of class c and the leftover examples go to the
// groups with the largest fractional parts (ties to the lower group index).
// Each group's per-class count therefore differs from the ideal proportional
// count by less than one example.
//
//	p, err := split.Dataset(ds, []float64{0.75, 0.25}, 42)
//	train, _ := p.ByName("train")
//	test, _ := p.ByName("test")
package split
