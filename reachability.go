package hdbscan

// mutualReachability is max(d, coreA, coreB): two points are only as close as
// the sparser of their neighborhoods allows.
func mutualReachability(d, coreA, coreB float64) float64 {
	if coreA > d {
		d = coreA
	}
	if coreB > d {
		d = coreB
	}
	return d
}
