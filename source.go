package hdbscan

// Source is an index-addressed pairwise distance capability over a fixed set
// of Len() points. Distance must be symmetric and non-negative; it is never
// called with i == j.
type Source interface {
	Len() int
	Distance(i, j int) float64
}

// commonDistancer is implemented by the built-in sources that can report
// whether their metric is SparseCapable.
type commonDistancer interface {
	commonDistance() (float64, bool)
}

// FromVectors returns a Source computing metric over dense rows. All rows
// must have the same length.
func FromVectors(data [][]float64, metric DistanceMetric) Source {
	return &vectorSource{data: data, metric: metric}
}

type vectorSource struct {
	data   [][]float64
	metric DistanceMetric
}

func (s *vectorSource) Len() int { return len(s.data) }

func (s *vectorSource) Distance(i, j int) float64 {
	return s.metric.Distance(s.data[i], s.data[j])
}

func (s *vectorSource) commonDistance() (float64, bool) {
	if c, ok := s.metric.(SparseCapable); ok {
		return c.MostCommonDistance(), true
	}
	return 0, false
}

// FromSparseVectors returns a Source computing metric over sparse rows.
func FromSparseVectors(data []SparseVector, metric SparseMetric) Source {
	return &sparseVectorSource{data: data, metric: metric}
}

type sparseVectorSource struct {
	data   []SparseVector
	metric SparseMetric
}

func (s *sparseVectorSource) Len() int { return len(s.data) }

func (s *sparseVectorSource) Distance(i, j int) float64 {
	return s.metric.Distance(s.data[i], s.data[j])
}

func (s *sparseVectorSource) commonDistance() (float64, bool) {
	if c, ok := s.metric.(SparseCapable); ok {
		return c.MostCommonDistance(), true
	}
	return 0, false
}

// FromMatrix returns a Source reading a precomputed square distance matrix.
// The matrix is used as-is and is not copied.
func FromMatrix(distances [][]float64) Source {
	return matrixSource(distances)
}

type matrixSource [][]float64

func (m matrixSource) Len() int                  { return len(m) }
func (m matrixSource) Distance(i, j int) float64 { return m[i][j] }

// FromFunc returns a Source over n points backed by an arbitrary function.
func FromFunc(n int, distance func(i, j int) float64) Source {
	return funcSource{n: n, fn: distance}
}

type funcSource struct {
	n  int
	fn func(i, j int) float64
}

func (s funcSource) Len() int                  { return s.n }
func (s funcSource) Distance(i, j int) float64 { return s.fn(i, j) }

// mostCommonDistance reports the most common distance of src, if src (or its
// metric) declares one.
func mostCommonDistance(src Source) (float64, bool) {
	if c, ok := src.(SparseCapable); ok {
		return c.MostCommonDistance(), true
	}
	if c, ok := src.(commonDistancer); ok {
		return c.commonDistance()
	}
	return 0, false
}
