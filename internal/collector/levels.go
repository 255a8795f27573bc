package collector

// LevelValueSet accumulates the distinct attribute values seen at each
// classification level during one aggregation run. Values keep their
// first-seen order.
//
// A LevelValueSet belongs to a single run. Combine runs explicitly with
// Union.
type LevelValueSet struct {
	levels []orderedSet
}

type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

// NewLevelValueSet returns n empty levels.
func NewLevelValueSet(n int) *LevelValueSet {
	if n < 0 {
		n = 0
	}
	return &LevelValueSet{levels: make([]orderedSet, n)}
}

// Len returns the number of levels.
func (s *LevelValueSet) Len() int {
	return len(s.levels)
}

// Add records values[i] at level i. Values beyond the last level are
// ignored; levels beyond len(values) are left untouched.
func (s *LevelValueSet) Add(values []string) {
	for i, v := range values {
		if i >= len(s.levels) {
			return
		}
		s.levels[i].add(v)
	}
}

// Values returns the distinct values of a level in first-seen order.
func (s *LevelValueSet) Values(level int) []string {
	if level < 0 || level >= len(s.levels) {
		return nil
	}
	return append([]string(nil), s.levels[level].values...)
}

// contains reports whether v was seen at level.
func (s *LevelValueSet) contains(level int, v string) bool {
	if level < 0 || level >= len(s.levels) {
		return false
	}
	_, ok := s.levels[level].seen[v]
	return ok
}

// Union adds every value of other to s, level by level, growing s to
// the depth of other. Values new to s are appended in other's order.
func (s *LevelValueSet) Union(other *LevelValueSet) {
	if other == nil {
		return
	}
	for len(s.levels) < len(other.levels) {
		s.levels = append(s.levels, orderedSet{})
	}
	for i := range other.levels {
		for _, v := range other.levels[i].values {
			s.levels[i].add(v)
		}
	}
}
