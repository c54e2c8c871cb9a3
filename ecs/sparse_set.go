package ecs

type slot struct {
	id    int
	value any
}

// SparseSet stores one component kind keyed by entity slot id. Values are
// packed densely so queries iterate without holes; index maps a slot id to
// its dense position plus one, so zero means absent.
type SparseSet struct {
	dense []slot
	index []int
	ids   []int
}

func (s *SparseSet) pos(id int) (int, bool) {
	if s == nil || id <= 0 || id > len(s.index) {
		return 0, false
	}
	p := s.index[id-1]
	return p - 1, p > 0
}

func (s *SparseSet) Has(id int) bool {
	_, ok := s.pos(id)
	return ok
}

// Get returns the component for id, or nil.
func (s *SparseSet) Get(id int) any {
	p, ok := s.pos(id)
	if !ok {
		return nil
	}
	return s.dense[p].value
}

// Set inserts or replaces the component for id.
func (s *SparseSet) Set(id int, v any) {
	if s == nil || id <= 0 {
		return
	}
	if p, ok := s.pos(id); ok {
		s.dense[p].value = v
		return
	}
	if id > len(s.index) {
		s.index = append(s.index, make([]int, id-len(s.index))...)
	}
	s.dense = append(s.dense, slot{id: id, value: v})
	s.ids = append(s.ids, id)
	s.index[id-1] = len(s.dense)
}

// Remove deletes the component for id. The last element fills the gap.
func (s *SparseSet) Remove(id int) bool {
	p, ok := s.pos(id)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[p] = moved
	s.ids[p] = moved.id
	s.index[moved.id-1] = p + 1

	s.dense = s.dense[:last]
	s.ids = s.ids[:last]
	s.index[id-1] = 0
	return true
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns the stored slot ids in dense order. Callers must not
// modify the slice.
func (s *SparseSet) Entities() []int {
	if s == nil {
		return nil
	}
	return s.ids
}
