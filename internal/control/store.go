package control

// Store keeps the last two observed values of every control. current holds
// the value from the most recent Update; previous holds the value committed
// after the prior event's dispatch finished.
//
// Store is owned by the main loop and is not safe for concurrent use.
type Store struct {
	current  map[ID]Value
	previous map[ID]Value
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		current:  make(map[ID]Value),
		previous: make(map[ID]Value),
	}
}

// Update records v as the current value of id.
func (s *Store) Update(id ID, v Value) {
	s.current[id] = v
}

// Commit records v as the previous value of id. Call it only after all
// dispatch evaluation for id on this event has completed.
func (s *Store) Commit(id ID, v Value) {
	s.previous[id] = v
}

// Current returns the latest value of id, if it has been observed.
func (s *Store) Current(id ID) (Value, bool) {
	v, ok := s.current[id]
	return v, ok
}

// Previous returns the committed value of id, if any.
func (s *Store) Previous(id ID) (Value, bool) {
	v, ok := s.previous[id]
	return v, ok
}

// Level returns the current analog level of id, or 0 if never observed.
func (s *Store) Level(id ID) float64 {
	return s.current[id].X
}

// Snapshot copies all current values.
func (s *Store) Snapshot() map[ID]Value {
	out := make(map[ID]Value, len(s.current))
	for id, v := range s.current {
		out[id] = v
	}
	return out
}
