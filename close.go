package nearest

// Close releases the index and the buffer. The store stays usable and
// behaves like a new store with the same configuration.
func (s *Store[T]) Close() error {
	if s == nil {
		return nil
	}
	s.release()
	s.data = nil
	return nil
}
