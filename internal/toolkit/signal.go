package toolkit

// Signal delivers events of type T to connected handlers, in connection
// order.
type Signal[T any] struct {
	next     int
	handlers []signalHandler[T]
}

type signalHandler[T any] struct {
	id int
	fn func(T)
}

// Connect registers fn and returns a func that disconnects it.
func (s *Signal[T]) Connect(fn func(T)) (disconnect func()) {
	id := s.next
	s.next++
	s.handlers = append(s.handlers, signalHandler[T]{id: id, fn: fn})
	return func() {
		for i, h := range s.handlers {
			if h.id == id {
				s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler connected at the time of the call.
func (s *Signal[T]) Emit(v T) {
	handlers := s.handlers
	for _, h := range handlers {
		h.fn(v)
	}
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int { return len(s.handlers) }
