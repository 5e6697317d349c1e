package contentsync

import "sync"

// topic fans the latest value out to subscribers. Each subscriber channel holds at most one
// value; a pending value is replaced by a newer one, so slow readers skip intermediate states.
type topic[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[int]chan T
	nextID  int
	closed  bool
}

func newTopic[T any](initial T) *topic[T] {
	return &topic[T]{current: initial, subs: make(map[int]chan T)}
}

func (t *topic[T]) latest() T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

func (t *topic[T]) publish(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.current = v
	for _, ch := range t.subs {
		offer(ch, v)
	}
}

// subscribe delivers the current value immediately. cancel is safe to call more than once.
func (t *topic[T]) subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		close(ch)
		return ch, func() {}
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = ch
	ch <- t.current

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if c, ok := t.subs[id]; ok {
				delete(t.subs, id)
				close(c)
			}
		})
	}
}

func (t *topic[T]) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	for id, ch := range t.subs {
		delete(t.subs, id)
		close(ch)
	}
}

func (t *topic[T]) subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
