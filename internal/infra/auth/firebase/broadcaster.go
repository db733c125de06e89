package firebase

import (
	"sync"

	"ecell/internal/domain/entity"

	"github.com/google/uuid"
)

// broadcaster fans the auth-state out to subscribers. Each subscriber owns a
// buffered channel that always holds the latest state; a slow consumer never
// blocks an emit, it just skips intermediate states.
type broadcaster struct {
	mu      sync.Mutex
	current *entity.User
	subs    map[uuid.UUID]chan *entity.User
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		subs: make(map[uuid.UUID]chan *entity.User),
	}
}

// get returns the current auth state.
func (b *broadcaster) get() *entity.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.current
}

// set replaces the current auth state and emits it to every subscriber.
func (b *broadcaster) set(user *entity.User) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = user
	for _, ch := range b.subs {
		send(ch, user)
	}
}

// watch registers a subscriber seeded with the current state. The cancel func
// unregisters and closes the channel; calling it twice is safe.
func (b *broadcaster) watch() (<-chan *entity.User, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New()
	ch := make(chan *entity.User, 1)
	ch <- b.current
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			delete(b.subs, id)
			close(ch)
		})
	}

	return ch, cancel
}

// send delivers the latest state, displacing an unconsumed older one.
func send(ch chan *entity.User, user *entity.User) {
	for {
		select {
		case ch <- user:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
