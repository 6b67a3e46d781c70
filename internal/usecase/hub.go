package usecase

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const subscriberBuffer = 4

type subscriber struct {
	ch        chan entity.Round
	closeOnce sync.Once
}

func (that *subscriber) close() {
	that.closeOnce.Do(func() { close(that.ch) })
}

// hub fans round snapshots out to the subscribers of a player. Subscribers
// that cannot keep up are closed and dropped.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func newHub() *hub {
	return &hub{
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

func (that *hub) subscribe(ctx context.Context, playerID string) (<-chan entity.Round, func()) {
	sub := &subscriber{ch: make(chan entity.Round, subscriberBuffer)}

	that.mu.Lock()
	set := that.subs[playerID]
	if set == nil {
		set = make(map[*subscriber]struct{})
		that.subs[playerID] = set
	}
	set[sub] = struct{}{}
	that.mu.Unlock()

	done := make(chan struct{})

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(done)
			that.remove(playerID, sub)
			sub.close()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-done:
		}
	}()

	return sub.ch, unsubscribe
}

func (that *hub) publish(playerID string, round entity.Round) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs[playerID] {
		select {
		case sub.ch <- round:
		default:
			delete(that.subs[playerID], sub)
			sub.close()
		}
	}
}

func (that *hub) remove(playerID string, sub *subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	set, ok := that.subs[playerID]
	if !ok {
		return
	}

	delete(set, sub)
	if len(set) == 0 {
		delete(that.subs, playerID)
	}
}
