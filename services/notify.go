package services

import (
	"sync"

	"sweeps-wager-system/models"

	"github.com/google/uuid"
)

// ResultCallback receives a settled result for a (user, category) key.
type ResultCallback func(result *models.GameResult)

// NotifyService fans settled results out to in-process subscribers keyed by
// (user, category). Multiple subscribers per key are supported; delivery
// order across subscribers is unspecified.
type NotifyService struct {
	mu   sync.Mutex
	subs map[string]map[string]ResultCallback
}

func NewNotifyService() *NotifyService {
	return &NotifyService{subs: make(map[string]map[string]ResultCallback)}
}

func notifyKey(userID string, category models.GameCategory) string {
	return userID + ":" + string(category)
}

// Subscribe registers a callback and returns its unsubscribe func. Calling
// the func removes exactly that one registration; calling it twice is a no-op.
func (n *NotifyService) Subscribe(userID string, category models.GameCategory, cb ResultCallback) func() {
	key := notifyKey(userID, category)
	id := uuid.NewString()

	n.mu.Lock()
	if n.subs[key] == nil {
		n.subs[key] = make(map[string]ResultCallback)
	}
	n.subs[key][id] = cb
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if set, ok := n.subs[key]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(n.subs, key)
			}
		}
	}
}

// Publish delivers the result to every subscriber under the key. Callbacks
// run synchronously on the caller's goroutine.
func (n *NotifyService) Publish(userID string, category models.GameCategory, result *models.GameResult) {
	n.mu.Lock()
	set := n.subs[notifyKey(userID, category)]
	callbacks := make([]ResultCallback, 0, len(set))
	for _, cb := range set {
		callbacks = append(callbacks, cb)
	}
	n.mu.Unlock()

	for _, cb := range callbacks {
		cb(result)
	}
}

// SubscriberCount reports registrations under a key, for diagnostics.
func (n *NotifyService) SubscriberCount(userID string, category models.GameCategory) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[notifyKey(userID, category)])
}
