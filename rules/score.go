package rules

import "sync"

// BestScore is the highest score seen by any session sharing it. It lives as
// long as whatever embeds the sessions and is never persisted.
type BestScore struct {
	mu   sync.Mutex
	best int
}

// Update records score and returns the best score so far.
func (b *BestScore) Update(score int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if score > b.best {
		b.best = score
	}
	return b.best
}

// Get returns the best score so far.
func (b *BestScore) Get() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.best
}
