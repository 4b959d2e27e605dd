package authenticating

import (
	"sync"
	"time"
)

// revocationList guarda os tokens encerrados por logout até expirarem.
// Vive só na memória do processo; um restart devolve a validade aos tokens.
type revocationList struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func newRevocationList() *revocationList {
	return &revocationList{tokens: make(map[string]time.Time)}
}

func (r *revocationList) Add(token string, expiresAt, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for t, exp := range r.tokens {
		if !exp.After(now) {
			delete(r.tokens, t)
		}
	}

	if expiresAt.After(now) {
		r.tokens[token] = expiresAt
	}
}

func (r *revocationList) Contains(token string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.tokens[token]
	return ok && exp.After(now)
}

func (r *revocationList) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
