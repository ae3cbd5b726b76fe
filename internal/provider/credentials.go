package provider

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// CredentialResetTTL is how long an exhausted token stays unavailable before
// it auto-resets.
const CredentialResetTTL = 24 * time.Hour

// NoCredentialsError is returned by CredentialPool.Acquire when every token
// is exhausted. It carries the time until the earliest token resets.
type NoCredentialsError struct {
	Total      int
	ResetAfter time.Duration
}

func (e *NoCredentialsError) Error() string {
	if e.Total == 0 {
		return "no credentials configured"
	}
	return fmt.Sprintf("all %d tokens exhausted, next reset in %s", e.Total, e.ResetAfter.Round(time.Minute))
}

type credential struct {
	token       string
	exhausted   bool
	exhaustedAt time.Time
}

// CredentialPool rotates a set of API tokens, tracking quota exhaustion per
// token. Exhausted tokens become available again after CredentialResetTTL;
// the reset is computed lazily on Acquire. Safe for concurrent use.
type CredentialPool struct {
	mu    sync.Mutex
	creds []*credential
	next  int
	ttl   time.Duration
	now   func() time.Time // swapped out in tests
}

// NewCredentialPool builds a pool from a comma-separated token list. Blank
// entries are dropped.
func NewCredentialPool(tokens string) *CredentialPool {
	pool := &CredentialPool{ttl: CredentialResetTTL, now: time.Now}
	for _, t := range strings.Split(tokens, ",") {
		if t = strings.TrimSpace(t); t != "" {
			pool.creds = append(pool.creds, &credential{token: t})
		}
	}
	return pool
}

// Size returns the number of configured tokens.
func (p *CredentialPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.creds)
}

// Acquire returns the next available token, round-robin over non-exhausted
// tokens. Tokens whose exhaustion has aged past the TTL are reset first.
func (p *CredentialPool) Acquire() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.creds) == 0 {
		return "", &NoCredentialsError{}
	}

	now := p.now()
	for _, c := range p.creds {
		if c.exhausted && now.Sub(c.exhaustedAt) >= p.ttl {
			c.exhausted = false
			c.exhaustedAt = time.Time{}
		}
	}

	for i := 0; i < len(p.creds); i++ {
		c := p.creds[(p.next+i)%len(p.creds)]
		if !c.exhausted {
			p.next = (p.next + i + 1) % len(p.creds)
			return c.token, nil
		}
	}

	return "", &NoCredentialsError{Total: len(p.creds), ResetAfter: p.earliestResetLocked(now)}
}

// MarkExhausted records a quota-limit response for the token. Unknown tokens
// are ignored.
func (p *CredentialPool) MarkExhausted(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.creds {
		if c.token == token && !c.exhausted {
			c.exhausted = true
			c.exhaustedAt = p.now()
			return
		}
	}
}

// AvailableCount returns how many tokens are currently selectable.
func (p *CredentialPool) AvailableCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	n := 0
	for _, c := range p.creds {
		if !c.exhausted || now.Sub(c.exhaustedAt) >= p.ttl {
			n++
		}
	}
	return n
}

func (p *CredentialPool) earliestResetLocked(now time.Time) time.Duration {
	earliest := time.Duration(0)
	for _, c := range p.creds {
		remaining := p.ttl - now.Sub(c.exhaustedAt)
		if earliest == 0 || remaining < earliest {
			earliest = remaining
		}
	}
	if earliest < 0 {
		earliest = 0
	}
	return earliest
}
