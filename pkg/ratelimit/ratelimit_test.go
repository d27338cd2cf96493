package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdmit_ExactLimit(t *testing.T) {
	l := New()

	for i := 0; i < 5; i++ {
		assert.True(t, l.Admit("k", 5, time.Minute), "request %d within limit", i+1)
	}
	assert.False(t, l.Admit("k", 5, time.Minute), "limit+1-th request must be denied")
	assert.False(t, l.Admit("k", 5, time.Minute))
}

func TestAdmit_WindowReset(t *testing.T) {
	now := time.Now()
	l := New().WithClock(func() time.Time { return now })

	assert.True(t, l.Admit("k", 1, time.Minute))
	assert.False(t, l.Admit("k", 1, time.Minute))

	now = now.Add(time.Minute)
	assert.True(t, l.Admit("k", 1, time.Minute), "admission must reset after the window elapses")
	assert.False(t, l.Admit("k", 1, time.Minute))
}

func TestAdmit_KeysIndependent(t *testing.T) {
	l := New()

	assert.True(t, l.Admit("a", 1, time.Minute))
	assert.False(t, l.Admit("a", 1, time.Minute))
	assert.True(t, l.Admit("b", 1, time.Minute), "a separate key has its own counter")
}

func TestAdmit_ConcurrentBurst(t *testing.T) {
	l := New()

	const workers = 100
	const limit = 10

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Admit("burst", limit, time.Minute) {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, admitted, "exactly limit admissions under a concurrent burst")
}
