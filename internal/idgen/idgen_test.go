package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStepID_Format(t *testing.T) {
	id := NewStepID("agent")
	assert.True(t, strings.HasPrefix(id, "agent_"))
	assert.Greater(t, len(id), len("agent_")+8)
}

func TestNewStepID_UniqueUnderBulkCreation(t *testing.T) {
	const n = 1000
	var mu sync.Mutex
	seen := make(map[string]bool, n)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < n/8; j++ {
				id := NewStepID("tool")
				mu.Lock()
				assert.False(t, seen[id], "duplicate id %s", id)
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
