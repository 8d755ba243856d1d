package container

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/infrastructure/memory"
)

func TestGetMemoryStoreConcurrentCallersShareOneStore(t *testing.T) {
	const callers = 32
	got := make([]*memory.Store, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := range callers {
		go func() {
			defer wg.Done()
			got[i] = GetMemoryStore()
		}()
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
	assert.NotNil(t, got[0])
}
