// Package ids issues the sortable storage keys used by the persistence
// layer.
package ids

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

var gen = &generator{
	entropy: ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0),
}

// New returns a unique key for a new row. Keys generated in the same
// process sort in creation order.
func New() string {
	gen.mu.Lock()
	defer gen.mu.Unlock()
	return ulid.MustNew(ulid.Now(), gen.entropy).String()
}
