// Package runid issues ULID identifiers for generation runs.
//
// Run ids label logs and run summaries only. They are deliberately
// non-deterministic and must never leak into generated rows, which have to
// stay byte-identical across runs with the same seed.
package runid

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Source issues time-sortable run ids. Each command builds its own Source,
// so id entropy is scoped to the invocation rather than the process.
type Source struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewSource returns a Source seeded from crypto/rand. Monotonic entropy
// keeps ids issued within the same millisecond sortable.
func NewSource() *Source {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)}
}

// New returns a ULID string for one generation run.
func (s *Source) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), s.entropy)
	if err != nil {
		panic(err)
	}
	return id.String()
}
