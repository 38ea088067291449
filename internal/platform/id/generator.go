package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// Generator creates identifiers for scrape runs.
type Generator interface {
	NewID() (string, error)
}

// RunIDGenerator issues ids that sort by start time: base-36 unix seconds, a dash,
// then eight random hex digits.
type RunIDGenerator struct {
	now func() time.Time
}

func NewRunIDGenerator() *RunIDGenerator {
	return &RunIDGenerator{now: time.Now}
}

func (g *RunIDGenerator) NewID() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}

	return strconv.FormatInt(g.now().Unix(), 36) + "-" + hex.EncodeToString(buf), nil
}
