package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque local identifiers for records the server has not
// assigned an id to yet (outbound chat messages).
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
