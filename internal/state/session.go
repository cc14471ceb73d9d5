package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Session identifies one running canvas. Seq numbers strokes and
// predictions so feed viewers can order them.
type Session struct {
	id  string
	seq atomic.Uint64
}

func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) NextSeq() uint64 {
	return s.seq.Add(1)
}
