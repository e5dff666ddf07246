// Package idgen hands out integer identifiers per namespace.
package idgen

import (
	"context"
	"sync"
)

type Namespace string

const (
	NamespaceParking     Namespace = "parking"
	NamespaceEV          Namespace = "ev"
	NamespaceReservation Namespace = "reservation"
)

// Generator returns strictly increasing ids within a namespace. Namespaces are
// independent: the same value can be issued once in each.
type Generator interface {
	Next(ctx context.Context, ns Namespace) (int64, error)
}

// Sequence is the in-process Generator. Every namespace starts at 1.
type Sequence struct {
	mu   sync.Mutex
	last map[Namespace]int64
}

func NewSequence() *Sequence {
	return &Sequence{last: make(map[Namespace]int64)}
}

func (s *Sequence) Next(_ context.Context, ns Namespace) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[ns]++
	return s.last[ns], nil
}

// Observe raises the namespace counter to at least id, so ids loaded from
// elsewhere are never reissued.
func (s *Sequence) Observe(ns Namespace, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last[ns] {
		s.last[ns] = id
	}
}
