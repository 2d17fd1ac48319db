package provider

import (
	"time"

	"github.com/viant/idprovider/internal/clock"
)

// Snapshot is a point-in-time copy of a provider's state.
type Snapshot struct {
	Reserved     []int64   `json:"reserved" yaml:"reserved"`
	Issued       []int64   `json:"issued" yaml:"issued"`
	FromReserved uint64    `json:"fromReserved" yaml:"fromReserved"`
	Generated    uint64    `json:"generated" yaml:"generated"`
	Collisions   uint64    `json:"collisions" yaml:"collisions"`
	TakenAt      time.Time `json:"takenAt" yaml:"takenAt"`
}

// Snapshot copies the current state. Reserved keeps stored order, so the next
// reserved identifier to be issued is the last element.
func (p *Provider) Snapshot() *Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &Snapshot{
		Reserved:     append([]int64{}, p.reserved...),
		Issued:       append([]int64{}, p.history...),
		FromReserved: p.fromReserved,
		Generated:    p.generated,
		Collisions:   p.collisions,
		TakenAt:      clock.Now(),
	}
}

// Stats holds the allocation counters of a provider.
type Stats struct {
	Remaining    int
	Issued       int
	FromReserved uint64
	Generated    uint64
	Collisions   uint64
}

// Stats returns the counters without copying the reserved pool or history.
func (p *Provider) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Remaining:    len(p.reserved),
		Issued:       len(p.history),
		FromReserved: p.fromReserved,
		Generated:    p.generated,
		Collisions:   p.collisions,
	}
}
