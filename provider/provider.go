package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/viant/idprovider/internal/idgen"
)

// Origin tells where an issued identifier came from.
type Origin string

const (
	OriginReserved  Origin = "reserved"
	OriginGenerated Origin = "generated"
)

// Provider hands out integer identifiers, draining the reserved pool before
// drawing random ones.
type Provider struct {
	mu         sync.Mutex
	reserved   []int64
	issued     map[int64]struct{}
	history    []int64
	source     idgen.Source
	maxRetries int
	logger     logrus.FieldLogger

	fromReserved uint64
	generated    uint64
	collisions   uint64
}

// New creates a provider. The reserved slice is copied, so the caller may keep
// using it; nil or empty means no reserved pool.
func New(reserved []int64, options ...Option) *Provider {
	ret := &Provider{
		reserved: append(make([]int64, 0, len(reserved)), reserved...),
		issued:   make(map[int64]struct{}, len(reserved)),
		source:   idgen.Random,
		logger:   logrus.StandardLogger(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Pop returns the next identifier. Arguments are accepted and ignored so that
// Pop reads like removing an element from a list.
//
// Pop panics with ErrRetriesExhausted only when WithMaxRetries is set and every
// allowed draw collided; use Next to receive that condition as an error.
func (p *Provider) Pop(args ...interface{}) int64 {
	id, err := p.next(context.Background())
	if err != nil {
		panic(err)
	}
	return id
}

// Next returns the next identifier. The context is checked between random
// draws.
func (p *Provider) Next(ctx context.Context) (int64, error) {
	return p.next(ctx)
}

// NextWithOrigin is like Next and also reports where the identifier came from.
func (p *Provider) NextWithOrigin(ctx context.Context) (int64, Origin, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocate(ctx)
}

func (p *Provider) next(ctx context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, _, err := p.allocate(ctx)
	return id, err
}

func (p *Provider) allocate(ctx context.Context) (int64, Origin, error) {
	if last := len(p.reserved) - 1; last >= 0 {
		id := p.reserved[last]
		p.reserved = p.reserved[:last]
		p.record(id)
		p.fromReserved++
		if last == 0 {
			p.logger.WithField("issued", len(p.history)).Info("reserved id pool exhausted, switching to random ids")
		}
		return id, OriginReserved, nil
	}
	id, err := p.draw(ctx)
	if err != nil {
		return 0, "", err
	}
	p.record(id)
	p.generated++
	return id, OriginGenerated, nil
}

// draw returns a candidate that has not been issued yet.
func (p *Provider) draw(ctx context.Context) (int64, error) {
	for retries := 0; ; retries++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		candidate := p.source()
		if _, ok := p.issued[candidate]; !ok {
			return candidate, nil
		}
		p.collisions++
		p.logger.WithField("id", candidate).Debug("random id collided, drawing again")
		if p.maxRetries > 0 && retries >= p.maxRetries {
			p.logger.WithField("retries", retries).Warn("giving up on random id draw")
			return 0, fmt.Errorf("%w: %d draws collided", ErrRetriesExhausted, retries+1)
		}
	}
}

func (p *Provider) record(id int64) {
	p.issued[id] = struct{}{}
	p.history = append(p.history, id)
}

// Len returns the number of reserved identifiers not yet handed out.
func (p *Provider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.reserved)
}

// IssuedCount returns how many identifiers Pop/Next returned so far.
func (p *Provider) IssuedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.history)
}

// Issued returns a copy of the issued identifiers in issue order.
func (p *Provider) Issued() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int64(nil), p.history...)
}

// Contains reports whether id was issued by this provider.
func (p *Provider) Contains(id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.issued[id]
	return ok
}
