package strata

import (
	"fmt"

	"github.com/strata2d/strata/body"
	"github.com/strata2d/strata/sat"
)

// DefaultPairMaxIdleLife is how long (ms) a pair may go without being
// updated before it is evicted, unless one of its bodies is sleeping
// (spec §3, §4.5).
const DefaultPairMaxIdleLife = 1000.0

// Contact is a single persisted contact point: a stable identity plus
// the warm-started impulses accumulated against it across steps.
type Contact struct {
	ID             body.ContactID
	Vertex         body.Vertex
	NormalImpulse  float64
	TangentImpulse float64
}

// Pair is the persistent record of a potential or actual contact between
// two bodies (spec §3). It survives across steps so the velocity/position
// solvers can warm-start from the previous step's impulses.
type Pair struct {
	BodyA, BodyB *body.Body
	Collision    *sat.Collision

	Contacts       map[body.ContactID]*Contact
	ActiveContacts []*Contact

	Separation     float64
	Slop           float64
	Friction       float64
	FrictionStatic float64
	Restitution    float64
	InverseMass    float64

	IsActive        bool
	ConfirmedActive bool
	IsSensor        bool

	TimeCreated float64
	TimeUpdated float64
}

func pairID(a, b uint64) string {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("A%dB%d", lo, hi)
}

// PairID returns p's canonical, order-independent pair id.
func (p *Pair) PairID() string { return pairID(p.BodyA.ID, p.BodyB.ID) }

// Cache is the pair table plus insertion-ordered list (spec §3's "Pair
// cache"), and the per-step diagnostic start/active/end sets the events
// collaborator consumes.
type Cache struct {
	table map[string]*Pair
	list  []*Pair

	MaxIdleLife float64

	CollisionStart  []*Pair
	CollisionActive []*Pair
	CollisionEnd    []*Pair
}

// NewCache constructs an empty pair cache.
func NewCache() *Cache {
	return &Cache{
		table:       make(map[string]*Pair),
		MaxIdleLife: DefaultPairMaxIdleLife,
	}
}

// Update runs one step of the pair cache algorithm (spec §4.5) given this
// step's narrowphase results (only colliding ones should be passed) and
// the current timestamp in milliseconds.
func (c *Cache) Update(results []narrowphaseResult, now float64) {
	c.CollisionStart = c.CollisionStart[:0]
	c.CollisionActive = c.CollisionActive[:0]
	c.CollisionEnd = c.CollisionEnd[:0]

	for _, p := range c.list {
		p.ConfirmedActive = false
	}

	for _, r := range results {
		id := pairID(r.BodyA.ID, r.BodyB.ID)
		p, exists := c.table[id]
		if !exists {
			p = &Pair{
				BodyA:       r.BodyA,
				BodyB:       r.BodyB,
				Contacts:    make(map[body.ContactID]*Contact),
				Slop:        minOf(r.BodyA.Slop, r.BodyB.Slop),
				IsSensor:    r.BodyA.IsSensor || r.BodyB.IsSensor,
				TimeCreated: now,
			}
			c.table[id] = p
			c.list = append(c.list, p)
			c.CollisionStart = append(c.CollisionStart, p)
		} else if p.IsActive {
			c.CollisionActive = append(c.CollisionActive, p)
		} else {
			c.CollisionStart = append(c.CollisionStart, p)
		}

		p.Collision = r.Collision
		p.Friction = body.CombineFriction(r.BodyA.Friction, r.BodyB.Friction)
		p.FrictionStatic = body.CombineFrictionStatic(r.BodyA.FrictionStatic, r.BodyB.FrictionStatic)
		p.Restitution = body.CombineRestitution(r.BodyA.Restitution, r.BodyB.Restitution)
		p.InverseMass = r.BodyA.InverseMass + r.BodyB.InverseMass
		p.Separation = r.Collision.Depth

		active := make([]*Contact, 0, len(r.Collision.Supports))
		for _, v := range r.Collision.Supports {
			id := v.ID()
			contact, ok := p.Contacts[id]
			if !ok {
				contact = &Contact{ID: id}
				p.Contacts[id] = contact
			}
			contact.Vertex = v
			active = append(active, contact)
		}
		p.ActiveContacts = active

		p.IsActive = true
		p.ConfirmedActive = true
		p.TimeUpdated = now
	}

	for _, p := range c.list {
		if p.IsActive && !p.ConfirmedActive {
			p.IsActive = false
			p.ActiveContacts = nil
			c.CollisionEnd = append(c.CollisionEnd, p)
		}
	}
}

// RemoveOld evicts pairs idle for longer than MaxIdleLife, refreshing
// (rather than evicting) any pair with a sleeping endpoint (spec §4.5).
func (c *Cache) RemoveOld(now float64) {
	kept := c.list[:0]
	for _, p := range c.list {
		if p.BodyA.IsSleeping || p.BodyB.IsSleeping {
			p.TimeUpdated = now
		} else if now-p.TimeUpdated > c.MaxIdleLife {
			delete(c.table, p.PairID())
			continue
		}
		kept = append(kept, p)
	}
	c.list = kept
}

// All returns every pair currently in the cache, in stable insertion
// order.
func (c *Cache) All() []*Pair { return c.list }

// Forget drops every pair touching bodyID, for a body removed from the
// world mid-simulation.
func (c *Cache) Forget(bodyID uint64) {
	kept := c.list[:0]
	for _, p := range c.list {
		if p.BodyA.ID == bodyID || p.BodyB.ID == bodyID {
			delete(c.table, p.PairID())
			continue
		}
		kept = append(kept, p)
	}
	c.list = kept
}

func minOf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
