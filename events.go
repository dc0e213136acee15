package strata

import "github.com/strata2d/strata/body"

// EventType identifies one of the diagnostic event families strata emits
// (spec §6's bare collisionStart/Active/End arrays, extended with a
// trigger/collision split and sleep/wake transitions).
type EventType uint8

const (
	CollisionStart EventType = iota
	CollisionActive
	CollisionEnd
	TriggerStart
	TriggerActive
	TriggerEnd
	SleepEvent
	WakeEvent
)

// Event is the payload delivered to a subscribed EventListener.
type Event struct {
	Kind EventType
	Pair *Pair // set for collision/trigger events
	Body *body.Body
}

// EventListener receives events of the kind it was subscribed to.
type EventListener func(Event)

// Events is an optional diagnostic collaborator: it translates the pair
// cache's per-step collisionStart/Active/End sets (and each body's
// sleeping transitions) into callbacks, so a caller doesn't have to
// diff the pair cache itself every step.
type Events struct {
	listeners map[EventType][]EventListener
	sleepSeen map[*body.Body]bool
}

// NewEvents constructs an empty event dispatcher.
func NewEvents() *Events {
	return &Events{
		listeners: make(map[EventType][]EventListener),
		sleepSeen: make(map[*body.Body]bool),
	}
}

// Subscribe registers listener for kind.
func (e *Events) Subscribe(kind EventType, listener EventListener) {
	e.listeners[kind] = append(e.listeners[kind], listener)
}

func (e *Events) emit(kind EventType, ev Event) {
	for _, l := range e.listeners[kind] {
		l(ev)
	}
}

// DispatchCollisions emits Collision*/Trigger* events from one step's
// pair cache sets, per the isSensor/trigger split (SPEC_FULL.md §4).
func (e *Events) DispatchCollisions(cache *Cache) {
	for _, p := range cache.CollisionStart {
		e.emit(startKind(p), Event{Kind: startKind(p), Pair: p})
	}
	for _, p := range cache.CollisionActive {
		e.emit(activeKind(p), Event{Kind: activeKind(p), Pair: p})
	}
	for _, p := range cache.CollisionEnd {
		e.emit(endKind(p), Event{Kind: endKind(p), Pair: p})
	}
}

func startKind(p *Pair) EventType {
	if p.IsSensor {
		return TriggerStart
	}
	return CollisionStart
}

func activeKind(p *Pair) EventType {
	if p.IsSensor {
		return TriggerActive
	}
	return CollisionActive
}

func endKind(p *Pair) EventType {
	if p.IsSensor {
		return TriggerEnd
	}
	return CollisionEnd
}

// DispatchSleep emits Sleep/Wake events for every body whose IsSleeping
// state changed since the last call.
func (e *Events) DispatchSleep(bodies []*body.Body) {
	for _, b := range bodies {
		was, tracked := e.sleepSeen[b]
		if !tracked {
			e.sleepSeen[b] = b.IsSleeping
			continue
		}
		if !was && b.IsSleeping {
			e.emit(SleepEvent, Event{Kind: SleepEvent, Body: b})
			e.sleepSeen[b] = true
		} else if was && !b.IsSleeping {
			e.emit(WakeEvent, Event{Kind: WakeEvent, Body: b})
			e.sleepSeen[b] = false
		}
	}
}

// Forget drops tracked sleep state for a body removed from the world.
func (e *Events) Forget(b *body.Body) {
	delete(e.sleepSeen, b)
}
