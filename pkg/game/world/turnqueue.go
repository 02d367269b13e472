package world

import (
	"fmt"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"overworld/pkg/game/actor"
)

// TurnQueue is a binary min-heap of actors keyed by (NextTurn, Seq).
// It also tracks membership so the occupancy/queue invariant can be checked.
type TurnQueue struct {
	h       *heap.Heap[*actor.Actor]
	members mapset.Set[*actor.Actor]
}

// NewTurnQueue creates an empty queue
func NewTurnQueue() *TurnQueue {
	return &TurnQueue{
		h:       heap.New[*actor.Actor](actor.Less),
		members: mapset.New[*actor.Actor](),
	}
}

// Push queues a. Queuing an actor twice is an internal-consistency failure.
func (q *TurnQueue) Push(a *actor.Actor) {
	if q.members.Has(a) {
		panic(fmt.Errorf("%w: %v queued twice", ErrInconsistent, a))
	}
	q.members.Put(a)
	q.h.Push(a)
}

// Pop removes and returns the actor whose turn is due first
func (q *TurnQueue) Pop() (*actor.Actor, bool) {
	a, ok := q.h.Pop()
	if ok {
		q.members.Remove(a)
	}
	return a, ok
}

// Peek returns the actor whose turn is due first without removing it
func (q *TurnQueue) Peek() (*actor.Actor, bool) {
	return q.h.Peek()
}

// Len returns the number of queued actors
func (q *TurnQueue) Len() int {
	return q.h.Size()
}

// Has reports whether a is queued
func (q *TurnQueue) Has(a *actor.Actor) bool {
	return q.members.Has(a)
}

// Each calls fn for every queued actor, in no particular order
func (q *TurnQueue) Each(fn func(a *actor.Actor)) {
	q.members.Each(fn)
}

// Remove drops a from the queue. Returns false if it was not queued.
func (q *TurnQueue) Remove(a *actor.Actor) bool {
	if !q.members.Has(a) {
		return false
	}
	q.members.Remove(a)
	q.rebuild()
	return true
}

// CatchUp raises every queued action time below now to now. Actors frozen on
// an inactive map rejoin at the present; ties then fall back to creation order.
func (q *TurnQueue) CatchUp(now int) {
	q.members.Each(func(a *actor.Actor) {
		if a.NextTurn < now {
			a.NextTurn = now
		}
	})
	q.rebuild()
}

func (q *TurnQueue) rebuild() {
	h := heap.New[*actor.Actor](actor.Less)
	q.members.Each(func(a *actor.Actor) {
		h.Push(a)
	})
	q.h = h
}
