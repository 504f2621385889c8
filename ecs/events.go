package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpcontroller/controller"
)

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventTypeController = "controller"

// ControllerEvent is pushed when a controller changes ground state.
type ControllerEvent struct {
	Entity     Entity
	Transition controller.Transition
	Position   mgl64.Vec3
	Velocity   mgl64.Vec3
}

// EventQueue is a simple FIFO queue cleared at the end of every frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns pending events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
