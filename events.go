package glide

import "github.com/akmonengine/glide/geometry"

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
)

// pairKey identifies a character touching one triangle
type pairKey struct {
	character *Character
	id        int
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ContactEnterEvent is sent the first step a character touches triangle ID
type ContactEnterEvent struct {
	Character *Character
	ID        int
	Plane     geometry.Plane
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

// ContactStayEvent is sent every following step the contact persists
type ContactStayEvent struct {
	Character *Character
	ID        int
	Plane     geometry.Plane
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

// ContactExitEvent is sent the first step the character no longer touches triangle ID
type ContactExitEvent struct {
	Character *Character
	ID        int
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection, with the last plane seen
	previousActivePairs map[pairKey]geometry.Plane
	currentActivePairs  map[pairKey]geometry.Plane
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]geometry.Plane),
		currentActivePairs:  make(map[pairKey]geometry.Plane),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts marks every triangle the character touched during this step.
// The last plane recorded for a triangle wins.
func (e *Events) recordContacts(c *Character) {
	if e.currentActivePairs == nil {
		*e = NewEvents()
	}
	for _, contact := range c.Contacts {
		e.currentActivePairs[pairKey{character: c, id: contact.ID}] = contact.Plane
	}
}

// processContactEvents compares current and previous pairs to detect Enter/Stay/Exit
// Should be called once per step
func (e *Events) processContactEvents() {
	for pair, plane := range e.currentActivePairs {
		if _, ok := e.previousActivePairs[pair]; ok {
			e.buffer = append(e.buffer, ContactStayEvent{Character: pair.character, ID: pair.id, Plane: plane})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{Character: pair.character, ID: pair.id, Plane: plane})
		}
	}

	for pair := range e.previousActivePairs {
		if _, ok := e.currentActivePairs[pair]; !ok {
			e.buffer = append(e.buffer, ContactExitEvent{Character: pair.character, ID: pair.id})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
