package mines

type EventKind int

const (
	EventReset EventKind = iota
	EventReveal
	EventFlag
)

func (k EventKind) String() string {
	switch k {
	case EventReset:
		return "reset"
	case EventReveal:
		return "reveal"
	case EventFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Event describes an action that changed the game.
type Event struct {
	Kind  EventKind
	Point Point
	Phase Phase
}

type Observer func(Event)

type subscription struct {
	id int
	fn Observer
}

type observers struct {
	subs   []subscription
	nextID int
}

func (o *observers) add(fn Observer) int {
	o.nextID++
	o.subs = append(o.subs, subscription{o.nextID, fn})
	return o.nextID
}

func (o *observers) remove(id int) {
	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

func (o *observers) notify(e Event) {
	for _, s := range append([]subscription(nil), o.subs...) {
		s.fn(e)
	}
}

// Subscribe registers fn to be called after every action that mutates the
// game, in subscription order. Actions that turn out to be no-ops are not
// reported. The returned func removes the subscription.
func (g *Game) Subscribe(fn Observer) (unsubscribe func()) {
	id := g.observers.add(fn)
	return func() { g.observers.remove(id) }
}
