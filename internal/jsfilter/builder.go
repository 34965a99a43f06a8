package jsfilter

import (
	"strconv"

	"js-translator/internal/event"
)

// builder queues events for one document. Text units stay held, together
// with every event after them, until the scope that owns them is finalized.
type builder struct {
	prefix string
	queue  []event.Event
	part   event.Skeleton
	held   map[*event.TextUnit]struct{}
	units  int
	groups int
	parts  int
}

func newBuilder(prefix string) *builder {
	return &builder{prefix: prefix, held: make(map[*event.TextUnit]struct{})}
}

func (b *builder) nextID(counter *int, kind string) string {
	*counter++
	return b.prefix + kind + strconv.Itoa(*counter)
}

// addDocumentPart appends literal text to the pending document part.
func (b *builder) addDocumentPart(text string) {
	b.part.Append(text)
}

// addRef appends a sub-document reference to the pending document part.
func (b *builder) addRef(id string) {
	b.part.AppendRef(id)
}

func (b *builder) flushPart() {
	if len(b.part) == 0 {
		return
	}
	b.queue = append(b.queue, event.Event{
		Type:     event.DocumentPart,
		ID:       b.nextID(&b.parts, "dp"),
		Skeleton: b.part,
	})
	b.part = nil
}

func (b *builder) push(ev event.Event) {
	b.flushPart()
	b.queue = append(b.queue, ev)
}

func (b *builder) startGroup(marker, name string) {
	b.push(event.Event{
		Type:     event.StartGroup,
		ID:       b.nextID(&b.groups, "g"),
		Name:     name,
		Skeleton: event.Skeleton{{Kind: event.Literal, Text: marker}},
	})
}

func (b *builder) endGroup(marker, name string) {
	b.push(event.Event{
		Type:     event.EndGroup,
		Name:     name,
		Skeleton: event.Skeleton{{Kind: event.Literal, Text: marker}},
	})
}

func (b *builder) newUnitID() string {
	return b.nextID(&b.units, "tu")
}

// addTextUnit queues u and holds it until release.
func (b *builder) addTextUnit(u *event.TextUnit) {
	b.push(event.Event{Type: event.TextUnitEvent, ID: u.ID, Unit: u})
	b.held[u] = struct{}{}
}

func (b *builder) release(u *event.TextUnit) {
	delete(b.held, u)
}

// next pops the head of the queue if it may be handed out.
func (b *builder) next() (event.Event, bool) {
	if len(b.queue) == 0 {
		return event.Event{}, false
	}
	head := b.queue[0]
	if head.Type == event.TextUnitEvent {
		if _, ok := b.held[head.Unit]; ok {
			return event.Event{}, false
		}
	}
	b.queue[0] = event.Event{}
	b.queue = b.queue[1:]
	return head, true
}
