package cst

import "fmt"

// NoKind is returned by TokenType when the cursor has reached the end of the
// raw slot buffer.
const NoKind = -1

// RawSlot is one entry of the host's raw token buffer: a classification tag
// and the byte offset where the slot's text begins. A slot's text runs up to
// the start of the following slot (or the end of the input for the last one).
type RawSlot struct {
	Kind  int
	Start int
}

type KindSet struct {
	names  []string
	trivia []bool
}

// NewKindSet builds a classification table. `names` is indexed by kind ID,
// `trivia` lists the kind IDs that are insignificant to grammar structure.
func NewKindSet(names []string, trivia []int) *KindSet {
	tr := make([]bool, len(names))
	for _, kind := range trivia {
		if kind >= 0 && kind < len(tr) {
			tr[kind] = true
		}
	}
	return &KindSet{
		names:  names,
		trivia: tr,
	}
}

func (s *KindSet) Name(kind int) string {
	if kind < 0 || kind >= len(s.names) {
		return ""
	}
	return s.names[kind]
}

func (s *KindSet) Trivia(kind int) bool {
	if kind < 0 || kind >= len(s.trivia) {
		return false
	}
	return s.trivia[kind]
}

type opCode int

const (
	opMark opCode = iota
	opDone
	opError
	opDrop
	opAdvance
)

type op struct {
	code   opCode
	marker int
	kind   string
	msg    string
	// For opMark this is the raw cursor position at mark time; for opAdvance
	// it is the index of the consumed slot.
	slot int
}

// Builder accumulates tree-building operations over a fixed raw token buffer.
// Operations only append to an internal log; nothing is materialized until
// TreeBuilt runs. A Builder is confined to a single goroutine.
type Builder struct {
	text  string
	slots []RawSlot
	kinds *KindSet
	pos   int
	ops   []op
	seq   int
}

func NewBuilder(text string, slots []RawSlot, kinds *KindSet) *Builder {
	return &Builder{
		text:  text,
		slots: slots,
		kinds: kinds,
	}
}

func (b *Builder) OriginalText() string {
	return b.text
}

func (b *Builder) skipTrivia() {
	for b.pos < len(b.slots) && b.kinds.Trivia(b.slots[b.pos].Kind) {
		b.pos++
	}
}

// TokenType skips any trivia slots at the cursor and returns the
// classification of the current significant slot, or NoKind at end of input.
func (b *Builder) TokenType() int {
	b.skipTrivia()
	if b.pos >= len(b.slots) {
		return NoKind
	}
	return b.slots[b.pos].Kind
}

func (b *Builder) Eof() bool {
	return b.TokenType() == NoKind
}

// RawTokenIndex returns the current raw cursor position. Note that TokenType
// moves the cursor past trivia, so the reported index depends on whether a
// trivia skip has already happened.
func (b *Builder) RawTokenIndex() int {
	return b.pos
}

// RawLookup peeks at the slot `steps` away from the cursor without moving it.
// Negative steps are allowed. The second result is false outside the buffer.
func (b *Builder) RawLookup(steps int) (int, bool) {
	i := b.pos + steps
	if i < 0 || i >= len(b.slots) {
		return NoKind, false
	}
	return b.slots[i].Kind, true
}

// RawTokenTypeStart returns the start offset of the slot `steps` away from
// the cursor. Past the end of the buffer it returns the input length, so the
// span of slot i can always be computed as the gap to slot i+1.
func (b *Builder) RawTokenTypeStart(steps int) int {
	i := b.pos + steps
	if i < 0 {
		return 0
	}
	if i >= len(b.slots) {
		return len(b.text)
	}
	return b.slots[i].Start
}

// AdvanceLexer consumes the current significant slot, first skipping trivia.
// At end of input it is a no-op.
func (b *Builder) AdvanceLexer() {
	b.skipTrivia()
	if b.pos >= len(b.slots) {
		return
	}
	b.ops = append(b.ops, op{code: opAdvance, slot: b.pos})
	b.pos++
}

// Marker is an open region of the output tree. Exactly one of Done, Error,
// Drop, or Rollback must be called, and markers must close in LIFO order.
// Violations are programming errors and panic.
type Marker struct {
	b      *Builder
	id     int
	opIdx  int
	rawPos int
	closed bool
}

// Mark opens a region at the current significant slot. Pending trivia is
// skipped first so it binds to the enclosing region, not to this one.
func (b *Builder) Mark() *Marker {
	b.skipTrivia()
	b.seq++
	m := &Marker{
		b:      b,
		id:     b.seq,
		opIdx:  len(b.ops),
		rawPos: b.pos,
	}
	b.ops = append(b.ops, op{code: opMark, marker: m.id, slot: b.pos})
	return m
}

func (m *Marker) check() {
	if m.closed {
		panic(fmt.Sprintf("marker %v used after close", m.id))
	}
	if m.opIdx >= len(m.b.ops) || m.b.ops[m.opIdx].code != opMark || m.b.ops[m.opIdx].marker != m.id {
		panic(fmt.Sprintf("marker %v was invalidated by a rollback", m.id))
	}
}

// Done closes the region and tags it with an element kind.
func (m *Marker) Done(kind string) {
	m.check()
	m.closed = true
	m.b.ops = append(m.b.ops, op{code: opDone, marker: m.id, kind: kind})
}

// Error closes the region as an error element carrying a message.
func (m *Marker) Error(msg string) {
	m.check()
	m.closed = true
	m.b.ops = append(m.b.ops, op{code: opError, marker: m.id, msg: msg})
}

// Drop removes the region; anything built inside it is spliced into the
// enclosing region.
func (m *Marker) Drop() {
	m.check()
	m.closed = true
	m.b.ops = append(m.b.ops, op{code: opDrop, marker: m.id})
}

// Rollback discards every operation recorded since the marker was opened and
// rewinds the raw cursor to where it stood at mark time. Markers created
// after this one become invalid.
func (m *Marker) Rollback() {
	m.check()
	m.closed = true
	m.b.ops = m.b.ops[:m.opIdx]
	m.b.pos = m.rawPos
}
