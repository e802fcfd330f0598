// Package intent defines the structured result of parsing one user command
// and the frozen clock snapshot all relative dates resolve against.
package intent

import "time"

// Kind discriminates the Intent variants on the wire.
type Kind string

const (
	KindEvent  Kind = "event"
	KindTask   Kind = "task"
	KindDelete Kind = "delete"
	KindEdit   Kind = "edit"
	KindQuery  Kind = "query"
	KindAnswer Kind = "answer"
)

// Intent is a closed set of parse outcomes. Exactly one concrete type exists
// per Kind; the sealed method keeps the set closed so switches over variants
// stay exhaustive.
type Intent interface {
	Kind() Kind
	sealed()
}

// Event schedules something at a concrete start/end. Both timestamps are
// fully resolved calendar times; no relative expression survives parsing.
type Event struct {
	Title string
	Start time.Time
	End   time.Time
}

// Task is the catch-all for input with no time or command signal.
type Task struct {
	Description string
}

// Delete asks the execution layer to remove events whose titles contain
// Target. Target is lowercased, command-word-stripped free text.
type Delete struct {
	Target string
}

// Edit asks the execution layer to modify events matching Target.
type Edit struct {
	Target  string
	Changes map[string]string
}

// Query is a question about the schedule, answered by the execution layer.
type Query struct {
	Question string
}

// Answer is a terminal informational message. This engine never produces
// one; the type exists so the wire format round-trips.
type Answer struct {
	Message string
}

func (Event) Kind() Kind  { return KindEvent }
func (Task) Kind() Kind   { return KindTask }
func (Delete) Kind() Kind { return KindDelete }
func (Edit) Kind() Kind   { return KindEdit }
func (Query) Kind() Kind  { return KindQuery }
func (Answer) Kind() Kind { return KindAnswer }

func (Event) sealed()  {}
func (Task) sealed()   {}
func (Delete) sealed() {}
func (Edit) sealed()   {}
func (Query) sealed()  {}
func (Answer) sealed() {}
