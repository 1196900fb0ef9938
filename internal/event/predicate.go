package event

// Verdict is the outcome of running a record through the predicate chain.
type Verdict int

const (
	Match Verdict = iota
	RejectSchema
	RejectCategory
	RejectTime
	RejectActor
)

var verdictNames = [...]string{
	Match:          "match",
	RejectSchema:   "schema",
	RejectCategory: "category",
	RejectTime:     "time",
	RejectActor:    "actor",
}

func (v Verdict) String() string {
	if v < 0 || int(v) >= len(verdictNames) {
		return "unknown"
	}
	return verdictNames[v]
}

// Predicate is the fixed filter set: category membership, then time window,
// then actor allow-list. It is immutable after construction and safe for
// concurrent use.
// Predicate 是固定的过滤条件集合，构造后不可变，可并发使用。
type Predicate struct {
	Categories CategorySet
	Window     TimeWindow
	Actors     AllowList
}

// NewPredicate returns a predicate over DefaultCategories.
func NewPredicate(window TimeWindow, actors AllowList) *Predicate {
	return &Predicate{
		Categories: DefaultCategories,
		Window:     window,
		Actors:     actors,
	}
}

// Evaluate parses payload once and applies the filters in order, stopping at
// the first rejection.
func (p *Predicate) Evaluate(payload string) Verdict {
	ev, err := Parse(payload)
	if err != nil {
		return RejectSchema
	}
	return p.EvaluateEvent(ev)
}

func (p *Predicate) EvaluateEvent(ev *Event) Verdict {
	if !p.Categories.Contains(ev.ID) {
		return RejectCategory
	}
	if !p.Window.Contains(ev.Created, ev.HasTime) {
		return RejectTime
	}
	if !p.Actors.Matches(ev) {
		return RejectActor
	}
	return Match
}
