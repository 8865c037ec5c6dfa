package mock

// Kind is the kind of a resolution outcome.
type Kind int

const (
	// Unmatched means no descriptor matched the request.
	Unmatched Kind = iota
	// Matched means a descriptor without multiple responses matched.
	Matched
	// MatchedMultiple means a slot of a multi-response descriptor was consumed.
	MatchedMultiple
	// ExhaustedMultiple means the matching descriptor has no slot left.
	ExhaustedMultiple
)

func (k Kind) String() string {
	switch k {
	case Matched:
		return "matched"
	case MatchedMultiple:
		return "matched_multiple"
	case ExhaustedMultiple:
		return "exhausted_multiple"
	default:
		return "unmatched"
	}
}

// Outcome is the result of resolving one request. Its fields are read-only.
type Outcome struct {
	Kind Kind
	// Index is the position of the selected descriptor, -1 when unmatched.
	Index int
	// Slot is the consumed slot of MatchedMultiple, -1 otherwise.
	Slot       int
	Descriptor Descriptor
	// Response is what the interception adapter writes back.
	Response Response
}

// Served reports whether the response comes from a declared mock.
func (o Outcome) Served() bool {
	return o.Kind == Matched || o.Kind == MatchedMultiple
}

func unmatched() Outcome {
	return Outcome{Kind: Unmatched, Index: -1, Slot: -1, Response: DefaultResponse()}
}
