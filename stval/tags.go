package stval

// Tag is an opaque, well-known annotation that a value can attach to
// one of its events to hint at how a consumer should interpret it.
// Tags are the generic escape hatch of the visitor interface: any
// consumer (not just this module's protobuf encoder) can define and
// recognize its own tag vocabulary, so Tag is just a comparable label
// rather than a closed enum.
//
// The two tags declared here are the ones the visitor interface
// itself assigns meaning to, because they describe a shape ("this
// value is absent") rather than an encoding ("this value should be
// framed as fixed32"); encoding-specific tags belong to the consumer,
// see pbstream's well-known tag constants.
type Tag string

const (
	// OptionNone marks a value as the absent case of an optional type.
	// A Stream consumer that does not special-case it may treat the
	// accompanying event as equivalent to Null.
	OptionNone Tag = "option.none"
	// OptionSome marks a TaggedBegin/TaggedEnd pair as wrapping the
	// present case of an optional type. It carries no payload of its
	// own; the wrapped value streams normally between the begin/end.
	OptionSome Tag = "option.some"
)
