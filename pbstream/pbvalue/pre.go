// Package pbvalue collects stval.Value adapters for values that do
// not naturally walk themselves: a previously encoded message, a
// pre-wire-encoded scalar, a plain Go value inspected by reflection,
// or a google.golang.org/protobuf reflective message used for oracle
// testing against this module's own encoder.
package pbvalue

import (
	"github.com/svalproto/pbstream/buf"
	"github.com/svalproto/pbstream/stval"
)

// Pre adapts an already-encoded submessage into a Value, letting a
// caller cache the encoding of a shared substructure (a common header,
// a repeated constant) and reuse it across many parent messages
// without re-walking it each time. It streams as an ordinary binary
// run, which the driver frames exactly like a freshly walked nested
// message: a length-delimited field wrapping the same bytes.
type Pre struct {
	Message *buf.Message
}

func (p Pre) Stream(s stval.Stream) error {
	return p.Message.Stream(s)
}

var _ stval.Value = Pre{}
