package pbstream

import (
	"errors"

	"github.com/svalproto/pbstream/buf"
	"github.com/svalproto/pbstream/stval"
)

// EncodeOption configures a single Encode/Marshal call.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	reserveHint int
}

// WithSizeHint pre-grows the encoder's output buffer, avoiding a few
// reallocations when the caller has a rough estimate of the encoded
// size. It never changes the result, only how many times the buffer
// grows while producing it.
func WithSizeHint(n int) EncodeOption {
	return func(o *encodeOptions) { o.reserveHint = n }
}

// Encode walks v and returns the encoded message. The returned
// *buf.Message defers materialization: call ToVec for a single flat
// slice, or IntoCursor to stream it out in chunks without copying.
func Encode(v stval.Value, opts ...EncodeOption) (*buf.Message, error) {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	enc := NewEncoder()
	if o.reserveHint > 0 {
		enc.w.Reserve(o.reserveHint)
	}
	if err := v.Stream(enc); err != nil {
		var encErr *EncodingError
		if errors.As(err, &encErr) {
			return nil, err
		}
		return nil, wrapErr(0, err)
	}
	return enc.finish()
}

// Marshal is Encode followed by ToVec, for callers that always want a
// flat byte slice.
func Marshal(v stval.Value, opts ...EncodeOption) ([]byte, error) {
	msg, err := Encode(v, opts...)
	if err != nil {
		return nil, err
	}
	return msg.ToVec(), nil
}
