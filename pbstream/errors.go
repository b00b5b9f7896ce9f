package pbstream

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNestedBinary is returned when a Value calls BinaryBegin while a
// binary run is already open. Binary fragments are a flat span, not a
// nestable container, so this is always a caller bug rather than
// something the encoder can flatten on the value's behalf.
var ErrNestedBinary = errors.New("pbstream: nested BinaryBegin")

// ErrUnbalancedContainer is returned when an End event fires with no
// matching Begin open, or a TaggedEnd's tag does not match the tag its
// TaggedBegin pushed.
var ErrUnbalancedContainer = errors.New("pbstream: unbalanced container events")

var (
	errRootNotMessage   = errors.New("pbstream: root value must not be a sequence or map")
	errNoEnclosingField = errors.New("pbstream: value emitted with no enclosing field number")
)

// EncodingError wraps a failure raised while walking a Value. Field
// identifies the record/tuple field number active at the time of
// failure, when known; it is zero otherwise.
type EncodingError struct {
	Field int32
	Err   error
}

func (e *EncodingError) Error() string {
	if e.Field != 0 {
		return fmt.Sprintf("pbstream: field %d: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("pbstream: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// GRPCStatus lets an *EncodingError cross a gRPC boundary as a proper
// status error: encoding failures are always caller-side data
// problems, so they map to codes.InvalidArgument.
func (e *EncodingError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

func wrapErr(field int32, err error) error {
	if err == nil {
		return nil
	}
	return &EncodingError{Field: field, Err: err}
}
