package pbstream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/svalproto/pbstream/pbstream"
	"github.com/svalproto/pbstream/pbstream/pbvalue"
	"github.com/svalproto/pbstream/stval"
)

func TestEncodeAllPreservesInputOrder(t *testing.T) {
	values := make([]stval.Value, 0, 8)
	for i := int32(0); i < 8; i++ {
		values = append(values, recordValue(field(1, pbvalue.I32(i))))
	}

	msgs, err := pbstream.EncodeAll(context.Background(), values)
	require.NoError(t, err)
	require.Len(t, msgs, len(values))

	got := make([][]byte, len(msgs))
	want := make([][]byte, len(values))
	for i, m := range msgs {
		got[i] = m.ToVec()
		want[i], err = pbstream.Marshal(values[i])
		require.NoError(t, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("EncodeAll diverged from sequential Marshal (-want +got):\n%s", diff)
	}
}

func TestEncodeAllStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	values := []stval.Value{
		recordValue(field(1, pbvalue.I32(1))),
		stval.ValueFunc(func(s stval.Stream) error { return boom }),
		recordValue(field(1, pbvalue.I32(3))),
	}

	_, err := pbstream.EncodeAll(context.Background(), values)
	require.ErrorIs(t, err, boom)
}
