package pbstream_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svalproto/pbstream/internal/wiretest"
	"github.com/svalproto/pbstream/pbstream"
)

func TestDumpRendersNestedRecordFields(t *testing.T) {
	msg, err := pbstream.Encode(wiretest.NestedRecord())
	require.NoError(t, err)

	out := pbstream.Dump(msg)
	assert.Contains(t, out, `1: "GET /widgets"`)
	assert.Contains(t, out, "2: {")
	assert.Equal(t, 3, strings.Count(out, `"http.method"`)+strings.Count(out, `"http.status_code"`)+strings.Count(out, `"retry.count"`))
}

func TestDumpOnFlatRecord(t *testing.T) {
	msg, err := pbstream.Encode(wiretest.FlatRecord())
	require.NoError(t, err)

	out := pbstream.Dump(msg)
	assert.Contains(t, out, "1: 42")
	assert.Contains(t, out, `2: "hello"`)
	assert.Contains(t, out, "3: 1")
}
