// Package wiretest provides table-driven round-trip runners for the wire
// codec, in the spirit of encoding/encodingtest-style helpers: instead of
// driving io.ReaderFrom/io.WriterTo pairs through a gob comparison, it
// drives wire.Packable/wire.Unpackable pairs through testify assertions,
// since this module's codec works against bounded byte cursors rather
// than io.Reader/io.Writer streams.
package wiretest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrack/ofcore/wire"
)

// Case pairs a decoded value with its expected wire encoding.
type Case struct {
	Name  string
	Value wire.Packable
	Bytes []byte
}

// RunPack asserts that each case's Value encodes to exactly Bytes.
func RunPack(t *testing.T, cases []Case) {
	t.Helper()

	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			got, err := wire.Pack(c.Value)
			require.NoError(t, err)
			assert.Equal(t, c.Bytes, got)
		})
	}
}

// RunUnpack decodes each case's Bytes into a fresh zero value (produced by
// fn) and asserts it equals Value.
func RunUnpack(t *testing.T, fn func() wire.Unpackable, cases []Case) {
	t.Helper()

	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			got := fn()
			r := wire.NewReader(c.Bytes)
			require.NoError(t, got.Unpack(r))
			assert.Equal(t, c.Value, got)
		})
	}
}

// RunRoundTrip runs both RunPack and RunUnpack; fn must return a fresh
// zero value of the same concrete type as each case's Value.
func RunRoundTrip(t *testing.T, fn func() wire.Unpackable, cases []Case) {
	t.Helper()

	RunPack(t, cases)
	RunUnpack(t, fn, cases)
}
