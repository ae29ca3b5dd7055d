package kad_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/james-lawrence/kad"
)

func TestTableRejectsRoot(t *testing.T) {
	tbl := kad.NewTable(id(0x01), 8)
	require.ErrorIs(t, tbl.Add(contact(1, 0x01)), kad.ErrTableRootID)
	require.Equal(t, 0, tbl.Len())
}

func TestTableRejectsFullBucket(t *testing.T) {
	tbl := kad.NewTable(id(), 1)

	// both identifiers share a distance prefix from the root, landing in
	// the same bucket.
	require.NoError(t, tbl.Add(contact(1, 0x02)))
	require.ErrorIs(t, tbl.Add(contact(2, 0x03)), kad.ErrTableBucketFull)
	require.Equal(t, 1, tbl.Len())
}

func TestTableUpdatesKnownContact(t *testing.T) {
	tbl := kad.NewTable(id(), 8)

	require.NoError(t, tbl.Add(contact(1, 0x02)))
	require.NoError(t, tbl.Add(contact(9, 0x02)))
	require.Equal(t, 1, tbl.Len())

	closest := tbl.Closest(id(0x02), 1)
	require.Len(t, closest, 1)
	require.Equal(t, addr(9), closest[0].Addr)
}

func TestTableClosest(t *testing.T) {
	tbl := kad.NewTable(id(), 8)

	require.NoError(t, tbl.Add(contact(1, 0xFF)))
	require.NoError(t, tbl.Add(contact(2, 0x0F)))
	require.NoError(t, tbl.Add(contact(3, 0x03)))
	require.NoError(t, tbl.Add(contact(4, 0x01)))

	closest := tbl.Closest(id(0x01), 3)
	require.Equal(t, []kad.Contact{contact(4, 0x01), contact(3, 0x03), contact(2, 0x0F)}, closest)

	require.Len(t, tbl.Closest(id(0x01), 10), 4)
	require.Empty(t, kad.NewTable(id(), 8).Closest(id(0x01), 3))
}

func TestTableWriteDebug(t *testing.T) {
	tbl := kad.NewTable(id(), 8)
	require.NoError(t, tbl.Add(contact(1, 0x02)))

	var buf bytes.Buffer
	tbl.WriteDebug(&buf)
	require.Contains(t, buf.String(), "127.0.0.1:1")
}
