package kad

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/james-lawrence/kad/int160"
)

func tid(b ...byte) int160.T {
	var buf [20]byte
	copy(buf[:], b)
	return int160.FromByteArray(buf)
}

func tcontact(port uint16, b ...byte) Contact {
	return Contact{
		ID:   tid(b...),
		Addr: netip.AddrPortFrom(netip.AddrFrom4([4]byte{127, 0, 0, 1}), port),
	}
}

func TestResultsetOrdering(t *testing.T) {
	rs := newResultset(tid(), 8)

	require.True(t, rs.admit(tcontact(1, 0xFF)))
	require.True(t, rs.admit(tcontact(2, 0x01)))
	require.True(t, rs.admit(tcontact(3, 0x0F)))

	snap := rs.snapshot()
	require.Len(t, snap, 3)
	require.Equal(t, tid(0x01), snap[0].ID)
	require.Equal(t, tid(0x0F), snap[1].ID)
	require.Equal(t, tid(0xFF), snap[2].ID)
}

func TestResultsetCapEvictsWorst(t *testing.T) {
	rs := newResultset(tid(), 2)

	require.True(t, rs.admit(tcontact(1, 0x0F)))
	require.True(t, rs.admit(tcontact(2, 0x01)))
	require.True(t, rs.admit(tcontact(3, 0x03)))

	snap := rs.snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, tid(0x01), snap[0].ID)
	require.Equal(t, tid(0x03), snap[1].ID)
	require.False(t, rs.contains(tid(0x0F)))
}

func TestResultsetAdmitIdempotent(t *testing.T) {
	rs := newResultset(tid(), 8)

	require.True(t, rs.admit(tcontact(1, 0x01)))
	require.False(t, rs.admit(tcontact(1, 0x01)))
	require.Len(t, rs.snapshot(), 1)
}

func TestResultsetLimit(t *testing.T) {
	target := tid(0x0F)
	rs := newResultset(target, 2)

	require.Nil(t, rs.limit())

	require.True(t, rs.admit(tcontact(1, 0x0B)))
	require.Nil(t, rs.limit())

	require.True(t, rs.admit(tcontact(2, 0x07)))
	require.NotNil(t, rs.limit())
	require.Equal(t, target.Distance(tid(0x07)), *rs.limit())

	// a closer contact evicts the worst and shrinks the limit.
	require.True(t, rs.admit(tcontact(3, 0x0E)))
	require.Equal(t, target.Distance(tid(0x0B)), *rs.limit())
}

func TestResultsetZeroCapacity(t *testing.T) {
	rs := newResultset(tid(), 0)

	require.Nil(t, rs.limit())
	rs.admit(tcontact(1, 0x01))
	require.Empty(t, rs.snapshot())
	require.Nil(t, rs.limit())
}

func TestResultsetReset(t *testing.T) {
	rs := newResultset(tid(), 2)

	require.True(t, rs.admit(tcontact(1, 0x01)))
	rs.reset()
	require.Empty(t, rs.snapshot())
	require.False(t, rs.contains(tid(0x01)))
	require.True(t, rs.admit(tcontact(1, 0x01)))
}
