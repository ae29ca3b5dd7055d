package int160_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/james-lawrence/kad/int160"
)

func id(b ...byte) int160.T {
	var buf [20]byte
	copy(buf[:], b)
	return int160.FromByteArray(buf)
}

func TestDistance(t *testing.T) {
	c := qt.New(t)

	c.Assert(id(0x01).Distance(id(0x01)), qt.Equals, int160.Zero())
	c.Assert(id(0x01).Distance(id(0x02)), qt.Equals, id(0x03))
	c.Assert(id(0x01).Distance(id(0x02)), qt.Equals, id(0x02).Distance(id(0x01)))
	c.Assert(int160.Zero().Distance(int160.Max()), qt.Equals, int160.Max())
}

func TestXor(t *testing.T) {
	c := qt.New(t)

	var (
		ret  int160.T
		a, b = id(0xF0), id(0x0F)
	)

	c.Assert(*ret.Xor(&a, &b), qt.Equals, id(0xFF))
}

func TestCmp(t *testing.T) {
	c := qt.New(t)

	c.Assert(id(0x01).Cmp(id(0x02)), qt.Equals, -1)
	c.Assert(id(0x02).Cmp(id(0x01)), qt.Equals, 1)
	c.Assert(id(0x02).Cmp(id(0x02)), qt.Equals, 0)
	c.Assert(id(0x02).Equal(id(0x02)), qt.IsTrue)
	c.Assert(id(0x02).Equal(id(0x03)), qt.IsFalse)
	c.Assert(int160.Zero().IsZero(), qt.IsTrue)
	c.Assert(id(0x01).IsZero(), qt.IsFalse)
}

func TestCmpTo(t *testing.T) {
	c := qt.New(t)

	target := id(0x00)
	c.Assert(int160.CmpTo(target, id(0x01), id(0xFF)), qt.Equals, -1)
	c.Assert(int160.CmpTo(target, id(0xFF), id(0x01)), qt.Equals, 1)
	c.Assert(int160.CmpTo(target, id(0x0F), id(0x0F)), qt.Equals, 0)
}

func TestBitLen(t *testing.T) {
	c := qt.New(t)

	c.Assert(int160.Zero().BitLen(), qt.Equals, 0)
	c.Assert(int160.Max().BitLen(), qt.Equals, 160)
	c.Assert(id(0x80).BitLen(), qt.Equals, 160)
	c.Assert(id(0x01).BitLen(), qt.Equals, 153)
}

func TestEncoding(t *testing.T) {
	c := qt.New(t)

	v := int160.Random()
	decoded, err := int160.FromHexEncodedString(v.String())
	c.Assert(err, qt.IsNil)
	c.Assert(decoded, qt.Equals, v)

	c.Assert(int160.FromBytes(v.Bytes()), qt.Equals, v)
	c.Assert(int160.FromByteArray(v.AsByteArray()), qt.Equals, v)
	c.Assert(int160.FromByteString(string(v.Bytes())), qt.Equals, v)

	_, err = int160.FromHexEncodedString("zz")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestNew(t *testing.T) {
	c := qt.New(t)

	expected, err := int160.FromHexEncodedString("aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d")
	c.Assert(err, qt.IsNil)
	c.Assert(int160.New("hello"), qt.Equals, expected)
	c.Assert(int160.New([]byte("hello")), qt.Equals, expected)
}

func TestRandom(t *testing.T) {
	c := qt.New(t)

	c.Assert(int160.Random().Equal(int160.Random()), qt.IsFalse)
}
