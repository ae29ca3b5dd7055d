// Package int160 implements the 160 bit identifier space and its xor metric.
package int160

import (
	"bytes"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"math"
	"math/big"
)

// T is an immutable 160 bit identifier. the zero value is usable.
type T struct {
	bits [20]uint8
}

// New derives an identifier by hashing arbitrary input.
func New[Y string | []byte](b Y) (ret T) {
	v := sha1.Sum([]byte(b))
	copy(ret.bits[:], v[:])
	return
}

// Random identifier from the platform entropy source.
func Random() (id T) {
	n, err := rand.Read(id.bits[:])
	if err != nil {
		panic(err)
	}
	if n < len(id.bits[:]) {
		panic(io.ErrShortWrite)
	}

	return id
}

func Zero() (id T) {
	id.bits = [20]byte{}
	return id
}

func Max() (id T) {
	for i := range id.bits {
		id.bits[i] = math.MaxUint8
	}
	return id
}

// compare a and b using the target.
// returns -1 is a is closer to target.
// return 0 if they are equal distance.
// return 1 if b is closer to target.
func CmpTo(target T, a T, b T) int {
	return target.Distance(a).Cmp(target.Distance(b))
}

func FromBytes(b []byte) (ret T) {
	ret.SetBytes(b)
	return
}

func FromByteArray(b [20]byte) (ret T) {
	ret.SetBytes(b[:])
	return
}

func FromByteString(s string) (ret T) {
	ret.SetBytes([]byte(s))
	return
}

func FromHexEncodedString(s string) (ret T, err error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ret, err
	}
	return FromBytes(b), nil
}

func (me T) String() string {
	return hex.EncodeToString(me.bits[:])
}

func (me T) AsByteArray() [20]byte {
	return me.bits
}

func (me T) Bytes() []byte {
	return me.bits[:]
}

// BitLen of the identifier ignoring leading zeroes.
func (me T) BitLen() int {
	var a big.Int
	a.SetBytes(me.bits[:])
	return a.BitLen()
}

func (me *T) SetBytes(b []byte) {
	n := copy(me.bits[:], b)
	if n != 20 {
		panic(n)
	}
}

func (l T) Cmp(r T) int {
	return bytes.Compare(l.bits[:], r.bits[:])
}

func (l T) Equal(r T) bool {
	return l.Cmp(r) == 0
}

func (me T) IsZero() bool {
	for _, b := range me.bits {
		if b != 0 {
			return false
		}
	}
	return true
}

func (me *T) Xor(a, b *T) *T {
	for i := range me.bits {
		me.bits[i] = a.bits[i] ^ b.bits[i]
	}

	return me
}

// Distance between the two identifiers under the xor metric.
func (a T) Distance(b T) (ret T) {
	ret.Xor(&a, &b)
	return
}
