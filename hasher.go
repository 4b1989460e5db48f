package chainmap

import (
	"bytes"
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher defines a hash function and an equivalence relation over keys of
// type K. Equal(a, b) must imply Hash(a) == Hash(b).
type Hasher[K any] interface {
	Hash(K) uint64
	Equal(a, b K) bool
}

// ComparableHasher hashes comparable keys. Strings and fixed-width integers
// go through xxhash; anything else through hash/maphash with a seed that is
// fixed for the lifetime of the process.
type ComparableHasher[K comparable] struct{}

var processSeed = maphash.MakeSeed()

func (ComparableHasher[K]) Hash(k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return xxhash.Sum64String(v)
	case int:
		return hashUint64(uint64(v))
	case int64:
		return hashUint64(uint64(v))
	case int32:
		return hashUint64(uint64(v))
	case uint:
		return hashUint64(uint64(v))
	case uint64:
		return hashUint64(v)
	case uint32:
		return hashUint64(uint64(v))
	case uintptr:
		return hashUint64(uint64(v))
	}
	return maphash.Comparable(processSeed, k)
}

func (ComparableHasher[K]) Equal(a, b K) bool { return a == b }

func hashUint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// BytesHasher hashes byte-slice keys by content.
type BytesHasher struct{}

func (BytesHasher) Hash(k []byte) uint64 { return xxhash.Sum64(k) }
func (BytesHasher) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// Equivalent lets a table keyed by K be queried with a related type Q
// without building a K. For every stored key k and query q,
// Matches(k, q) must imply that Hash(q) equals the table's hash of k.
type Equivalent[K, Q any] interface {
	Hash(q Q) uint64
	Matches(k K, q Q) bool
}

// BytesAsString queries string-keyed tables built with ComparableHasher or
// StringHasher using a byte slice, without allocating a string.
type BytesAsString struct{}

func (BytesAsString) Hash(q []byte) uint64 { return xxhash.Sum64(q) }

func (BytesAsString) Matches(k string, q []byte) bool { return k == string(q) }

// StringHasher is the string-only counterpart of ComparableHasher.
type StringHasher struct{}

func (StringHasher) Hash(k string) uint64 { return xxhash.Sum64String(k) }
func (StringHasher) Equal(a, b string) bool { return a == b }
