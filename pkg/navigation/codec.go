// Package navigation packs the client-held page state into a short hex
// token.
//
// The XOR step only obfuscates the token against casual editing. It
// provides neither confidentiality nor integrity, and every decoded state
// must still be treated as untrusted input.
package navigation

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"net/url"
)

const (
	// PayloadLength is the packed size of a State: page, id, aux.
	PayloadLength = 1 + 8 + 4

	// MinKeyLength is the shortest key that covers every payload byte.
	MinKeyLength = PayloadLength

	// Param is the query parameter carrying the token.
	Param = "demo"
)

var ErrKeyTooShort = errors.New("navigation key too short")

type Codec struct {
	key    []byte
	offset int
}

func NewCodec(key []byte) (*Codec, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrKeyTooShort, len(key), MinKeyLength)
	}

	// The offset is part of the wire format: FNV-1a of the key with the
	// sign bit cleared, the 32-bit form of abs(hash(key)).
	h := fnv.New32a()
	h.Write(key)

	return &Codec{
		key:    append([]byte(nil), key...),
		offset: int(h.Sum32() & math.MaxInt32),
	}, nil
}

// Encode returns the 26 character hex token for s.
func (c *Codec) Encode(s State) string {
	var buf [PayloadLength]byte
	buf[0] = byte(s.Page)
	binary.BigEndian.PutUint64(buf[1:9], uint64(s.ID))
	binary.BigEndian.PutUint32(buf[9:13], uint32(s.Aux))

	c.xor(buf[:])

	return hex.EncodeToString(buf[:])
}

// Decode never fails: malformed tokens decode to BadRequest.
func (c *Codec) Decode(token string) State {
	buf, err := hex.DecodeString(token)
	if err != nil {
		return BadRequest()
	}
	if len(buf) != PayloadLength {
		return BadRequest()
	}

	c.xor(buf)

	page := Page(buf[0])
	if !page.Valid() {
		return BadRequest()
	}

	return State{
		Page: page,
		ID:   int64(binary.BigEndian.Uint64(buf[1:9])),
		Aux:  int32(binary.BigEndian.Uint32(buf[9:13])),
	}
}

// DecodeQuery reads the token from query values. A missing parameter is
// the landing page, an empty one is malformed.
func (c *Codec) DecodeQuery(values url.Values) State {
	if !values.Has(Param) {
		return Default()
	}
	return c.Decode(values.Get(Param))
}

// Href builds a link to s under base.
func (c *Codec) Href(base string, s State) string {
	return base + "?" + Param + "=" + c.Encode(s)
}

func (c *Codec) xor(buf []byte) {
	for i := range buf {
		buf[i] ^= c.key[(i+c.offset)%len(c.key)]
	}
}
