package bloom

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Binary encoding of filter state: 4-byte magic, little-endian m and k
// (plus the partition size for the partitioned variant), then the bit
// storage verbatim in the bitset library's binary form. There is no
// compression and no versioned migration beyond the magic check.

const (
	classicalMagic   = "BFC1"
	partitionedMagic = "BFP1"
)

var (
	// ErrBadMagic is returned when decoded data does not start with the
	// expected variant magic.
	ErrBadMagic = errors.New("bloom: unrecognized filter encoding")

	// ErrCorruptEncoding is returned when decoded data is truncated or its
	// header fields are inconsistent.
	ErrCorruptEncoding = errors.New("bloom: truncated or corrupt filter encoding")
)

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Classical) MarshalBinary() ([]byte, error) {
	bits, err := c.bits.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("bloom: encode bit storage: %w", err)
	}

	buf := make([]byte, 0, len(classicalMagic)+16+len(bits))
	buf = append(buf, classicalMagic...)
	buf = binary.LittleEndian.AppendUint64(buf, c.m)
	buf = binary.LittleEndian.AppendUint64(buf, c.k)
	buf = append(buf, bits...)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error the
// receiver is left untouched.
func (c *Classical) UnmarshalBinary(data []byte) error {
	const (
		mOff   = len(classicalMagic)
		kOff   = mOff + 8
		header = kOff + 8
	)
	if len(data) < header {
		return ErrCorruptEncoding
	}
	if string(data[:len(classicalMagic)]) != classicalMagic {
		return ErrBadMagic
	}

	m := binary.LittleEndian.Uint64(data[mOff:kOff])
	k := binary.LittleEndian.Uint64(data[kOff:header])
	if m == 0 || k == 0 {
		return ErrCorruptEncoding
	}

	bits := bitset.New(uint(m))
	if err := bits.UnmarshalBinary(data[header:]); err != nil {
		return fmt.Errorf("bloom: decode bit storage: %w", err)
	}
	if uint64(bits.Len()) != m {
		return ErrCorruptEncoding
	}

	c.m = m
	c.k = k
	c.bits = bits
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler. Partition payloads
// are concatenated in partition order; they are all the same length
// because every partition holds exactly partitionSize bits.
func (p *Partitioned) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, len(partitionedMagic)+24)
	buf = append(buf, partitionedMagic...)
	buf = binary.LittleEndian.AppendUint64(buf, p.m)
	buf = binary.LittleEndian.AppendUint64(buf, p.k)
	buf = binary.LittleEndian.AppendUint64(buf, p.partitionSize)

	for _, part := range p.partitions {
		bits, err := part.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("bloom: encode bit storage: %w", err)
		}
		buf = append(buf, bits...)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error the
// receiver is left untouched.
func (p *Partitioned) UnmarshalBinary(data []byte) error {
	const (
		mOff   = len(partitionedMagic)
		kOff   = mOff + 8
		psOff  = kOff + 8
		header = psOff + 8
	)
	if len(data) < header {
		return ErrCorruptEncoding
	}
	if string(data[:len(partitionedMagic)]) != partitionedMagic {
		return ErrBadMagic
	}

	m := binary.LittleEndian.Uint64(data[mOff:kOff])
	k := binary.LittleEndian.Uint64(data[kOff:psOff])
	partitionSize := binary.LittleEndian.Uint64(data[psOff:header])
	if m == 0 || k == 0 || partitionSize == 0 || partitionSize != m/k {
		return ErrCorruptEncoding
	}

	rest := data[header:]
	if uint64(len(rest))%k != 0 {
		return ErrCorruptEncoding
	}
	chunk := uint64(len(rest)) / k

	partitions := make([]*bitset.BitSet, k)
	for i := range partitions {
		bits := bitset.New(uint(partitionSize))
		if err := bits.UnmarshalBinary(rest[uint64(i)*chunk : uint64(i+1)*chunk]); err != nil {
			return fmt.Errorf("bloom: decode partition %d: %w", i, err)
		}
		if uint64(bits.Len()) != partitionSize {
			return ErrCorruptEncoding
		}
		partitions[i] = bits
	}

	p.m = m
	p.k = k
	p.partitionSize = partitionSize
	p.partitions = partitions
	return nil
}
