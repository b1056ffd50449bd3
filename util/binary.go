package util

import (
	"encoding/binary"
	"io"
)

func WriteUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

func WriteUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

// WriteVarInt writes a Bitcoin compact-size integer.
func WriteVarInt(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		_, err := w.Write([]byte{byte(val)})
		return err
	case val <= 0xffff:
		if _, err := w.Write([]byte{0xfd}); err != nil {
			return err
		}
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(val))
		_, err := w.Write(buf[:])
		return err
	case val <= 0xffffffff:
		if _, err := w.Write([]byte{0xfe}); err != nil {
			return err
		}
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(val))
		_, err := w.Write(buf[:])
		return err
	default:
		if _, err := w.Write([]byte{0xff}); err != nil {
			return err
		}
		return WriteUint64(w, val)
	}
}

// VarIntSerializeSize returns the wire size of a compact-size integer.
func VarIntSerializeSize(val uint64) uint32 {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	default:
		return 9
	}
}
