package script

import (
	"encoding/binary"

	"github.com/copernet/kernel/model/opcodes"
	"github.com/copernet/kernel/util"
)

const (
	MaxScriptSize = 10000

	// MaxPubKeysPerMultiSig is the sigop weight charged for a multisig
	// operation whose key count cannot be read from the script.
	MaxPubKeysPerMultiSig = 20
)

// Script is an opaque program. The core parses it only far enough to
// classify outputs and count signature operations; running it is the
// interpreter's business.
type Script struct {
	data          []byte
	ParsedOpCodes []opcodes.ParsedOpCode

	badOpCode bool
}

func NewScriptRaw(bytes []byte) *Script {
	s := &Script{data: bytes}
	s.convertOPS()
	return s
}

func NewScriptOps(parsed []opcodes.ParsedOpCode) *Script {
	s := &Script{ParsedOpCodes: parsed}
	s.convertRaw()
	return s
}

func NewEmptyScript() *Script {
	return &Script{data: make([]byte, 0)}
}

func (s *Script) convertRaw() {
	s.data = make([]byte, 0)
	for _, e := range s.ParsedOpCodes {
		s.data = append(s.data, e.OpValue)
		if e.OpValue == opcodes.OP_PUSHDATA1 {
			s.data = append(s.data, byte(e.Length))
		} else if e.OpValue == opcodes.OP_PUSHDATA2 {
			var buf [2]byte
			binary.LittleEndian.PutUint16(buf[:], uint16(e.Length))
			s.data = append(s.data, buf[:]...)
		} else if e.OpValue == opcodes.OP_PUSHDATA4 {
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], uint32(e.Length))
			s.data = append(s.data, buf[:]...)
		}
		if e.OpValue <= opcodes.OP_PUSHDATA4 {
			s.data = append(s.data, e.Data...)
		}
	}
}

func (s *Script) convertOPS() {
	s.ParsedOpCodes = make([]opcodes.ParsedOpCode, 0)
	s.badOpCode = false

	data := s.data
	for i := 0; i < len(data); {
		opValue := data[i]
		i++
		if opValue > opcodes.OP_PUSHDATA4 {
			s.ParsedOpCodes = append(s.ParsedOpCodes,
				opcodes.ParsedOpCode{OpValue: opValue})
			continue
		}

		var dataLen int
		switch opValue {
		case opcodes.OP_PUSHDATA1:
			if len(data)-i < 1 {
				s.badOpCode = true
				return
			}
			dataLen = int(data[i])
			i++
		case opcodes.OP_PUSHDATA2:
			if len(data)-i < 2 {
				s.badOpCode = true
				return
			}
			dataLen = int(binary.LittleEndian.Uint16(data[i : i+2]))
			i += 2
		case opcodes.OP_PUSHDATA4:
			if len(data)-i < 4 {
				s.badOpCode = true
				return
			}
			dataLen = int(binary.LittleEndian.Uint32(data[i : i+4]))
			i += 4
		default:
			dataLen = int(opValue)
		}
		if len(data)-i < dataLen {
			s.badOpCode = true
			return
		}
		s.ParsedOpCodes = append(s.ParsedOpCodes, opcodes.ParsedOpCode{
			OpValue: opValue,
			Length:  dataLen,
			Data:    data[i : i+dataLen],
		})
		i += dataLen
	}
}

func (s *Script) Bytes() []byte {
	return s.data
}

func (s *Script) Size() int {
	return len(s.data)
}

func (s *Script) GetBadOpCode() bool {
	return s.badOpCode
}

// SerializeSize counts the compact-size length prefix plus the program bytes.
func (s *Script) SerializeSize() uint32 {
	return util.VarIntSerializeSize(uint64(len(s.data))) + uint32(len(s.data))
}

// IsPayToScriptHash matches OP_HASH160 <20 bytes> OP_EQUAL.
func (s *Script) IsPayToScriptHash() bool {
	return len(s.data) == 23 &&
		s.data[0] == opcodes.OP_HASH160 &&
		s.data[1] == 0x14 &&
		s.data[22] == opcodes.OP_EQUAL
}

func (s *Script) IsUnspendable() bool {
	return (s.Size() > 0 && s.data[0] == opcodes.OP_RETURN) || s.Size() > MaxScriptSize
}

func (s *Script) IsPushOnly() bool {
	if s.badOpCode {
		return false
	}
	for _, ops := range s.ParsedOpCodes {
		if ops.OpValue > opcodes.OP_16 {
			return false
		}
	}
	return true
}

// GetSigOpCount counts signature operations. A multisig costs its announced
// key count when accurate counting is requested and an OP_1..OP_16 preceded
// it somewhere in the script, and the worst case of 20 keys otherwise.
func (s *Script) GetSigOpCount(accurate bool) int {
	n := 0
	var lastNumber byte
	for _, e := range s.ParsedOpCodes {
		opcode := e.OpValue
		if opcode == opcodes.OP_CHECKSIG || opcode == opcodes.OP_CHECKSIGVERIFY {
			n++
		} else if opcode == opcodes.OP_CHECKMULTISIG || opcode == opcodes.OP_CHECKMULTISIGVERIFY {
			if accurate && lastNumber >= opcodes.OP_1 && lastNumber <= opcodes.OP_16 {
				n += DecodeOPN(lastNumber)
			} else {
				n += MaxPubKeysPerMultiSig
			}
		}
		if opcode >= opcodes.OP_1 && opcode <= opcodes.OP_16 {
			lastNumber = opcode
		}
	}
	return n
}

// GetP2SHSigOpCount counts the signature operations a pay-to-script-hash
// output really costs: the ones inside the redeem script carried as the last
// push of scriptSig. A scriptSig that is not push-only can never pass
// evaluation, so it counts for nothing.
func (s *Script) GetP2SHSigOpCount() int {
	if s.badOpCode || len(s.ParsedOpCodes) == 0 {
		return 0
	}
	for _, e := range s.ParsedOpCodes {
		if e.OpValue > opcodes.OP_16 {
			return 0
		}
	}
	lastOps := s.ParsedOpCodes[len(s.ParsedOpCodes)-1]
	redeemScript := NewScriptRaw(lastOps.Data)
	return redeemScript.GetSigOpCount(true)
}

func EncodeOPN(n int) byte {
	if n == 0 {
		return opcodes.OP_0
	}
	return byte(opcodes.OP_1 + n - 1)
}

func DecodeOPN(opcode byte) int {
	if opcode == opcodes.OP_0 {
		return 0
	}
	return int(opcode) - (opcodes.OP_1 - 1)
}

func (s *Script) PushOpCode(n int) *Script {
	s.data = append(s.data, byte(n))
	s.convertOPS()
	return s
}

// PushSingleData appends data with its minimal push encoding.
func (s *Script) PushSingleData(data []byte) *Script {
	dataLen := len(data)
	switch {
	case dataLen < opcodes.OP_PUSHDATA1:
		s.data = append(s.data, byte(dataLen))
	case dataLen <= 0xff:
		s.data = append(s.data, opcodes.OP_PUSHDATA1, byte(dataLen))
	case dataLen <= 0xffff:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(dataLen))
		s.data = append(s.data, opcodes.OP_PUSHDATA2)
		s.data = append(s.data, buf[:]...)
	default:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(dataLen))
		s.data = append(s.data, opcodes.OP_PUSHDATA4)
		s.data = append(s.data, buf[:]...)
	}
	s.data = append(s.data, data...)
	s.convertOPS()
	return s
}

// NewPayToScriptHash builds OP_HASH160 <Hash160(redeemScript)> OP_EQUAL.
func NewPayToScriptHash(redeemScript []byte) *Script {
	s := NewEmptyScript()
	s.PushOpCode(opcodes.OP_HASH160)
	s.PushSingleData(util.Hash160(redeemScript))
	s.PushOpCode(opcodes.OP_EQUAL)
	return s
}

func (s *Script) IsEqual(other *Script) bool {
	if s.Size() != other.Size() {
		return false
	}
	for i, b := range s.data {
		if b != other.data[i] {
			return false
		}
	}
	return true
}
