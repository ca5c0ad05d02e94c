package mintauthority

import (
	"math"
)

// InstructionType is the leading tag byte of mint authority instruction data
type InstructionType uint8

const (
	InstructionTypeMintTokens InstructionType = iota
	InstructionTypeUpgradeProgram

	InstructionTypeUnknown = InstructionType(math.MaxUint8)
)

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeMintTokens:
		return "mint_tokens"
	case InstructionTypeUpgradeProgram:
		return "upgrade_program"
	}
	return "unknown"
}
