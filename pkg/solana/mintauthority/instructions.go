package mintauthority

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/code-payments/mint-authority/pkg/solana"
)

// Instruction is a decoded mint authority instruction. The set of variants is
// closed: only *MintTokensInstructionArgs and *UpgradeProgramInstructionArgs
// implement it.
type Instruction interface {
	Type() InstructionType

	// Marshal returns the canonical instruction data, including the tag
	Marshal() []byte

	isInstruction()
}

// DecodeInstruction decodes raw instruction data into its typed variant. It
// performs structural validation only.
//
// The payload length rules differ per variant. MintTokens requires exactly an
// 8 byte amount, whereas UpgradeProgram requires at least a 32 byte program id
// and ignores anything after it.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidInstructionData, "missing instruction type")
	}

	payload := data[1:]

	switch InstructionType(data[0]) {
	case InstructionTypeMintTokens:
		var args MintTokensInstructionArgs
		if err := args.unmarshal(payload); err != nil {
			return nil, err
		}
		return &args, nil
	case InstructionTypeUpgradeProgram:
		var args UpgradeProgramInstructionArgs
		if err := args.unmarshal(payload); err != nil {
			return nil, err
		}
		return &args, nil
	default:
		return nil, errors.Wrapf(ErrInvalidInstructionData, "unknown instruction type: %d", data[0])
	}
}

// GetInstructionType returns the mint authority instruction type at index
// within a transaction message.
func GetInstructionType(m solana.Message, index int) (InstructionType, error) {
	if index >= len(m.Instructions) {
		return InstructionTypeUnknown, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], PROGRAM_ID) {
		return InstructionTypeUnknown, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 {
		return InstructionTypeUnknown, errors.New("mint authority instruction missing data")
	}

	return InstructionType(i.Data[0]), nil
}

func decompile(m solana.Message, index int, expected InstructionType) (solana.CompiledInstruction, Instruction, error) {
	if index >= len(m.Instructions) {
		return solana.CompiledInstruction{}, nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], PROGRAM_ID) {
		return i, nil, solana.ErrIncorrectProgram
	}
	if !bytes.HasPrefix(i.Data, []byte{byte(expected)}) {
		return i, nil, solana.ErrIncorrectInstruction
	}

	decoded, err := DecodeInstruction(i.Data)
	if err != nil {
		return i, nil, err
	}

	return i, decoded, nil
}
