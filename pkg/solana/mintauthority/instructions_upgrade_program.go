package mintauthority

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/mint-authority/pkg/solana"
	"github.com/code-payments/mint-authority/pkg/solana/binary"
)

const (
	UpgradeProgramInstructionArgsSize = ed25519.PublicKeySize // new_program_id
)

// UpgradeProgramInstructionArgs signals a new program id to off-chain tooling.
// The program itself treats it as a no-op, since upgrades happen through a
// redeploy of the program binary.
type UpgradeProgramInstructionArgs struct {
	NewProgramId ed25519.PublicKey
}

type UpgradeProgramInstructionAccounts struct {
	Authority ed25519.PublicKey
}

func NewUpgradeProgramInstruction(
	accounts *UpgradeProgramInstructionAccounts,
	args *UpgradeProgramInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: args.Marshal(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Authority,
				IsWritable: false,
				IsSigner:   true,
			},
		},
	}
}

func (args *UpgradeProgramInstructionArgs) Type() InstructionType {
	return InstructionTypeUpgradeProgram
}

func (args *UpgradeProgramInstructionArgs) Marshal() []byte {
	var offset int

	data := make([]byte, 1+UpgradeProgramInstructionArgsSize)

	putInstructionType(data, InstructionTypeUpgradeProgram, &offset)
	binary.PutKey32(data, args.NewProgramId, &offset)

	return data
}

func (args *UpgradeProgramInstructionArgs) unmarshal(payload []byte) error {
	if len(payload) < UpgradeProgramInstructionArgsSize {
		return errors.Wrapf(ErrInvalidInstructionData, "invalid upgrade program payload size: %d (expect at least %d)", len(payload), UpgradeProgramInstructionArgsSize)
	}

	var offset int
	binary.GetKey32(payload, &args.NewProgramId, &offset)
	return nil
}

func (args *UpgradeProgramInstructionArgs) isInstruction() {}

type DecompiledUpgradeProgram struct {
	Authority    ed25519.PublicKey
	NewProgramId ed25519.PublicKey
}

func DecompileUpgradeProgram(m solana.Message, index int) (*DecompiledUpgradeProgram, error) {
	i, decoded, err := decompile(m, index, InstructionTypeUpgradeProgram)
	if err != nil {
		return nil, err
	}

	decompiled := &DecompiledUpgradeProgram{
		NewProgramId: decoded.(*UpgradeProgramInstructionArgs).NewProgramId,
	}
	if len(i.Accounts) > 0 {
		decompiled.Authority = m.Accounts[i.Accounts[0]]
	}

	return decompiled, nil
}
