package mintauthority

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/mint-authority/pkg/solana"
	"github.com/code-payments/mint-authority/pkg/solana/binary"
)

const (
	MintTokensInstructionArgsSize = 8 // amount

	mintTokensInstructionAccountCount = 3
)

type MintTokensInstructionArgs struct {
	Amount uint64
}

type MintTokensInstructionAccounts struct {
	Mint        ed25519.PublicKey
	Destination ed25519.PublicKey
	Authority   ed25519.PublicKey
}

func NewMintTokensInstruction(
	accounts *MintTokensInstructionAccounts,
	args *MintTokensInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: args.Marshal(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Mint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Destination,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Authority,
				IsWritable: false,
				IsSigner:   true,
			},
		},
	}
}

func (args *MintTokensInstructionArgs) Type() InstructionType {
	return InstructionTypeMintTokens
}

func (args *MintTokensInstructionArgs) Marshal() []byte {
	var offset int

	data := make([]byte, 1+MintTokensInstructionArgsSize)

	putInstructionType(data, InstructionTypeMintTokens, &offset)
	binary.PutUint64(data, args.Amount, &offset)

	return data
}

func (args *MintTokensInstructionArgs) unmarshal(payload []byte) error {
	if len(payload) != MintTokensInstructionArgsSize {
		return errors.Wrapf(ErrInvalidInstructionData, "invalid mint tokens payload size: %d (expect %d)", len(payload), MintTokensInstructionArgsSize)
	}

	var offset int
	binary.GetUint64(payload, &args.Amount, &offset)
	return nil
}

func (args *MintTokensInstructionArgs) isInstruction() {}

type DecompiledMintTokens struct {
	Mint        ed25519.PublicKey
	Destination ed25519.PublicKey
	Authority   ed25519.PublicKey
	Amount      uint64
}

func DecompileMintTokens(m solana.Message, index int) (*DecompiledMintTokens, error) {
	i, decoded, err := decompile(m, index, InstructionTypeMintTokens)
	if err != nil {
		return nil, err
	}

	if len(i.Accounts) < mintTokensInstructionAccountCount {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	return &DecompiledMintTokens{
		Mint:        m.Accounts[i.Accounts[0]],
		Destination: m.Accounts[i.Accounts[1]],
		Authority:   m.Accounts[i.Accounts[2]],
		Amount:      decoded.(*MintTokensInstructionArgs).Amount,
	}, nil
}
