package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mint-authority/pkg/solana"
	"github.com/code-payments/mint-authority/pkg/testutil"
)

func TestGetCommand_Error(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 4)

	// invalid program
	cmd, err := GetCommand(solana.NewTransaction(keys[0], solana.NewInstruction(keys[1], []byte{})).Message, 0)
	assert.Equal(t, CommandUnknown, cmd)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	// no data
	cmd, err = GetCommand(solana.NewTransaction(keys[0], solana.NewInstruction(ProgramKey, []byte{})).Message, 0)
	assert.Equal(t, CommandUnknown, cmd)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "missing data")

	// no instruction
	_, err = GetCommand(solana.NewTransaction(keys[0]).Message, 0)
	assert.NotNil(t, err)
}

func TestMintTo(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 4)

	instruction := MintTo(keys[1], keys[2], keys[3], 123456789)

	assert.Equal(t, ProgramKey, instruction.Program)
	assert.Equal(t, []byte{7, 0x15, 0xcd, 0x5b, 0x07, 0, 0, 0, 0}, instruction.Data)

	require.Len(t, instruction.Accounts, 3)
	assert.Equal(t, keys[1], instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.Equal(t, keys[2], instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.Equal(t, keys[3], instruction.Accounts[2].PublicKey)
	assert.False(t, instruction.Accounts[2].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)

	cmd, err := GetCommand(solana.NewTransaction(keys[0], instruction).Message, 0)
	require.NoError(t, err)
	assert.Equal(t, CommandMintTo, cmd)

	decompiled, err := DecompileMintTo(solana.NewTransaction(keys[0], instruction).Message, 0)
	require.NoError(t, err)
	assert.Equal(t, keys[1], decompiled.Mint)
	assert.Equal(t, keys[2], decompiled.Destination)
	assert.Equal(t, keys[3], decompiled.Authority)
	assert.EqualValues(t, 123456789, decompiled.Amount)

	// Mess with the instruction for validation
	instruction.Data = instruction.Data[:len(instruction.Data)-1]
	_, err = DecompileMintTo(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid instruction data size"))

	instruction.Accounts = instruction.Accounts[:2]
	_, err = DecompileMintTo(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid number of accounts"))

	instruction.Data[0] = byte(CommandTransfer)
	_, err = DecompileMintTo(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	instruction.Data = nil
	_, err = DecompileMintTo(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	instruction.Program = keys[3]
	_, err = DecompileMintTo(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)
}

func TestErrorCodes(t *testing.T) {
	assert.EqualValues(t, 0, ErrorNotRentExempt)
	assert.EqualValues(t, 14, ErrorOverflow)
	assert.EqualValues(t, 17, ErrorAccountFrozen)
	assert.Equal(t, "custom program error: 11", ErrorAccountFrozen.Error())
}
