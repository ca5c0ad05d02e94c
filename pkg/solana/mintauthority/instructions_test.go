package mintauthority

import (
	"crypto/ed25519"
	"encoding/binary"
	"math"
	mrand "math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mint-authority/pkg/solana"
	"github.com/code-payments/mint-authority/pkg/testutil"
)

func TestDecodeInstruction_Empty(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		_, err := DecodeInstruction(data)
		assert.True(t, errors.Is(err, ErrInvalidInstructionData))
	}
}

func TestDecodeInstruction_MintTokens(t *testing.T) {
	data := []byte{0, 0xe8, 0x03, 0, 0, 0, 0, 0, 0}

	decoded, err := DecodeInstruction(data)
	require.NoError(t, err)
	require.Equal(t, InstructionTypeMintTokens, decoded.Type())

	args, ok := decoded.(*MintTokensInstructionArgs)
	require.True(t, ok)
	assert.EqualValues(t, 1000, args.Amount)
	assert.Equal(t, data, decoded.Marshal())
}

func TestDecodeInstruction_MintTokensPayloadSize(t *testing.T) {
	for size := 0; size <= 16; size++ {
		data := append([]byte{byte(InstructionTypeMintTokens)}, make([]byte, size)...)

		_, err := DecodeInstruction(data)
		if size == MintTokensInstructionArgsSize {
			assert.NoError(t, err)
		} else {
			assert.True(t, errors.Is(err, ErrInvalidInstructionData), "payload size %d", size)
		}
	}
}

func TestDecodeInstruction_MintTokensRoundTrip(t *testing.T) {
	amounts := []uint64{0, 1, 1000, math.MaxUint32, math.MaxUint64 - 1, math.MaxUint64}
	for i := 0; i < 256; i++ {
		amounts = append(amounts, mrand.Uint64())
	}

	for _, amount := range amounts {
		args := &MintTokensInstructionArgs{Amount: amount}

		data := args.Marshal()
		require.Len(t, data, 1+MintTokensInstructionArgsSize)
		assert.EqualValues(t, InstructionTypeMintTokens, data[0])
		assert.Equal(t, amount, binary.LittleEndian.Uint64(data[1:]))

		decoded, err := DecodeInstruction(data)
		require.NoError(t, err)
		assert.Equal(t, args, decoded)
	}
}

func TestDecodeInstruction_UpgradeProgram(t *testing.T) {
	newProgramId := generateKey(t)

	data := append([]byte{byte(InstructionTypeUpgradeProgram)}, newProgramId...)

	decoded, err := DecodeInstruction(data)
	require.NoError(t, err)
	require.Equal(t, InstructionTypeUpgradeProgram, decoded.Type())

	args, ok := decoded.(*UpgradeProgramInstructionArgs)
	require.True(t, ok)
	assert.Equal(t, newProgramId, args.NewProgramId)
	assert.Equal(t, data, decoded.Marshal())
}

func TestDecodeInstruction_UpgradeProgramPayloadSize(t *testing.T) {
	payload := make([]byte, 64)
	for i := range payload {
		payload[i] = byte(i + 1)
	}

	for size := 0; size <= len(payload); size++ {
		data := append([]byte{byte(InstructionTypeUpgradeProgram)}, payload[:size]...)

		decoded, err := DecodeInstruction(data)
		if size < UpgradeProgramInstructionArgsSize {
			assert.True(t, errors.Is(err, ErrInvalidInstructionData), "payload size %d", size)
			continue
		}

		// Trailing bytes are ignored
		require.NoError(t, err, "payload size %d", size)
		assert.EqualValues(t, payload[:UpgradeProgramInstructionArgsSize], decoded.(*UpgradeProgramInstructionArgs).NewProgramId)
		assert.Len(t, decoded.Marshal(), 1+UpgradeProgramInstructionArgsSize)
	}
}

func TestDecodeInstruction_UnknownType(t *testing.T) {
	for tag := 2; tag <= math.MaxUint8; tag++ {
		for _, data := range [][]byte{
			{byte(tag)},
			append([]byte{byte(tag)}, make([]byte, 8)...),
			append([]byte{byte(tag)}, make([]byte, 32)...),
		} {
			_, err := DecodeInstruction(data)
			assert.True(t, errors.Is(err, ErrInvalidInstructionData), "tag %d", tag)
		}
	}
}

func TestInstructionType_String(t *testing.T) {
	assert.Equal(t, "mint_tokens", InstructionTypeMintTokens.String())
	assert.Equal(t, "upgrade_program", InstructionTypeUpgradeProgram.String())
	assert.Equal(t, "unknown", InstructionTypeUnknown.String())
	assert.Equal(t, "unknown", InstructionType(42).String())
}

func TestMintTokensInstruction(t *testing.T) {
	mint := generateKey(t)
	destination := generateKey(t)
	authority := generateKey(t)

	instruction := NewMintTokensInstruction(
		&MintTokensInstructionAccounts{
			Mint:        mint,
			Destination: destination,
			Authority:   authority,
		},
		&MintTokensInstructionArgs{
			Amount: 1000,
		},
	)

	assert.EqualValues(t, PROGRAM_ID, instruction.Program)
	assert.Equal(t, []byte{0, 0xe8, 0x03, 0, 0, 0, 0, 0, 0}, instruction.Data)
	require.Len(t, instruction.Accounts, 3)
	assert.Equal(t, solana.NewAccountMeta(mint, false), instruction.Accounts[0])
	assert.Equal(t, solana.NewAccountMeta(destination, false), instruction.Accounts[1])
	assert.Equal(t, solana.NewReadonlyAccountMeta(authority, true), instruction.Accounts[2])

	tx := solana.NewTransaction(authority, instruction)

	instructionType, err := GetInstructionType(tx.Message, 0)
	require.NoError(t, err)
	assert.Equal(t, InstructionTypeMintTokens, instructionType)

	decompiled, err := DecompileMintTokens(tx.Message, 0)
	require.NoError(t, err)
	assert.Equal(t, mint, decompiled.Mint)
	assert.Equal(t, destination, decompiled.Destination)
	assert.Equal(t, authority, decompiled.Authority)
	assert.EqualValues(t, 1000, decompiled.Amount)

	_, err = DecompileUpgradeProgram(tx.Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	_, err = DecompileMintTokens(tx.Message, 1)
	assert.Error(t, err)
}

func TestUpgradeProgramInstruction(t *testing.T) {
	authority := generateKey(t)
	newProgramId := generateKey(t)

	instruction := NewUpgradeProgramInstruction(
		&UpgradeProgramInstructionAccounts{
			Authority: authority,
		},
		&UpgradeProgramInstructionArgs{
			NewProgramId: newProgramId,
		},
	)

	assert.EqualValues(t, PROGRAM_ID, instruction.Program)
	assert.Equal(t, append([]byte{1}, newProgramId...), instruction.Data)
	require.Len(t, instruction.Accounts, 1)
	assert.Equal(t, solana.NewReadonlyAccountMeta(authority, true), instruction.Accounts[0])

	tx := solana.NewTransaction(authority, instruction)

	instructionType, err := GetInstructionType(tx.Message, 0)
	require.NoError(t, err)
	assert.Equal(t, InstructionTypeUpgradeProgram, instructionType)

	decompiled, err := DecompileUpgradeProgram(tx.Message, 0)
	require.NoError(t, err)
	assert.Equal(t, authority, decompiled.Authority)
	assert.Equal(t, newProgramId, decompiled.NewProgramId)

	_, err = DecompileMintTokens(tx.Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)
}

func TestGetInstructionType_OtherProgram(t *testing.T) {
	payer := generateKey(t)

	tx := solana.NewTransaction(
		payer,
		solana.NewInstruction(generateKey(t), []byte{0}, solana.NewAccountMeta(generateKey(t), false)),
	)

	_, err := GetInstructionType(tx.Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	_, err = DecompileMintTokens(tx.Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	_, err = GetInstructionType(tx.Message, 1)
	assert.Error(t, err)
}

func generateKey(t *testing.T) ed25519.PublicKey {
	return testutil.GenerateSolanaKeys(t, 1)[0]
}
