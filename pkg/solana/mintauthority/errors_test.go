package mintauthority

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mint-authority/pkg/solana"
	"github.com/code-payments/mint-authority/pkg/solana/token"
)

func TestErrorKey(t *testing.T) {
	for _, tc := range []struct {
		err      error
		expected solana.InstructionErrorKey
	}{
		{nil, ""},
		{ErrInvalidInstructionData, solana.InstructionErrorInvalidInstructionData},
		{errors.Wrap(ErrInvalidInstructionData, "detail"), solana.InstructionErrorInvalidInstructionData},
		{ErrMissingAccount, solana.InstructionErrorNotEnoughAccountKeys},
		{ErrMissingRequiredSignature, solana.InstructionErrorMissingRequiredSignature},
		{ErrInvalidAccountData, solana.InstructionErrorInvalidAccountData},
		{ErrAccountDataTooSmall, solana.InstructionErrorAccountDataTooSmall},
		{ErrAccountAlreadyInitialized, solana.InstructionErrorAccountAlreadyInitialized},
		{ErrArithmeticOverflow, solana.InstructionErrorArithmeticOverflow},
		{ErrIncorrectProgram, solana.InstructionErrorIncorrectProgramID},
		{errors.Wrap(ErrIncorrectProgram, "detail"), solana.InstructionErrorIncorrectProgramID},
		{solana.CustomError(token.ErrorAccountFrozen), solana.InstructionErrorCustom},
		{solana.NewInstructionError(0, solana.InstructionErrorInsufficientFunds), solana.InstructionErrorInsufficientFunds},
		{errors.New("something else"), solana.InstructionErrorGenericError},
	} {
		assert.Equal(t, tc.expected, ErrorKey(tc.err), "%v", tc.err)
	}
}

func TestToInstructionError(t *testing.T) {
	assert.Nil(t, ToInstructionError(0, nil))

	actual := ToInstructionError(2, errors.Wrap(ErrMissingRequiredSignature, "authority"))
	require.NotNil(t, actual)
	assert.Equal(t, 2, actual.Index)
	assert.Equal(t, solana.InstructionErrorMissingRequiredSignature, actual.ErrorKey())
	assert.Equal(t, `[2, "MissingRequiredSignature"]`, actual.JSONString())

	actual = ToInstructionError(1, solana.CustomError(token.ErrorAccountFrozen))
	require.NotNil(t, actual)
	assert.Equal(t, 1, actual.Index)
	assert.Equal(t, solana.InstructionErrorCustom, actual.ErrorKey())
	require.NotNil(t, actual.CustomError())
	assert.EqualValues(t, token.ErrorAccountFrozen, *actual.CustomError())

	actual = ToInstructionError(3, solana.NewInstructionError(0, solana.InstructionErrorInsufficientFunds))
	require.NotNil(t, actual)
	assert.Equal(t, 3, actual.Index)
	assert.Equal(t, solana.InstructionErrorInsufficientFunds, actual.ErrorKey())

	actual = ToInstructionError(0, errors.New("unexpected"))
	require.NotNil(t, actual)
	assert.Equal(t, solana.InstructionErrorGenericError, actual.ErrorKey())
}
