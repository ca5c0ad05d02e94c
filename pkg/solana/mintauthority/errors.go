package mintauthority

import (
	"github.com/pkg/errors"

	"github.com/code-payments/mint-authority/pkg/solana"
)

// ErrorKey maps an error returned by the Processor to the runtime's
// instruction error key. A nil error maps to the empty key.
func ErrorKey(err error) solana.InstructionErrorKey {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidInstructionData):
		return solana.InstructionErrorInvalidInstructionData
	case errors.Is(err, ErrMissingAccount):
		return solana.InstructionErrorNotEnoughAccountKeys
	case errors.Is(err, ErrMissingRequiredSignature):
		return solana.InstructionErrorMissingRequiredSignature
	case errors.Is(err, ErrInvalidAccountData):
		return solana.InstructionErrorInvalidAccountData
	case errors.Is(err, ErrAccountDataTooSmall):
		return solana.InstructionErrorAccountDataTooSmall
	case errors.Is(err, ErrAccountAlreadyInitialized):
		return solana.InstructionErrorAccountAlreadyInitialized
	case errors.Is(err, ErrArithmeticOverflow):
		return solana.InstructionErrorArithmeticOverflow
	case errors.Is(err, ErrIncorrectProgram):
		return solana.InstructionErrorIncorrectProgramID
	}

	var customErr solana.CustomError
	if errors.As(err, &customErr) {
		return solana.InstructionErrorCustom
	}

	var instructionErr *solana.InstructionError
	if errors.As(err, &instructionErr) {
		return instructionErr.ErrorKey()
	}

	return solana.InstructionErrorGenericError
}

// ToInstructionError converts a Processor result into the InstructionError
// reported for the instruction at index. It returns nil on success.
func ToInstructionError(index int, err error) *solana.InstructionError {
	if err == nil {
		return nil
	}

	var customErr solana.CustomError
	if errors.As(err, &customErr) {
		return &solana.InstructionError{
			Index: index,
			Err:   customErr,
		}
	}

	var instructionErr *solana.InstructionError
	if errors.As(err, &instructionErr) && instructionErr.Err != nil {
		return &solana.InstructionError{
			Index: index,
			Err:   instructionErr.Err,
		}
	}

	return solana.NewInstructionError(index, ErrorKey(err))
}
