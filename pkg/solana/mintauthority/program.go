package mintauthority

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/mint-authority/pkg/solana"
)

var (
	ErrInvalidInstructionData    = errors.New("invalid instruction data")
	ErrInvalidAccountData        = errors.New("invalid account data")
	ErrAccountDataTooSmall       = errors.New("account data too small")
	ErrAccountAlreadyInitialized = errors.New("account already initialized")
	ErrMissingAccount            = errors.New("missing account")
	ErrMissingRequiredSignature  = errors.New("missing required signature")
	ErrArithmeticOverflow        = errors.New("arithmetic overflow")
	ErrIncorrectProgram          = solana.ErrIncorrectProgram
)

var (
	PROGRAM_ADDRESS = mustBase58Decode(defaultProgramAddress)
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)
