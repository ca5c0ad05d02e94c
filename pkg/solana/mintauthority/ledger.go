package mintauthority

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/mint-authority/pkg/solana"
	"github.com/code-payments/mint-authority/pkg/solana/token"
)

// Ledger is the external token ledger that performs the actual balance update
// for a mint. A MintTo call is irreversible from the program's perspective.
type Ledger interface {
	MintTo(ctx context.Context, mint, destination, authority ed25519.PublicKey, amount uint64) error
}

// Invoker is the runtime's cross-program invocation capability
type Invoker interface {
	Invoke(ctx context.Context, instruction solana.Instruction) error
}

// InvokerFunc adapts a function to an Invoker
type InvokerFunc func(ctx context.Context, instruction solana.Instruction) error

func (f InvokerFunc) Invoke(ctx context.Context, instruction solana.Instruction) error {
	return f(ctx, instruction)
}

type tokenProgramLedger struct {
	log     *logrus.Entry
	invoker Invoker
}

// NewTokenProgramLedger returns a Ledger that mints through the token program
// using the runtime's cross-program invocation capability.
func NewTokenProgramLedger(invoker Invoker) Ledger {
	return &tokenProgramLedger{
		log:     logrus.StandardLogger().WithField("type", "solana/mintauthority/ledger"),
		invoker: invoker,
	}
}

// MintTo implements Ledger.MintTo. Errors from the invoker are returned as-is
// so the caller sees the token program's own failure.
func (l *tokenProgramLedger) MintTo(ctx context.Context, mint, destination, authority ed25519.PublicKey, amount uint64) error {
	log := l.log.WithFields(logrus.Fields{
		"method":      "MintTo",
		"mint":        base58.Encode(mint),
		"destination": base58.Encode(destination),
		"amount":      amount,
	})

	err := l.invoker.Invoke(ctx, token.MintTo(mint, destination, authority, amount))
	if err != nil {
		log.WithError(err).Debug("token program rejected mint")
		return err
	}

	return nil
}
