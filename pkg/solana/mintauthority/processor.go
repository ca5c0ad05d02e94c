package mintauthority

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/mint-authority/pkg/metrics"
	"github.com/code-payments/mint-authority/pkg/solana"
)

const (
	metricsStructName = "mintauthority.processor"

	processedInstructionsMetricName = "MintAuthority/ProcessedInstructions"
	mintedAmountMetricName          = "MintAuthority/MintedAmount"
	ledgerMintToDurationMetricName  = "MintAuthority/LedgerMintToDuration"

	tokensMintedEventName = "MintAuthorityTokensMinted"
)

// Processor is the program entrypoint. Each call to Process handles a single
// instruction to completion. The runtime guarantees exclusive access to any
// writable account buffer for the duration of the call, so the Processor
// holds no locks and keeps no state between calls.
type Processor struct {
	log    *logrus.Entry
	conf   *conf
	ledger Ledger
}

func NewProcessor(ledger Ledger, configProvider ConfigProvider) *Processor {
	return &Processor{
		log:    logrus.StandardLogger().WithField("type", "solana/mintauthority/processor"),
		conf:   configProvider(),
		ledger: ledger,
	}
}

// Process decodes and executes one instruction against the provided accounts.
// Only accounts passed by the caller are ever read or written. Errors from the
// ledger are returned unchanged. Use ErrorKey or ToInstructionError to obtain
// the result code reported to the runtime.
func (p *Processor) Process(ctx context.Context, programID ed25519.PublicKey, accounts []*solana.AccountInfo, data []byte) error {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Process")
	defer tracer.End()

	if len(data) > 0 {
		tracer.AddAttribute("instruction", InstructionType(data[0]).String())
	}

	err := p.process(ctx, programID, accounts, data)
	tracer.OnError(err)
	return err
}

func (p *Processor) process(ctx context.Context, programID ed25519.PublicKey, accounts []*solana.AccountInfo, data []byte) error {
	log := p.log.WithField("method", "Process")

	if err := p.checkProgramID(ctx, programID); err != nil {
		log.WithError(err).Warn("rejecting instruction for unexpected program")
		return err
	}

	instruction, err := DecodeInstruction(data)
	if err != nil {
		log.WithError(err).Debug("failed to decode instruction")
		return err
	}

	metrics.RecordCount(ctx, processedInstructionsMetricName, 1)

	log = log.WithField("instruction", instruction.Type().String())
	log.Debug("processing instruction")

	switch typed := instruction.(type) {
	case *MintTokensInstructionArgs:
		return p.processMintTokens(ctx, accounts, typed)
	case *UpgradeProgramInstructionArgs:
		return p.processUpgradeProgram(ctx, typed)
	default:
		return errors.Wrapf(ErrInvalidInstructionData, "unhandled instruction type: %d", instruction.Type())
	}
}

// Accounts expected by MintTokens:
//
//	0. `[writable]` The mint account holding the MintRecord.
//	1. `[writable]` The token account receiving the minted tokens.
//	2. `[signer]` The mint authority.
//
// All local validation happens before the ledger call, which is the only step
// that can't be undone. The updated record is committed only after the ledger
// reports success.
func (p *Processor) processMintTokens(ctx context.Context, accounts []*solana.AccountInfo, args *MintTokensInstructionArgs) error {
	log := p.log.WithFields(logrus.Fields{
		"method": "processMintTokens",
		"amount": args.Amount,
	})

	if len(accounts) < mintTokensInstructionAccountCount {
		log.WithField("account_count", len(accounts)).Warn("not enough accounts provided")
		return errors.Wrapf(ErrMissingAccount, "mint tokens requires %d accounts, got %d", mintTokensInstructionAccountCount, len(accounts))
	}

	mintAccount := accounts[0]
	destinationAccount := accounts[1]
	authorityAccount := accounts[2]
	if mintAccount == nil || destinationAccount == nil || authorityAccount == nil {
		return errors.Wrap(ErrMissingAccount, "nil account handle")
	}

	log = log.WithFields(logrus.Fields{
		"mint":        base58.Encode(mintAccount.PublicKey),
		"destination": base58.Encode(destinationAccount.PublicKey),
		"authority":   base58.Encode(authorityAccount.PublicKey),
	})

	if !authorityAccount.IsSigner {
		log.Warn("authority did not sign")
		return ErrMissingRequiredSignature
	}

	var record MintRecord
	if err := record.Unmarshal(mintAccount.Data); err != nil {
		log.WithError(err).Warn("failed to load mint record")
		return err
	}

	newTotalSupply, ok := checkedAddUint64(record.TotalSupply, args.Amount)
	if !ok {
		log.WithField("total_supply", record.TotalSupply).Warn("total supply would overflow")
		return ErrArithmeticOverflow
	}

	start := time.Now()
	err := p.ledger.MintTo(
		ctx,
		mintAccount.PublicKey,
		destinationAccount.PublicKey,
		authorityAccount.PublicKey,
		args.Amount,
	)
	metrics.RecordDuration(ctx, ledgerMintToDurationMetricName, time.Since(start))
	if err != nil {
		log.WithError(err).Warn("ledger rejected mint")
		return err
	}

	record.TotalSupply = newTotalSupply
	if err := record.MarshalInto(mintAccount.Data); err != nil {
		// Not reachable in practice: the buffer was validated by Unmarshal above
		log.WithError(err).Error("failed to store mint record after ledger mint")
		return err
	}

	metrics.RecordCount(ctx, mintedAmountMetricName, args.Amount)
	metrics.RecordEvent(ctx, tokensMintedEventName, map[string]interface{}{
		"mint":         base58.Encode(mintAccount.PublicKey),
		"amount":       args.Amount,
		"total_supply": record.TotalSupply,
	})

	log.WithField("total_supply", record.TotalSupply).Info("minted tokens")
	return nil
}

// UpgradeProgram is accepted and ignored. Upgrades are performed by
// redeploying the program binary, so no account is read or written here.
func (p *Processor) processUpgradeProgram(ctx context.Context, args *UpgradeProgramInstructionArgs) error {
	p.log.WithFields(logrus.Fields{
		"method":         "processUpgradeProgram",
		"new_program_id": base58.Encode(args.NewProgramId),
	}).Info("upgrade program signal received")

	return nil
}

func (p *Processor) checkProgramID(ctx context.Context, programID ed25519.PublicKey) error {
	if p.conf.disableProgramIdCheck.Get(ctx) {
		return nil
	}

	expected, err := p.conf.programAddress.GetSafe(ctx)
	if err != nil {
		return errors.Wrap(ErrIncorrectProgram, "invalid configured program address")
	}

	if !bytes.Equal(expected, programID) {
		return ErrIncorrectProgram
	}

	return nil
}
