package solana

import (
	"bytes"
	"crypto/ed25519"
)

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	isPayer    bool
	isProgram  bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// merge promotes the permissions of a with those of another reference to the
// same account.
func (a *AccountMeta) merge(other AccountMeta) {
	a.IsSigner = a.IsSigner || other.IsSigner
	a.IsWritable = a.IsWritable || other.IsWritable
	a.isPayer = a.isPayer || other.isPayer
}

// compareAccountMeta orders accounts for a message:
//  1. The payer is always first.
//  2. Programs are last.
//  3. Signers before non-signers.
//  4. Writable before readonly.
//
// Ties are broken by public key so the order is deterministic.
//
// Reference: https://docs.solana.com/transaction#account-addresses-format
func compareAccountMeta(a, b AccountMeta) int {
	switch {
	case a.isPayer != b.isPayer:
		return boolOrder(a.isPayer)
	case a.isProgram != b.isProgram:
		return -boolOrder(a.isProgram)
	case a.IsSigner != b.IsSigner:
		return boolOrder(a.IsSigner)
	case a.IsWritable != b.IsWritable:
		return boolOrder(a.IsWritable)
	}
	return bytes.Compare(a.PublicKey, b.PublicKey)
}

func boolOrder(first bool) int {
	if first {
		return -1
	}
	return 1
}

// Instruction represents a transaction instruction.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// CompiledInstruction is an instruction within a message, referencing its
// program and accounts by index into the message's account list.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}
