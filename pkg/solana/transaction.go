package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"slices"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy transaction message. Versioned messages aren't needed
// for instructions targeting the mint authority program.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into an unsigned legacy
// transaction paid for by payer.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}
	for _, i := range instructions {
		accounts = append(accounts, AccountMeta{
			PublicKey: i.Program,
			isProgram: true,
		})
		accounts = append(accounts, i.Accounts...)
	}

	accounts = filterUnique(accounts)
	slices.SortFunc(accounts, compareAccountMeta)

	var m Message
	for _, account := range accounts {
		m.Accounts = append(m.Accounts, account.PublicKey)

		switch {
		case account.IsSigner && !account.IsWritable:
			m.Header.NumSignatures++
			m.Header.NumReadonlySigned++
		case account.IsSigner:
			m.Header.NumSignatures++
		case !account.IsWritable:
			m.Header.NumReadOnly++
		}
	}

	for _, i := range instructions {
		c := CompiledInstruction{
			ProgramIndex: byte(indexOf(m.Accounts, i.Program)),
			Accounts:     make([]byte, 0, len(i.Accounts)),
			Data:         i.Data,
		}
		for _, a := range i.Accounts {
			c.Accounts = append(c.Accounts, byte(indexOf(m.Accounts, a.PublicKey)))
		}

		m.Instructions = append(m.Instructions, c)
	}

	// Unset keys are encoded as the zero key
	for i := range m.Accounts {
		if len(m.Accounts[i]) == 0 {
			m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		}
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// IsSigner reports whether the account at index is required to sign the message.
func (m Message) IsSigner(index int) bool {
	return index >= 0 && index < int(m.Header.NumSignatures)
}

// IsWritable reports whether the account at index is writable, following the
// header's ordering of signed/unsigned and writable/readonly accounts.
func (m Message) IsWritable(index int) bool {
	if index < 0 || index >= len(m.Accounts) {
		return false
	}

	if m.IsSigner(index) {
		return index < int(m.Header.NumSignatures)-int(m.Header.NumReadonlySigned)
	}

	return index < len(m.Accounts)-int(m.Header.NumReadOnly)
}

func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

func (t *Transaction) String() string {
	var sb strings.Builder

	fmt.Fprintln(&sb, "Signatures:")
	for i, s := range t.Signatures {
		fmt.Fprintf(&sb, "  %d: %s\n", i, base58.Encode(s[:]))
	}

	header := t.Message.Header
	fmt.Fprintln(&sb, "Message:")
	fmt.Fprintf(&sb, "  Header: signatures=%d readonly_signed=%d readonly=%d\n", header.NumSignatures, header.NumReadonlySigned, header.NumReadOnly)

	fmt.Fprintln(&sb, "  Accounts:")
	for i, a := range t.Message.Accounts {
		fmt.Fprintf(&sb, "    %d: %s (signer=%v, writable=%v)\n", i, base58.Encode(a), t.Message.IsSigner(i), t.Message.IsWritable(i))
	}

	fmt.Fprintln(&sb, "  Instructions:")
	for i, c := range t.Message.Instructions {
		fmt.Fprintf(&sb, "    %d: program=%d accounts=%v data=%v\n", i, c.ProgramIndex, c.Accounts, c.Data)
	}

	return sb.String()
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

// VerifySignatures reports whether every required signer produced a valid
// signature over the message.
func (t *Transaction) VerifySignatures() bool {
	if len(t.Signatures) != int(t.Message.Header.NumSignatures) {
		return false
	}
	if len(t.Message.Accounts) < len(t.Signatures) {
		return false
	}

	messageBytes := t.Message.Marshal()
	for i, s := range t.Signatures {
		if !ed25519.Verify(t.Message.Accounts[i], messageBytes, s[:]) {
			return false
		}
	}

	return true
}

// filterUnique removes duplicate references to the same account, keeping the
// first occurrence with the union of all requested permissions.
func filterUnique(accounts []AccountMeta) []AccountMeta {
	filtered := make([]AccountMeta, 0, len(accounts))
	seen := make(map[string]int, len(accounts))

	for _, account := range accounts {
		key := string(account.PublicKey)
		if j, ok := seen[key]; ok {
			filtered[j].merge(account)
			continue
		}

		seen[key] = len(filtered)
		filtered = append(filtered, account)
	}

	return filtered
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}

	return -1
}
