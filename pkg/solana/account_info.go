package solana

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// AccountInfo is the handle a runtime passes to a program for each account
// referenced by an instruction. Data is owned by the runtime and has a fixed
// size for the duration of the invocation.
type AccountInfo struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	Data       []byte
}

// NewAccountInfo creates a new AccountInfo over the provided data buffer.
func NewAccountInfo(pub ed25519.PublicKey, isSigner, isWritable bool, data []byte) *AccountInfo {
	return &AccountInfo{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: isWritable,
		Data:       data,
	}
}

// AccountInfosFromMessage builds the account handles for the instruction at
// index, resolving signer and writable flags from the message header. Data
// for each account is provided by the lookup function.
func AccountInfosFromMessage(m Message, index int, lookup func(ed25519.PublicKey) []byte) ([]*AccountInfo, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	infos := make([]*AccountInfo, len(i.Accounts))
	for j, accountIndex := range i.Accounts {
		if int(accountIndex) >= len(m.Accounts) {
			return nil, errors.Errorf("account index out of range: %d", accountIndex)
		}

		pub := m.Accounts[accountIndex]

		var data []byte
		if lookup != nil {
			data = lookup(pub)
		}

		infos[j] = NewAccountInfo(pub, m.IsSigner(int(accountIndex)), m.IsWritable(int(accountIndex)), data)
	}

	return infos, nil
}

func (a *AccountInfo) String() string {
	return fmt.Sprintf(
		"AccountInfo{public_key=%s,is_signer=%v,is_writable=%v,data_len=%d}",
		base58.Encode(a.PublicKey),
		a.IsSigner,
		a.IsWritable,
		len(a.Data),
	)
}
