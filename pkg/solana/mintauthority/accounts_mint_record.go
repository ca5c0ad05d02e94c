package mintauthority

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/mint-authority/pkg/solana"
	"github.com/code-payments/mint-authority/pkg/solana/binary"
)

const (
	MintRecordSize = (32 + // mint
		32 + // owner
		8) // total_supply
)

// MintRecord is the state persisted in a mint account's data buffer
type MintRecord struct {
	Mint        ed25519.PublicKey
	Owner       ed25519.PublicKey
	TotalSupply uint64
}

// NewMintRecord returns a record for a newly administered mint. The supply
// counter always starts at zero.
func NewMintRecord(mint, owner ed25519.PublicKey) *MintRecord {
	record := &MintRecord{
		Mint:  make(ed25519.PublicKey, ed25519.PublicKeySize),
		Owner: make(ed25519.PublicKey, ed25519.PublicKeySize),
	}
	copy(record.Mint, mint)
	copy(record.Owner, owner)
	return record
}

// InitializeMintRecord writes a fresh record into a zeroed account buffer.
// It's a provisioning step performed outside of instruction processing, and
// refuses to overwrite a buffer that already holds data. The buffer must be
// exactly MintRecordSize bytes, since that's the only size Unmarshal accepts.
func InitializeMintRecord(account *solana.AccountInfo, mint, owner ed25519.PublicKey) error {
	if account == nil {
		return ErrMissingAccount
	}
	if len(mint) != ed25519.PublicKeySize || len(owner) != ed25519.PublicKeySize {
		return errors.Wrap(ErrInvalidAccountData, "mint and owner must be 32 byte keys")
	}
	if len(account.Data) < MintRecordSize {
		return errors.Wrapf(ErrAccountDataTooSmall, "%d bytes (expect %d)", len(account.Data), MintRecordSize)
	}
	if len(account.Data) != MintRecordSize {
		return errors.Wrapf(ErrInvalidAccountData, "invalid mint record size: %d (expect %d)", len(account.Data), MintRecordSize)
	}
	if !isZeroed(account.Data) {
		return ErrAccountAlreadyInitialized
	}

	return NewMintRecord(mint, owner).MarshalInto(account.Data)
}

// Marshal returns the fixed size encoding of the record
func (obj *MintRecord) Marshal() []byte {
	data := make([]byte, MintRecordSize)

	var offset int
	binary.PutKey32(data, obj.Mint, &offset)
	binary.PutKey32(data, obj.Owner, &offset)
	binary.PutUint64(data, obj.TotalSupply, &offset)

	return data
}

// MarshalInto writes the record into the leading bytes of an existing buffer
// without resizing it. Nothing is written when an error is returned.
func (obj *MintRecord) MarshalInto(dst []byte) error {
	if len(dst) < MintRecordSize {
		return errors.Wrapf(ErrAccountDataTooSmall, "%d bytes (expect at least %d)", len(dst), MintRecordSize)
	}
	if len(obj.Mint) != ed25519.PublicKeySize || len(obj.Owner) != ed25519.PublicKeySize {
		return errors.Wrap(ErrInvalidAccountData, "mint and owner must be 32 byte keys")
	}

	copy(dst, obj.Marshal())
	return nil
}

func (obj *MintRecord) Unmarshal(data []byte) error {
	if len(data) != MintRecordSize {
		return errors.Wrapf(ErrInvalidAccountData, "invalid mint record size: %d (expect %d)", len(data), MintRecordSize)
	}

	var offset int

	binary.GetKey32(data, &obj.Mint, &offset)
	binary.GetKey32(data, &obj.Owner, &offset)
	binary.GetUint64(data, &obj.TotalSupply, &offset)

	return nil
}

func (obj *MintRecord) String() string {
	return fmt.Sprintf(
		"MintRecord{mint=%s,owner=%s,total_supply=%d}",
		base58.Encode(obj.Mint),
		base58.Encode(obj.Owner),
		obj.TotalSupply,
	)
}
