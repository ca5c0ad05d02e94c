package solana

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/mint-authority/pkg/solana/shortvec"
)

// Marshal returns the wire encoding of the transaction: a shortvec prefixed
// list of signatures followed by the message.
func (t Transaction) Marshal() []byte {
	b := make([]byte, 0, MaxTransactionSize)

	b = mustAppendLen(b, len(t.Signatures))
	for _, s := range t.Signatures {
		b = append(b, s[:]...)
	}

	return append(b, t.Message.Marshal()...)
}

func (t *Transaction) Unmarshal(b []byte) error {
	r := &reader{src: b}

	sigLen, err := r.readLen()
	if err != nil {
		return errors.Wrap(err, "failed to read signature length")
	}

	t.Signatures = make([]Signature, sigLen)
	for i := range t.Signatures {
		sig, err := r.read(ed25519.SignatureSize)
		if err != nil {
			return errors.Wrapf(err, "failed to read signature at %d", i)
		}
		copy(t.Signatures[i][:], sig)
	}

	return t.Message.Unmarshal(r.remaining())
}

// Marshal returns the legacy wire encoding of the message, which is also the
// payload covered by each signature.
func (m Message) Marshal() []byte {
	b := []byte{
		m.Header.NumSignatures,
		m.Header.NumReadonlySigned,
		m.Header.NumReadOnly,
	}

	b = mustAppendLen(b, len(m.Accounts))
	for _, a := range m.Accounts {
		b = append(b, a...)
	}

	b = append(b, m.RecentBlockhash[:]...)

	b = mustAppendLen(b, len(m.Instructions))
	for _, i := range m.Instructions {
		b = append(b, i.ProgramIndex)

		b = mustAppendLen(b, len(i.Accounts))
		b = append(b, i.Accounts...)

		b = mustAppendLen(b, len(i.Data))
		b = append(b, i.Data...)
	}

	return b
}

func (m *Message) Unmarshal(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	if b[0]&0x80 != 0 {
		return errors.New("versioned messages not supported")
	}

	r := &reader{src: b}

	header, err := r.read(3)
	if err != nil {
		return errors.Wrap(err, "failed to read header")
	}
	m.Header = Header{
		NumSignatures:     header[0],
		NumReadonlySigned: header[1],
		NumReadOnly:       header[2],
	}

	accountLen, err := r.readLen()
	if err != nil {
		return errors.Wrap(err, "failed to read account len")
	}
	m.Accounts = make([]ed25519.PublicKey, accountLen)
	for i := range m.Accounts {
		account, err := r.readCopy(ed25519.PublicKeySize)
		if err != nil {
			return errors.Wrapf(err, "failed to read account at index %d", i)
		}
		m.Accounts[i] = account
	}

	blockhash, err := r.read(len(m.RecentBlockhash))
	if err != nil {
		return errors.Wrap(err, "failed to read recent block hash")
	}
	copy(m.RecentBlockhash[:], blockhash)

	instructionLen, err := r.readLen()
	if err != nil {
		return errors.Wrap(err, "failed to read instruction len")
	}
	m.Instructions = make([]CompiledInstruction, instructionLen)
	for i := range m.Instructions {
		c, err := m.readInstruction(r)
		if err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d]", i)
		}
		m.Instructions[i] = c
	}

	return nil
}

func (m *Message) readInstruction(r *reader) (c CompiledInstruction, err error) {
	programIndex, err := r.read(1)
	if err != nil {
		return c, errors.Wrap(err, "program index")
	}
	c.ProgramIndex = programIndex[0]
	if int(c.ProgramIndex) >= len(m.Accounts) {
		return c, errors.Errorf("program index out of range: %d", c.ProgramIndex)
	}

	accountLen, err := r.readLen()
	if err != nil {
		return c, errors.Wrap(err, "account len")
	}
	if c.Accounts, err = r.readCopy(accountLen); err != nil {
		return c, errors.Wrap(err, "accounts")
	}
	for _, index := range c.Accounts {
		if int(index) >= len(m.Accounts) {
			return c, errors.Errorf("account index out of range: %d", index)
		}
	}

	dataLen, err := r.readLen()
	if err != nil {
		return c, errors.Wrap(err, "data len")
	}
	if c.Data, err = r.readCopy(dataLen); err != nil {
		return c, errors.Wrap(err, "data")
	}

	return c, nil
}

// reader walks a wire encoded buffer, failing on reads past its end
type reader struct {
	src    []byte
	offset int
}

func (r *reader) read(n int) ([]byte, error) {
	if n > len(r.src)-r.offset {
		return nil, errors.Errorf("unexpected end of data: need %d bytes, have %d", n, len(r.src)-r.offset)
	}

	b := r.src[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *reader) readCopy(n int) ([]byte, error) {
	b, err := r.read(n)
	if err != nil {
		return nil, err
	}
	return append(make([]byte, 0, n), b...), nil
}

func (r *reader) readLen() (int, error) {
	return shortvec.DecodeLen(r.src, &r.offset)
}

func (r *reader) remaining() []byte {
	return r.src[r.offset:]
}

// Lengths in a message are bounded well below the shortvec limit by the
// transaction size, so encoding can't fail for a message that fits on chain.
func mustAppendLen(b []byte, n int) []byte {
	b, err := shortvec.AppendLen(b, n)
	if err != nil {
		panic(err)
	}
	return b
}
