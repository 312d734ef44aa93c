package transactions

import (
	"bytes"
	"fmt"
	"math"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

const SignatureLength = 64

// MessageHeader counts the signer and read-only accounts at the front and back of the key list.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndexes []uint8
	Data           []byte
}

// Message is a legacy transaction message.
type Message struct {
	Header          MessageHeader
	AccountKeys     []types.PublicKey
	RecentBlockhash types.PublicKey
	Instructions    []CompiledInstruction
}

type keyFlags struct {
	signer   bool
	writable bool
}

// CompileMessage orders accounts as writable signers (fee payer first), read-only signers,
// writable non-signers and read-only non-signers.
func CompileMessage(payer types.PublicKey, instructions []Instruction, blockhash types.PublicKey) (*Message, error) {
	var order []types.PublicKey
	flags := map[types.PublicKey]*keyFlags{}
	add := func(key types.PublicKey, signer, writable bool) {
		f, ok := flags[key]
		if !ok {
			f = &keyFlags{}
			flags[key] = f
			order = append(order, key)
		}
		f.signer = f.signer || signer
		f.writable = f.writable || writable
	}

	add(payer, true, true)
	for _, ix := range instructions {
		for _, account := range ix.Accounts {
			add(account.PublicKey, account.IsSigner, account.IsWritable)
		}
		add(ix.ProgramID, false, false)
	}

	var writableSigners, readonlySigners, writable, readonly []types.PublicKey
	for _, key := range order {
		f := flags[key]
		switch {
		case f.signer && f.writable:
			writableSigners = append(writableSigners, key)
		case f.signer:
			readonlySigners = append(readonlySigners, key)
		case f.writable:
			writable = append(writable, key)
		default:
			readonly = append(readonly, key)
		}
	}

	keys := make([]types.PublicKey, 0, len(order))
	keys = append(keys, writableSigners...)
	keys = append(keys, readonlySigners...)
	keys = append(keys, writable...)
	keys = append(keys, readonly...)
	if len(keys) > math.MaxUint8 {
		return nil, fmt.Errorf("too many accounts in transaction: %d", len(keys))
	}

	index := make(map[types.PublicKey]uint8, len(keys))
	for i, key := range keys {
		index[key] = uint8(i)
	}

	msg := &Message{
		Header: MessageHeader{
			NumRequiredSignatures:       uint8(len(writableSigners) + len(readonlySigners)),
			NumReadonlySignedAccounts:   uint8(len(readonlySigners)),
			NumReadonlyUnsignedAccounts: uint8(len(readonly)),
		},
		AccountKeys:     keys,
		RecentBlockhash: blockhash,
	}
	for _, ix := range instructions {
		compiled := CompiledInstruction{
			ProgramIDIndex: index[ix.ProgramID],
			AccountIndexes: make([]uint8, len(ix.Accounts)),
			Data:           ix.Data,
		}
		for i, account := range ix.Accounts {
			compiled.AccountIndexes[i] = index[account.PublicKey]
		}
		msg.Instructions = append(msg.Instructions, compiled)
	}

	return msg, nil
}

// Signers returns the keys that must sign the message, in signature order.
func (m *Message) Signers() []types.PublicKey {
	return m.AccountKeys[:m.Header.NumRequiredSignatures]
}

func (m *Message) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteByte(m.Header.NumRequiredSignatures)
	buf.WriteByte(m.Header.NumReadonlySignedAccounts)
	buf.WriteByte(m.Header.NumReadonlyUnsignedAccounts)

	writeCompactU16(&buf, len(m.AccountKeys))
	for _, key := range m.AccountKeys {
		buf.Write(key[:])
	}
	buf.Write(m.RecentBlockhash[:])

	writeCompactU16(&buf, len(m.Instructions))
	for _, ix := range m.Instructions {
		buf.WriteByte(ix.ProgramIDIndex)
		writeCompactU16(&buf, len(ix.AccountIndexes))
		buf.Write(ix.AccountIndexes)
		writeCompactU16(&buf, len(ix.Data))
		buf.Write(ix.Data)
	}
	return buf.Bytes()
}

// Transaction is a signed message ready for submission.
type Transaction struct {
	Signatures [][]byte
	Message    *Message
}

// SignTransaction signs msg with every required signer; signers may be passed in any order.
func SignTransaction(msg *Message, signers ...*Keypair) (*Transaction, error) {
	byKey := make(map[types.PublicKey]*Keypair, len(signers))
	for _, signer := range signers {
		byKey[signer.PublicKey()] = signer
	}

	payload := msg.Serialize()
	tx := &Transaction{Message: msg}
	for _, key := range msg.Signers() {
		signer, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("missing signer %s", key)
		}
		tx.Signatures = append(tx.Signatures, signer.Sign(payload))
	}
	return tx, nil
}

func (tx *Transaction) Serialize() []byte {
	var buf bytes.Buffer
	writeCompactU16(&buf, len(tx.Signatures))
	for _, sig := range tx.Signatures {
		buf.Write(sig)
	}
	buf.Write(tx.Message.Serialize())
	return buf.Bytes()
}

// writeCompactU16 writes n in the short-vec encoding: 7 bits per byte, high bit set on continuation.
func writeCompactU16(buf *bytes.Buffer, n int) {
	v := uint16(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			buf.WriteByte(b)
			return
		}
		buf.WriteByte(b | 0x80)
	}
}
