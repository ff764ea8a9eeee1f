package solana

import (
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
)

const (
	systemProgramID = "11111111111111111111111111111111"

	// System program instruction index for a lamport transfer.
	systemTransferIndex = 2
)

// buildTransferTransaction assembles and signs a legacy transaction with a
// single system-program transfer from the treasury to dest. Returns the
// wire-format bytes ready for sendTransaction.
func buildTransferTransaction(treasury *Keypair, dest string, lamports int64, recentBlockhash string) []byte {
	// Account ordering: fee payer first, then the writable destination,
	// then the read-only program.
	accounts := [][]byte{
		base58.Decode(treasury.PublicKey()),
		base58.Decode(dest),
		base58.Decode(systemProgramID),
	}

	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], systemTransferIndex)
	binary.LittleEndian.PutUint64(data[4:12], uint64(lamports))

	var msg []byte
	// Header: one required signature, no read-only signed accounts, one
	// read-only unsigned account (the program).
	msg = append(msg, 1, 0, 1)
	msg = appendCompactU16(msg, len(accounts))
	for _, account := range accounts {
		msg = append(msg, account...)
	}
	msg = append(msg, base58.Decode(recentBlockhash)...)

	// One instruction: program index 2, accounts [payer, dest].
	msg = appendCompactU16(msg, 1)
	msg = append(msg, 2)
	msg = appendCompactU16(msg, 2)
	msg = append(msg, 0, 1)
	msg = appendCompactU16(msg, len(data))
	msg = append(msg, data...)

	signature := treasury.Sign(msg)

	var tx []byte
	tx = appendCompactU16(tx, 1)
	tx = append(tx, signature...)
	tx = append(tx, msg...)

	return tx
}

// appendCompactU16 appends n in the shortvec encoding used by transaction
// envelopes: 7 bits per byte, high bit marks continuation.
func appendCompactU16(buf []byte, n int) []byte {
	for {
		if n < 0x80 {
			return append(buf, byte(n))
		}
		buf = append(buf, byte(n&0x7f)|0x80)
		n >>= 7
	}
}
