package hyperliquid

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ActionHash derives the 256-bit digest the venue recomputes for an action.
// The input is the canonical encoding of the action, followed by the nonce as
// eight big-endian bytes, a vault marker (0x01 plus the 20 raw address bytes
// when present, a bare 0x00 otherwise) and, only when an expiry is set, a
// 0x00 marker plus eight big-endian bytes of the expiry. An absent expiry
// appends nothing at all; that asymmetry is part of the wire contract.
//
// action is normally an *Action; the protocol multi-sig path passes the
// [multiSigUser, outerSigner, action] tuple as a []any instead.
func ActionHash(action any, vaultAddress *string, nonce uint64, expiresAfter *uint64) (common.Hash, error) {
	encoded, err := marshalCanonical(action)
	if err != nil {
		return common.Hash{}, fmt.Errorf("marshal action: %w", err)
	}
	var buf bytes.Buffer
	buf.Write(encoded)

	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	buf.Write(nonceBytes)

	if vaultAddress == nil || *vaultAddress == "" {
		buf.WriteByte(0x00)
	} else {
		buf.WriteByte(0x01)
		addrBytes, err := addressToBytes(*vaultAddress)
		if err != nil {
			return common.Hash{}, fmt.Errorf("vault address: %w", err)
		}
		buf.Write(addrBytes)
	}

	if expiresAfter != nil {
		buf.WriteByte(0x00)
		expBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(expBytes, *expiresAfter)
		buf.Write(expBytes)
	}

	return crypto.Keccak256Hash(buf.Bytes()), nil
}
