package hyperliquid

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// recoveryBytes converts the wire signature back to the 65-byte r||s||v form
// expected by the curve recovery routine, mapping v from 27/28 to 0/1.
func (s *Signature) recoveryBytes() ([]byte, error) {
	if s == nil {
		return nil, errSignatureRequired
	}
	r, err := hex.DecodeString(strings.TrimPrefix(s.R, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: decode r: %w", ErrSigning, err)
	}
	sBytes, err := hex.DecodeString(strings.TrimPrefix(s.S, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: decode s: %w", ErrSigning, err)
	}
	if len(r) != 32 || len(sBytes) != 32 {
		return nil, fmt.Errorf("%w: r and s must each decode to 32 bytes", ErrSigning)
	}
	if s.V != 27 && s.V != 28 {
		return nil, fmt.Errorf("%w: v must be 27 or 28, got %d", ErrSigning, s.V)
	}
	sig := make([]byte, 0, 65)
	sig = append(sig, r...)
	sig = append(sig, sBytes...)
	sig = append(sig, byte(s.V-27))
	return sig, nil
}

func recoverTypedData(td *apitypes.TypedData, sig *Signature) (string, error) {
	raw, err := sig.recoveryBytes()
	if err != nil {
		return "", err
	}
	hash, _, err := apitypes.TypedDataAndHash(*td)
	if err != nil {
		return "", fmt.Errorf("%w: typed data hash: %w", ErrSigning, err)
	}
	pub, err := crypto.SigToPub(hash, raw)
	if err != nil {
		return "", fmt.Errorf("%w: recover public key: %w", ErrSigning, err)
	}
	return strings.ToLower(crypto.PubkeyToAddress(*pub).Hex()), nil
}

// RecoverAgentOrUserFromL1Action recomputes the digest an L1 action was
// signed over and recovers the signer's lowercase address.
func RecoverAgentOrUserFromL1Action(action any, sig *Signature, vaultAddress *string, nonce uint64, expiresAfter *uint64, isMainnet bool) (string, error) {
	hash, err := ActionHash(action, vaultAddress, nonce, expiresAfter)
	if err != nil {
		return "", err
	}
	payload := l1Payload(constructPhantomAgent(hash, isMainnet))
	return recoverTypedData(&payload, sig)
}

// RecoverUserFromUserSignedAction recovers the signer address of a
// user-signed action under its schema.
func RecoverUserFromUserSignedAction(action *Action, schema UserSignedSchema, sig *Signature, isMainnet bool) (string, error) {
	if action == nil {
		return "", errActionRequired
	}
	if len(schema.Fields) == 0 {
		return "", errSchemaFieldsRequired
	}
	chainID, err := userSignedChainID(action)
	if err != nil {
		return "", err
	}
	message, err := userSignedMessage(action, schema, isMainnet)
	if err != nil {
		return "", err
	}
	payload := userSignedPayload(message, schema, chainID)
	return recoverTypedData(&payload, sig)
}

// VerifyL1ActionSigner checks that an L1 action signature recovers to the
// expected address. A mismatch is reported as ErrVerificationMismatch.
func VerifyL1ActionSigner(action any, sig *Signature, expectedSigner string, vaultAddress *string, nonce uint64, expiresAfter *uint64, isMainnet bool) error {
	recovered, err := RecoverAgentOrUserFromL1Action(action, sig, vaultAddress, nonce, expiresAfter, isMainnet)
	if err != nil {
		return err
	}
	if recovered != strings.ToLower(expectedSigner) {
		return fmt.Errorf("%w: recovered %s, expected %s", ErrVerificationMismatch, recovered, strings.ToLower(expectedSigner))
	}
	return nil
}

// VerifyUserSignedActionSigner checks that a user-signed action signature
// recovers to the expected address.
func VerifyUserSignedActionSigner(action *Action, schema UserSignedSchema, sig *Signature, expectedSigner string, isMainnet bool) error {
	recovered, err := RecoverUserFromUserSignedAction(action, schema, sig, isMainnet)
	if err != nil {
		return err
	}
	if recovered != strings.ToLower(expectedSigner) {
		return fmt.Errorf("%w: recovered %s, expected %s", ErrVerificationMismatch, recovered, strings.ToLower(expectedSigner))
	}
	return nil
}
