package hyperliquid

import (
	"strings"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// MultiSigL1ActionPayload builds the tuple that replaces the bare action when
// a protocol-level action is authorised by multiple signers: the multi-sig
// user, the outer signer submitting the collected signatures, and the inner
// action. The tuple is hashed and signed exactly like any other L1 action.
func MultiSigL1ActionPayload(multiSigUser, outerSigner string, action any) []any {
	return []any{
		strings.ToLower(multiSigUser),
		strings.ToLower(outerSigner),
		action,
	}
}

// SignMultiSigL1ActionPayload produces one signer's contribution for a
// protocol-level multi-sig action. Every participant signs the identical
// tuple digest; the venue aggregates the collected signatures.
func SignMultiSigL1ActionPayload(w *Wallet, multiSigUser, outerSigner string, action any, vaultAddress *string, nonce uint64, expiresAfter *uint64, isMainnet bool) (*Signature, error) {
	payload := MultiSigL1ActionPayload(multiSigUser, outerSigner, action)
	return SignL1Action(w, payload, vaultAddress, nonce, expiresAfter, isMainnet)
}

// multiSigUserSignedSchema inserts the payloadMultiSigUser and outerSigner
// fields directly after hyperliquidChain, the position the venue expects.
func multiSigUserSignedSchema(schema UserSignedSchema) UserSignedSchema {
	fields := make([]apitypes.Type, 0, len(schema.Fields)+2)
	fields = append(fields, schema.Fields[0])
	fields = append(fields,
		apitypes.Type{Name: "payloadMultiSigUser", Type: "address"},
		apitypes.Type{Name: "outerSigner", Type: "address"},
	)
	fields = append(fields, schema.Fields[1:]...)
	return UserSignedSchema{PrimaryType: schema.PrimaryType, Fields: fields}
}

// SignMultiSigUserSignedActionPayload produces one signer's contribution when
// the inner action is itself a user-signed kind: the action is re-signed
// under its own schema widened with the payload-user and outer-signer
// designations.
func SignMultiSigUserSignedActionPayload(w *Wallet, action *Action, schema UserSignedSchema, payloadMultiSigUser, outerSigner string, isMainnet bool) (*Signature, error) {
	if action == nil {
		return nil, errActionRequired
	}
	if len(schema.Fields) == 0 {
		return nil, errSchemaFieldsRequired
	}
	envelope := action.Clone().
		Set("payloadMultiSigUser", strings.ToLower(payloadMultiSigUser)).
		Set("outerSigner", strings.ToLower(outerSigner))
	return SignUserSignedAction(w, envelope, multiSigUserSignedSchema(schema), isMainnet)
}

// SignMultiSigAction signs the outer multiSig action that carries the
// collected signatures. The action hash is computed with the type
// discriminator stripped, then hex-encoded into a {multiSigActionHash, nonce}
// envelope signed under the SendMultiSig schema.
func SignMultiSigAction(w *Wallet, action *Action, isMainnet bool, vaultAddress *string, nonce uint64, expiresAfter *uint64) (*Signature, error) {
	if action == nil {
		return nil, errActionRequired
	}
	hash, err := ActionHash(action.Without("type"), vaultAddress, nonce, expiresAfter)
	if err != nil {
		return nil, err
	}
	envelope := NewAction().
		Set("multiSigActionHash", hash.Hex()).
		Set("nonce", nonce)
	return SignUserSignedAction(w, envelope, SendMultiSigSchema, isMainnet)
}
