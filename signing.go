package hyperliquid

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	hyperliquidMainnetChain = "Mainnet"
	hyperliquidTestnetChain = "Testnet"

	// SignatureChainID is the chain used by the wallet to sign user-signed
	// actions. It only scopes the wallet signature; hyperliquidChain is what
	// pins the action to an environment and prevents cross-chain replay.
	SignatureChainID = "0x66eee"

	l1DomainName         = "Exchange"
	userSignedDomainName = "HyperliquidSignTransaction"
	domainVersion        = "1"
	zeroVerifyingAddress = "0x0000000000000000000000000000000000000000"
)

// Wallet holds a parsed secp256k1 private key and its derived address. The
// key is used only for the duration of each signing call and is never logged
// or serialised.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewWalletFromHex parses a 0x-prefixed 32-byte hex private key.
func NewWalletFromHex(hexKey string) (*Wallet, error) {
	key := strings.TrimPrefix(hexKey, "0x")
	if key == "" {
		return nil, errPrivateKeyNotProvided
	}
	keyBytes, err := hex.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("%w: decode private key: %w", ErrSigning, err)
	}
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("%w: invalid private key length %d", ErrSigning, len(keyBytes))
	}
	priv, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: construct private key: %w", ErrSigning, err)
	}
	return NewWalletFromKey(priv)
}

// NewWalletFromKey wraps an already-parsed private key.
func NewWalletFromKey(priv *ecdsa.PrivateKey) (*Wallet, error) {
	if priv == nil {
		return nil, errPrivateKeyNotProvided
	}
	return &Wallet{
		privateKey: priv,
		address:    crypto.PubkeyToAddress(priv.PublicKey),
	}, nil
}

// Address returns the wallet address as a lowercase 0x-prefixed hex string,
// the casing the venue expects everywhere.
func (w *Wallet) Address() string {
	return strings.ToLower(w.address.Hex())
}

// Signature is an ECDSA signature in the venue's wire format: r and s as
// lowercase 0x-prefixed 64-hex-character strings and v normalised to the
// Ethereum 27/28 convention.
type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
	V int    `json:"v"`
}

func (w *Wallet) signTypedData(td *apitypes.TypedData) (*Signature, error) {
	hash, _, err := apitypes.TypedDataAndHash(*td)
	if err != nil {
		return nil, fmt.Errorf("%w: typed data hash: %w", ErrSigning, err)
	}
	return w.signHash(hash)
}

func (w *Wallet) signHash(hash []byte) (*Signature, error) {
	sig, err := crypto.Sign(hash, w.privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: sign digest: %w", ErrSigning, err)
	}
	if len(sig) != 65 {
		return nil, fmt.Errorf("%w: invalid signature length %d", ErrSigning, len(sig))
	}
	v := int(sig[64])
	if v < 27 {
		v += 27
	}
	return &Signature{
		R: "0x" + hex.EncodeToString(sig[:32]),
		S: "0x" + hex.EncodeToString(sig[32:64]),
		V: v,
	}, nil
}

// constructPhantomAgent wraps an action hash in the ephemeral Agent struct.
// Only the source discriminator distinguishes mainnet from testnet; the
// EIP-712 domain stays constant across both.
func constructPhantomAgent(hash common.Hash, isMainnet bool) apitypes.TypedDataMessage {
	source := "b"
	if isMainnet {
		source = "a"
	}
	return apitypes.TypedDataMessage{
		"source":       source,
		"connectionId": hash.Bytes(),
	}
}

func l1Payload(agent apitypes.TypedDataMessage) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              l1DomainName,
			Version:           domainVersion,
			ChainId:           ethmath.NewHexOrDecimal256(1337),
			VerifyingContract: zeroVerifyingAddress,
		},
		Message: agent,
	}
}

// SignL1Action signs a protocol-level action. action is normally an *Action;
// the protocol multi-sig path passes the wrapping tuple instead.
func SignL1Action(w *Wallet, action any, vaultAddress *string, nonce uint64, expiresAfter *uint64, isMainnet bool) (*Signature, error) {
	if w == nil {
		return nil, errWalletRequired
	}
	hash, err := ActionHash(action, vaultAddress, nonce, expiresAfter)
	if err != nil {
		return nil, err
	}
	payload := l1Payload(constructPhantomAgent(hash, isMainnet))
	return w.signTypedData(&payload)
}

func hexOrDecimalFromUint64(v uint64) *ethmath.HexOrDecimal256 {
	return (*ethmath.HexOrDecimal256)(new(big.Int).SetUint64(v))
}

// userSignedChainID resolves the wallet chain id for a user-signed action,
// honouring an explicit signatureChainId field when the action carries one.
func userSignedChainID(action *Action) (*ethmath.HexOrDecimal256, error) {
	raw := SignatureChainID
	if action != nil {
		if v, ok := action.Get("signatureChainId"); ok {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: signatureChainId must be a hex string, got %T", ErrEncoding, v)
			}
			raw = s
		}
	}
	id, ok := new(big.Int).SetString(strings.TrimPrefix(raw, "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("%w: invalid signatureChainId %q", ErrEncoding, raw)
	}
	return (*ethmath.HexOrDecimal256)(id), nil
}

// userSignedMessage builds the typed-data message strictly from the schema's
// field list: hyperliquidChain is injected, integer fields are widened for
// the typed-data encoder, and any other schema field must be present on the
// action. Fields outside the schema (type, signatureChainId) never reach the
// hash.
func userSignedMessage(action *Action, schema UserSignedSchema, isMainnet bool) (apitypes.TypedDataMessage, error) {
	chain := hyperliquidTestnetChain
	if isMainnet {
		chain = hyperliquidMainnetChain
	}
	message := make(apitypes.TypedDataMessage, len(schema.Fields))
	for _, field := range schema.Fields {
		if field.Name == "hyperliquidChain" {
			message[field.Name] = chain
			continue
		}
		value, ok := action.Get(field.Name)
		if !ok {
			return nil, fmt.Errorf("%w: action missing schema field %q", ErrEncoding, field.Name)
		}
		if strings.HasPrefix(field.Type, "uint") || strings.HasPrefix(field.Type, "int") {
			converted, err := typedDataInt(value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field.Name, err)
			}
			message[field.Name] = converted
			continue
		}
		message[field.Name] = value
	}
	return message, nil
}

func typedDataInt(v any) (*ethmath.HexOrDecimal256, error) {
	switch val := v.(type) {
	case int:
		return (*ethmath.HexOrDecimal256)(big.NewInt(int64(val))), nil
	case int64:
		return (*ethmath.HexOrDecimal256)(big.NewInt(val)), nil
	case uint64:
		return hexOrDecimalFromUint64(val), nil
	case *big.Int:
		return (*ethmath.HexOrDecimal256)(val), nil
	case *ethmath.HexOrDecimal256:
		return val, nil
	default:
		return nil, fmt.Errorf("%w: unsupported integer field type %T", ErrEncoding, v)
	}
}

func userSignedPayload(message apitypes.TypedDataMessage, schema UserSignedSchema, chainID *ethmath.HexOrDecimal256) apitypes.TypedData {
	types := apitypes.Types{
		"EIP712Domain": {
			{Name: "name", Type: "string"},
			{Name: "version", Type: "string"},
			{Name: "chainId", Type: "uint256"},
			{Name: "verifyingContract", Type: "address"},
		},
	}
	types[schema.PrimaryType] = schema.Fields
	return apitypes.TypedData{
		Types:       types,
		PrimaryType: schema.PrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              userSignedDomainName,
			Version:           domainVersion,
			ChainId:           chainID,
			VerifyingContract: zeroVerifyingAddress,
		},
		Message: message,
	}
}

// SignUserSignedAction signs an action the venue treats as direct wallet
// typed data. The action itself is not mutated; use WireUserSignedAction to
// produce the variant carrying the chain fields for submission.
func SignUserSignedAction(w *Wallet, action *Action, schema UserSignedSchema, isMainnet bool) (*Signature, error) {
	if w == nil {
		return nil, errWalletRequired
	}
	if action == nil {
		return nil, errActionRequired
	}
	if len(schema.Fields) == 0 {
		return nil, errSchemaFieldsRequired
	}
	chainID, err := userSignedChainID(action)
	if err != nil {
		return nil, err
	}
	message, err := userSignedMessage(action, schema, isMainnet)
	if err != nil {
		return nil, err
	}
	payload := userSignedPayload(message, schema, chainID)
	return w.signTypedData(&payload)
}

// WireUserSignedAction returns a copy of the action carrying the
// signatureChainId and hyperliquidChain fields the venue requires in the
// submitted body of a user-signed action.
func WireUserSignedAction(action *Action, isMainnet bool) *Action {
	chain := hyperliquidTestnetChain
	if isMainnet {
		chain = hyperliquidMainnetChain
	}
	out := action.Clone()
	out.Set("signatureChainId", SignatureChainID)
	out.Set("hyperliquidChain", chain)
	return out
}

// SignUsdSendAction signs a USD transfer to another address.
func SignUsdSendAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, UsdSendSchema, isMainnet)
}

// SignSpotSendAction signs a spot token transfer to another address.
func SignSpotSendAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, SpotSendSchema, isMainnet)
}

// SignWithdrawAction signs a withdrawal from the bridge.
func SignWithdrawAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, WithdrawSchema, isMainnet)
}

// SignUsdClassTransferAction signs a transfer between perp and spot balances.
func SignUsdClassTransferAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, UsdClassTransferSchema, isMainnet)
}

// SignSendAssetAction signs an asset transfer between DEX contexts.
func SignSendAssetAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, SendAssetSchema, isMainnet)
}

// SignUserDexAbstractionAction signs a DEX abstraction toggle for a user.
func SignUserDexAbstractionAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, UserDexAbstractionSchema, isMainnet)
}

// SignTokenDelegateAction signs a validator delegation or undelegation.
func SignTokenDelegateAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, TokenDelegateSchema, isMainnet)
}

// SignApproveAgentAction signs the approval of an agent key.
func SignApproveAgentAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, ApproveAgentSchema, isMainnet)
}

// SignApproveBuilderFeeAction signs a builder maximum fee rate approval.
func SignApproveBuilderFeeAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, ApproveBuilderFeeSchema, isMainnet)
}

// SignConvertToMultiSigUserAction signs the conversion of an account to
// multi-sig control.
func SignConvertToMultiSigUserAction(w *Wallet, action *Action, isMainnet bool) (*Signature, error) {
	return SignUserSignedAction(w, action, ConvertToMultiSigUserSchema, isMainnet)
}
