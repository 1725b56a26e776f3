package hyperliquid

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrivateKey = "0x4f3edf983ac636a65a842ce7c78d9aa706d3b113b37ad5dee0c90c0f0da58c16"
	testAddress    = "0x78a6a3319e34ae14e87b046407675784c002d534"
	testVault      = "0x1111111111111111111111111111111111111111"
)

func testWallet(t *testing.T) *Wallet {
	t.Helper()
	w, err := NewWalletFromHex(testPrivateKey)
	require.NoError(t, err)
	return w
}

func requireWellFormedSignature(t *testing.T, sig *Signature) {
	t.Helper()
	require.NotNil(t, sig)
	require.Len(t, sig.R, 66)
	require.Len(t, sig.S, 66)
	require.True(t, strings.HasPrefix(sig.R, "0x"))
	require.True(t, strings.HasPrefix(sig.S, "0x"))
	require.Equal(t, strings.ToLower(sig.R), sig.R)
	require.Equal(t, strings.ToLower(sig.S), sig.S)
	require.Contains(t, []int{27, 28}, sig.V)
}

func TestNewWalletFromHex(t *testing.T) {
	t.Parallel()
	w := testWallet(t)
	assert.Equal(t, testAddress, w.Address())

	noPrefix, err := NewWalletFromHex(strings.TrimPrefix(testPrivateKey, "0x"))
	require.NoError(t, err)
	assert.Equal(t, testAddress, noPrefix.Address())

	for _, key := range []string{"", "0x", "0xnothex", "0x1234"} {
		_, err := NewWalletFromHex(key)
		require.ErrorIs(t, err, ErrSigning, "key %q", key)
	}
}

func TestConstructPhantomAgent(t *testing.T) {
	t.Parallel()
	hash, err := ActionHash(dummyAction(t), nil, 42, nil)
	require.NoError(t, err)

	mainnet := constructPhantomAgent(hash, true)
	assert.Equal(t, "a", mainnet["source"])
	testnet := constructPhantomAgent(hash, false)
	assert.Equal(t, "b", testnet["source"])
	assert.Equal(t, hash.Bytes(), mainnet["connectionId"])
}

func TestL1Payload(t *testing.T) {
	t.Parallel()
	hash, err := ActionHash(dummyAction(t), nil, 42, nil)
	require.NoError(t, err)

	payload := l1Payload(constructPhantomAgent(hash, true))
	assert.Equal(t, l1DomainName, payload.Domain.Name)
	assert.Equal(t, domainVersion, payload.Domain.Version)
	assert.Equal(t, int64(1337), (*big.Int)(payload.Domain.ChainId).Int64())
	assert.Equal(t, zeroVerifyingAddress, payload.Domain.VerifyingContract)
	assert.Equal(t, "Agent", payload.PrimaryType)
	require.Len(t, payload.Types["Agent"], 2)
	assert.Equal(t, apitypes.Type{Name: "source", Type: "string"}, payload.Types["Agent"][0])
	assert.Equal(t, apitypes.Type{Name: "connectionId", Type: "bytes32"}, payload.Types["Agent"][1])
}

func TestSignL1Action(t *testing.T) {
	t.Parallel()
	w := testWallet(t)
	action := dummyAction(t)

	sig, err := SignL1Action(w, action, nil, 42, nil, true)
	require.NoError(t, err)
	requireWellFormedSignature(t, sig)

	recovered, err := RecoverAgentOrUserFromL1Action(action, sig, nil, 42, nil, true)
	require.NoError(t, err)
	assert.Equal(t, testAddress, recovered)

	// Deterministic signing: same inputs, byte-identical signature.
	again, err := SignL1Action(w, action, nil, 42, nil, true)
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	// Chain selection changes the phantom agent source, so the mainnet
	// signature must not verify against the testnet payload.
	require.NoError(t, VerifyL1ActionSigner(action, sig, testAddress, nil, 42, nil, true))
	require.ErrorIs(t, VerifyL1ActionSigner(action, sig, testAddress, nil, 42, nil, false), ErrVerificationMismatch)

	// The testnet domain round-trips to the same address.
	testnetSig, err := SignL1Action(w, action, nil, 42, nil, false)
	require.NoError(t, err)
	assert.NotEqual(t, sig, testnetSig)
	testnetRecovered, err := RecoverAgentOrUserFromL1Action(action, testnetSig, nil, 42, nil, false)
	require.NoError(t, err)
	assert.Equal(t, testAddress, testnetRecovered)

	// A vault address folds into the digest.
	vault := testVault
	vaultSig, err := SignL1Action(w, action, &vault, 42, nil, true)
	require.NoError(t, err)
	assert.NotEqual(t, sig, vaultSig)
	require.NoError(t, VerifyL1ActionSigner(action, vaultSig, testAddress, &vault, 42, nil, true))

	// So does an expiry.
	expires := uint64(1700000000123)
	expirySig, err := SignL1Action(w, action, nil, 42, &expires, true)
	require.NoError(t, err)
	assert.NotEqual(t, sig, expirySig)
	require.NoError(t, VerifyL1ActionSigner(action, expirySig, testAddress, nil, 42, &expires, true))

	_, err = SignL1Action(nil, action, nil, 42, nil, true)
	require.ErrorIs(t, err, ErrSigning)
}

func TestSignUserSignedAction(t *testing.T) {
	t.Parallel()
	w := testWallet(t)
	action := NewAction().
		Set("destination", testVault).
		Set("amount", "12.5").
		Set("time", uint64(1700000000123))

	sig, err := SignUserSignedAction(w, action, UsdSendSchema, true)
	require.NoError(t, err)
	requireWellFormedSignature(t, sig)

	recovered, err := RecoverUserFromUserSignedAction(action, UsdSendSchema, sig, true)
	require.NoError(t, err)
	assert.Equal(t, testAddress, recovered)
	require.NoError(t, VerifyUserSignedActionSigner(action, UsdSendSchema, sig, testAddress, true))

	// The injected hyperliquidChain field separates the nets, yet both
	// signatures recover to the same address on their own domains.
	testnetSig, err := SignUserSignedAction(w, action, UsdSendSchema, false)
	require.NoError(t, err)
	assert.NotEqual(t, sig, testnetSig)
	require.ErrorIs(t, VerifyUserSignedActionSigner(action, UsdSendSchema, testnetSig, testAddress, true), ErrVerificationMismatch)
	testnetRecovered, err := RecoverUserFromUserSignedAction(action, UsdSendSchema, testnetSig, false)
	require.NoError(t, err)
	assert.Equal(t, testAddress, testnetRecovered)
}

func TestSignUserSignedActionMissingField(t *testing.T) {
	t.Parallel()
	w := testWallet(t)
	action := NewAction().Set("destination", testVault) // no amount, no time
	_, err := SignUserSignedAction(w, action, UsdSendSchema, true)
	require.ErrorIs(t, err, ErrEncoding)
}

func TestSignUserSignedActionChainIDOverride(t *testing.T) {
	t.Parallel()
	w := testWallet(t)
	base := NewAction().
		Set("destination", testVault).
		Set("amount", "1").
		Set("time", uint64(1))

	overridden := base.Clone().Set("signatureChainId", "0xa4b1")
	sig, err := SignUserSignedAction(w, overridden, UsdSendSchema, true)
	require.NoError(t, err)

	defaultSig, err := SignUserSignedAction(w, base, UsdSendSchema, true)
	require.NoError(t, err)
	assert.NotEqual(t, defaultSig, sig)

	recovered, err := RecoverUserFromUserSignedAction(overridden, UsdSendSchema, sig, true)
	require.NoError(t, err)
	assert.Equal(t, testAddress, recovered)

	_, err = SignUserSignedAction(w, base.Clone().Set("signatureChainId", "0xzz"), UsdSendSchema, true)
	require.ErrorIs(t, err, ErrEncoding)
}

func TestWireUserSignedAction(t *testing.T) {
	t.Parallel()
	action := NewAction().
		Set("destination", testVault).
		Set("amount", "1").
		Set("time", uint64(1))

	wired := WireUserSignedAction(action, true)
	assert.Equal(t, SignatureChainID, mustGet(t, wired, "signatureChainId"))
	assert.Equal(t, hyperliquidMainnetChain, mustGet(t, wired, "hyperliquidChain"))
	assert.Equal(t, testVault, mustGet(t, wired, "destination"))

	testnet := WireUserSignedAction(action, false)
	assert.Equal(t, hyperliquidTestnetChain, mustGet(t, testnet, "hyperliquidChain"))

	// The input action is left untouched.
	_, ok := action.Get("signatureChainId")
	assert.False(t, ok)
}

func mustGet(t *testing.T, action *Action, key string) any {
	t.Helper()
	v, ok := action.Get(key)
	require.True(t, ok, "missing key %q", key)
	return v
}

func TestUserSignedWrappers(t *testing.T) {
	t.Parallel()
	w := testWallet(t)

	for _, tc := range []struct {
		name   string
		schema UserSignedSchema
		action *Action
	}{
		{
			name:   "UsdSend",
			schema: UsdSendSchema,
			action: NewAction().Set("destination", testVault).Set("amount", "1.5").Set("time", uint64(7)),
		},
		{
			name:   "SpotSend",
			schema: SpotSendSchema,
			action: NewAction().Set("destination", testVault).Set("token", "PURR:0xc4bf3f870c0e9465323c0b6ed28096c2").Set("amount", "1").Set("time", uint64(7)),
		},
		{
			name:   "Withdraw",
			schema: WithdrawSchema,
			action: NewAction().Set("destination", testVault).Set("amount", "1").Set("time", uint64(7)),
		},
		{
			name:   "UsdClassTransfer",
			schema: UsdClassTransferSchema,
			action: NewAction().Set("amount", "1").Set("toPerp", true).Set("nonce", uint64(7)),
		},
		{
			name:   "SendAsset",
			schema: SendAssetSchema,
			action: NewAction().Set("destination", testVault).Set("sourceDex", "").Set("destinationDex", "perp").Set("token", "USDC").Set("amount", "1").Set("fromSubAccount", "").Set("nonce", uint64(7)),
		},
		{
			name:   "UserDexAbstraction",
			schema: UserDexAbstractionSchema,
			action: NewAction().Set("user", testAddress).Set("enabled", true).Set("nonce", uint64(7)),
		},
		{
			name:   "TokenDelegate",
			schema: TokenDelegateSchema,
			action: NewAction().Set("validator", testAddress).Set("wei", uint64(10)).Set("isUndelegate", false).Set("nonce", uint64(7)),
		},
		{
			name:   "ApproveAgent",
			schema: ApproveAgentSchema,
			action: NewAction().Set("agentAddress", testAddress).Set("agentName", "bot").Set("nonce", uint64(7)),
		},
		{
			name:   "ApproveBuilderFee",
			schema: ApproveBuilderFeeSchema,
			action: NewAction().Set("maxFeeRate", "0.001%").Set("builder", testAddress).Set("nonce", uint64(7)),
		},
		{
			name:   "ConvertToMultiSigUser",
			schema: ConvertToMultiSigUserSchema,
			action: NewAction().Set("signers", `{"authorizedUsers":[],"threshold":1}`).Set("nonce", uint64(7)),
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sig, err := SignUserSignedAction(w, tc.action, tc.schema, true)
			require.NoError(t, err)
			requireWellFormedSignature(t, sig)
			require.NoError(t, VerifyUserSignedActionSigner(tc.action, tc.schema, sig, testAddress, true))
		})
	}
}

func TestUserSignedWrapperFunctions(t *testing.T) {
	t.Parallel()
	w := testWallet(t)
	action := NewAction().Set("destination", testVault).Set("amount", "1.5").Set("time", uint64(7))

	fromWrapper, err := SignUsdSendAction(w, action, true)
	require.NoError(t, err)
	direct, err := SignUserSignedAction(w, action, UsdSendSchema, true)
	require.NoError(t, err)
	assert.Equal(t, direct, fromWrapper)
}
