package hyperliquid

import "github.com/ethereum/go-ethereum/signer/core/apitypes"

// UserSignedSchema pairs a primary type name with its ordered field list.
// Schemas are data, versioned alongside the venue's protocol: adding a field
// venue-side means adding both the action field and its schema entry here in
// the same change. Field order is fixed by the venue, with hyperliquidChain
// always first.
type UserSignedSchema struct {
	PrimaryType string
	Fields      []apitypes.Type
}

// Typed-data schemas for every user-signed action kind.
var (
	UsdSendSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:UsdSend",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "destination", Type: "string"},
			{Name: "amount", Type: "string"},
			{Name: "time", Type: "uint64"},
		},
	}
	SpotSendSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:SpotSend",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "destination", Type: "string"},
			{Name: "token", Type: "string"},
			{Name: "amount", Type: "string"},
			{Name: "time", Type: "uint64"},
		},
	}
	WithdrawSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:Withdraw",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "destination", Type: "string"},
			{Name: "amount", Type: "string"},
			{Name: "time", Type: "uint64"},
		},
	}
	UsdClassTransferSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:UsdClassTransfer",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "amount", Type: "string"},
			{Name: "toPerp", Type: "bool"},
			{Name: "nonce", Type: "uint64"},
		},
	}
	SendAssetSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:SendAsset",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "destination", Type: "string"},
			{Name: "sourceDex", Type: "string"},
			{Name: "destinationDex", Type: "string"},
			{Name: "token", Type: "string"},
			{Name: "amount", Type: "string"},
			{Name: "fromSubAccount", Type: "string"},
			{Name: "nonce", Type: "uint64"},
		},
	}
	UserDexAbstractionSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:UserDexAbstraction",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "user", Type: "address"},
			{Name: "enabled", Type: "bool"},
			{Name: "nonce", Type: "uint64"},
		},
	}
	TokenDelegateSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:TokenDelegate",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "validator", Type: "address"},
			{Name: "wei", Type: "uint64"},
			{Name: "isUndelegate", Type: "bool"},
			{Name: "nonce", Type: "uint64"},
		},
	}
	ApproveAgentSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:ApproveAgent",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "agentAddress", Type: "address"},
			{Name: "agentName", Type: "string"},
			{Name: "nonce", Type: "uint64"},
		},
	}
	ApproveBuilderFeeSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:ApproveBuilderFee",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "maxFeeRate", Type: "string"},
			{Name: "builder", Type: "address"},
			{Name: "nonce", Type: "uint64"},
		},
	}
	ConvertToMultiSigUserSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:ConvertToMultiSigUser",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "signers", Type: "string"},
			{Name: "nonce", Type: "uint64"},
		},
	}
	SendMultiSigSchema = UserSignedSchema{
		PrimaryType: "HyperliquidTransaction:SendMultiSig",
		Fields: []apitypes.Type{
			{Name: "hyperliquidChain", Type: "string"},
			{Name: "multiSigActionHash", Type: "bytes32"},
			{Name: "nonce", Type: "uint64"},
		},
	}
)
