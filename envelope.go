package hyperliquid

import (
	"strings"

	"github.com/bytedance/sonic"
)

// SigningContext carries the per-request parameters a caller resolves before
// signing: the millisecond-epoch nonce, an optional vault address acted on
// behalf of, an optional expiry, and the target environment. A context is
// produced by the caller and consumed by a single signing call.
type SigningContext struct {
	Nonce        uint64
	VaultAddress *string
	ExpiresAfter *uint64
	IsMainnet    bool
}

// ExchangeRequest is the JSON body posted to the venue's exchange endpoint.
// The transport layer that performs the POST lives outside this package.
type ExchangeRequest struct {
	Action       *Action    `json:"action"`
	Nonce        uint64     `json:"nonce"`
	Signature    *Signature `json:"signature"`
	VaultAddress *string    `json:"vaultAddress"`
	ExpiresAfter *uint64    `json:"expiresAfter"`
}

// NewExchangeRequest assembles the submission envelope for a signed action.
// The vault address is lowercased; absent vault and expiry fields are
// serialised as explicit nulls, matching the venue contract.
func NewExchangeRequest(action *Action, sig *Signature, sc SigningContext) *ExchangeRequest {
	req := &ExchangeRequest{
		Action:       action,
		Nonce:        sc.Nonce,
		Signature:    sig,
		ExpiresAfter: sc.ExpiresAfter,
	}
	if sc.VaultAddress != nil && *sc.VaultAddress != "" {
		addr := strings.ToLower(*sc.VaultAddress)
		req.VaultAddress = &addr
	}
	return req
}

// Body marshals the request to the JSON byte form ready for submission.
func (r *ExchangeRequest) Body() ([]byte, error) {
	return sonic.Marshal(r)
}
