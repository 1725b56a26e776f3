// Package hyperliquid signs state-changing requests for the Hyperliquid
// exchange.
//
// The venue authenticates two categories of action:
//
//  1. L1 actions (orders, cancels, leverage updates, deploy and validator
//     operations). The action is canonically encoded, hashed together with
//     the nonce, optional vault address and optional expiry, wrapped in a
//     phantom "Agent" struct and signed as EIP-712 typed data under the
//     constant Exchange domain. See SignL1Action.
//
//  2. User-signed actions (transfers, withdrawals, agent and builder-fee
//     approvals, multi-sig conversion). Each kind has a fixed typed-data
//     schema and is signed directly under the HyperliquidSignTransaction
//     domain. See SignUserSignedAction and the per-kind helpers.
//
// Multi-party authorisation wraps either path: protocol actions are re-hashed
// as a [multiSigUser, outerSigner, action] tuple, user-signed actions as a
// {multiSigActionHash, nonce} envelope under the SendMultiSig schema.
//
// Correctness here is byte-exact: the venue recomputes the same digests from
// the submitted JSON, so field order, integer widths and address casing all
// feed the hash. Action preserves key insertion order and the canonical
// encoder drives the MessagePack primitives value by value rather than
// trusting reflection defaults. All operations are pure functions of their
// inputs and safe for concurrent use; private key material is never retained,
// logged or serialised.
package hyperliquid
