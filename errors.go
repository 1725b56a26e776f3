package hyperliquid

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by this package. Specific failures wrap one of these,
// so callers can match with errors.Is.
var (
	// ErrEncoding reports input that cannot be canonically encoded: a
	// malformed address, a value type the wire format has no representation
	// for, or a float that would lose precision. Encoding failures are never
	// recovered locally; a malformed encoding would only yield a signature
	// the venue rejects.
	ErrEncoding = errors.New("encoding error")
	// ErrSigning reports an invalid private key or a curve operation failure.
	ErrSigning = errors.New("signing error")
	// ErrVerificationMismatch reports that a recovered signer address does
	// not match the expected address.
	ErrVerificationMismatch = errors.New("recovered signer does not match expected signer")
)

var (
	errPrivateKeyNotProvided  = fmt.Errorf("%w: private key not provided", ErrSigning)
	errWalletRequired         = fmt.Errorf("%w: wallet required", ErrSigning)
	errActionRequired         = fmt.Errorf("%w: action required", ErrEncoding)
	errSignatureRequired      = fmt.Errorf("%w: signature required", ErrSigning)
	errSchemaFieldsRequired   = fmt.Errorf("%w: schema has no fields", ErrEncoding)
	errUnorderedMapValue      = fmt.Errorf("%w: unordered map value; use Action to fix key order", ErrEncoding)
	errFloatValueNotCanonical = fmt.Errorf("%w: raw float value; convert via FloatToWire or FloatToIntForHashing first", ErrEncoding)
	errInvalidAddressLength   = fmt.Errorf("%w: address must decode to 20 bytes", ErrEncoding)
)
