package siwe

import "errors"

var (
	// ErrInvalidMessage means the payload is not a parseable SIWE message.
	ErrInvalidMessage = errors.New("invalid siwe message")
	// ErrDomainMismatch means the message was signed for a different app
	// (wrong domain or statement).
	ErrDomainMismatch = errors.New("message domain mismatch")
	// ErrInvalidSignature covers bad signatures and messages outside their
	// validity window.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidNonce means the message nonce does not match the nonce
	// issued to the address.
	ErrInvalidNonce = errors.New("invalid nonce")
	// ErrRateLimited means the address exceeded the login attempt budget.
	ErrRateLimited = errors.New("too many requests")
	// ErrInvalidToken is returned for any session token that fails
	// validation, whatever the underlying cause.
	ErrInvalidToken = errors.New("invalid token")
)
