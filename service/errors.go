package service

import "errors"

// Terminal request errors. These reject the request before any state
// change and map to 4xx responses; everything else surfaces as a
// retryable external-dependency error.
var (
	ErrInvalidMessage   = errors.New("invalid message format")
	ErrExpiredMessage   = errors.New("message expired, please try again")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrNotHolder        = errors.New("must hold a Sigil NFT to check in")
	ErrUnauthorized     = errors.New("unauthorized")
)
