package service

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"sigil/solana"
)

// Signed-message freshness window. Messages embed a client timestamp so a
// captured signature cannot be replayed on a later day.
const messageMaxAge = 5 * time.Minute

var signedMessagePattern = regexp.MustCompile(`^Sigil (check-in|claim rewards): (\d+):(\d+)$`)

// verifySignedMessage validates a wallet-signed action message of the form
// "Sigil <action>: {epochDay}:{timestampMillis}". The embedded day must be
// today and the timestamp within the freshness window.
func verifySignedMessage(wallet, signature, message, action string, today int64, now time.Time) error {
	match := signedMessagePattern.FindStringSubmatch(message)
	if match == nil || match[1] != action {
		return fmt.Errorf("%w: expected: Sigil %s: {epochDay}:{timestamp}", ErrInvalidMessage, action)
	}

	msgDay, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil || msgDay != today {
		return ErrInvalidMessage
	}

	msgMillis, err := strconv.ParseInt(match[3], 10, 64)
	if err != nil {
		return ErrInvalidMessage
	}
	age := now.Sub(time.UnixMilli(msgMillis))
	if age > messageMaxAge || age < -messageMaxAge {
		return ErrExpiredMessage
	}

	if !solana.VerifyWalletSignature(wallet, signature, message) {
		return ErrInvalidSignature
	}

	return nil
}
