package thinking

import "errors"

var (
	// ErrNoAPIKey is returned when the client is constructed without a key.
	ErrNoAPIKey = errors.New("thinking: API key required")

	// ErrBadReply is returned when the model's reply is not the expected
	// action JSON.
	ErrBadReply = errors.New("thinking: malformed model reply")
)
