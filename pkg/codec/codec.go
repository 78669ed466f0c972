package codec

import (
	"bytes"
	"io"
	"log/slog"
)

// DefaultMaxDecodedSize is the decompression ceiling applied when no
// WithMaxDecodedSize option is given. Debug payloads are script source
// plus a message body; anything past this is a malformed or hostile
// input, not a debug session.
const DefaultMaxDecodedSize = 8 << 20

// Option configures a codec.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	maxDecodedSize int64
}

// WithLogger sets the logger the codec emits per-stage debug traces
// through. Codecs never log without one.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDecodedSize overrides the decompression ceiling. Inputs whose
// inflated size exceeds it fail with PayloadTooLargeError.
func WithMaxDecodedSize(n int64) Option {
	return func(o *options) {
		o.maxDecodedSize = n
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDecodedSize: DefaultMaxDecodedSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// readAllLimited drains r into a growable buffer, failing with
// PayloadTooLargeError once more than limit bytes have been produced.
// Truncating at the limit is never acceptable: a silently shortened
// script is worse than no script.
func readAllLimited(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, &PayloadTooLargeError{Limit: limit}
	}
	return buf.Bytes(), nil
}
