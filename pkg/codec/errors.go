package codec

import "fmt"

// DecodeStage identifies the pipeline stage a decode failed in.
type DecodeStage string

const (
	// StagePercent is percent-decoding of the transport string.
	StagePercent DecodeStage = "percent"
	// StageBase64 is base64 decoding (invalid alphabet or length).
	StageBase64 DecodeStage = "base64"
	// StageGzip is gzip decompression (ZIP variant).
	StageGzip DecodeStage = "gzip"
	// StageDeflate is raw-deflate decompression (deflate variant).
	StageDeflate DecodeStage = "deflate"
)

// EncodeError reports a serialization or compression failure on the
// encode path.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a decode failure, identifying which stage of the
// pipeline rejected the input.
type DecodeError struct {
	Stage DecodeStage
	Err   error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode (%s): %v", e.Stage, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodingError reports that decompressed bytes were not valid UTF-8
// text. UTF-8 validation has no underlying error to carry, so the type
// holds no cause.
type EncodingError struct{}

func (e *EncodingError) Error() string { return "decoded payload is not valid UTF-8" }

// ParseError reports that decompressed text was not valid JSON. No
// partial payload is produced.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parsing payload: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// PayloadTooLargeError reports that inflated output exceeded the
// codec's configured size ceiling. The decode is abandoned rather than
// truncated.
type PayloadTooLargeError struct {
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("decompressed payload exceeds %d byte limit", e.Limit)
}
