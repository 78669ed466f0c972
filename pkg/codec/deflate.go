package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/url"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"

	"github.com/MarkTrayford/CPIDebugLocal/pkg/payload"
)

// DeflateCodec is the raw-deflate transport codec used when the web IDE
// hands a debug session back. Unlike the ZIP variant there is no gzip
// container and no archive: the compressed stream is the JSON text
// itself, carried as unpadded URL-safe base64.
type DeflateCodec struct {
	opts options
}

// NewDeflateCodec creates a deflate-variant codec.
func NewDeflateCodec(opts ...Option) *DeflateCodec {
	return &DeflateCodec{opts: newOptions(opts)}
}

// Decode converts a deflate-variant transport string back into a debug
// payload. It tolerates both alphabets and both padded and unpadded
// input: the string is percent-decoded, normalized to standard padded
// base64, decoded, and inflated as a raw deflate stream into a
// growable buffer bounded by the codec's size ceiling.
func (c *DeflateCodec) Decode(s string) (*payload.DebugPayload, error) {
	// PathUnescape, not QueryUnescape: a literal '+' is valid
	// standard-alphabet base64 and must survive percent-decoding
	// instead of collapsing into a space.
	unescaped, err := url.PathUnescape(s)
	if err != nil {
		return nil, &DecodeError{Stage: StagePercent, Err: err}
	}

	raw, err := base64.StdEncoding.DecodeString(ToStandard(unescaped))
	if err != nil {
		return nil, &DecodeError{Stage: StageBase64, Err: err}
	}

	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()

	text, err := readAllLimited(fr, c.opts.maxDecodedSize)
	if err != nil {
		var tooLarge *PayloadTooLargeError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &DecodeError{Stage: StageDeflate, Err: err}
	}

	if !utf8.Valid(text) {
		return nil, &EncodingError{}
	}

	p, err := payload.FromJSON(text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	c.opts.logger.Debug("decoded deflate-variant transport",
		"transport_chars", len(s),
		"deflate_bytes", len(raw),
		"json_bytes", len(text),
	)
	return p, nil
}

// Encode converts a debug payload into a deflate-variant transport
// string: JSON text, raw-deflate compressed at maximum level, standard
// base64, then stripped of padding and swapped to the URL-safe
// alphabet. The result needs no percent-encoding; every character it
// can contain is already safe inside a URL query value.
func (c *DeflateCodec) Encode(p *payload.DebugPayload) (string, error) {
	text, err := p.JSON()
	if err != nil {
		return "", &EncodeError{Err: err}
	}

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", &EncodeError{Err: err}
	}
	if _, err := fw.Write(text); err != nil {
		fw.Close()
		return "", &EncodeError{Err: err}
	}
	if err := fw.Close(); err != nil {
		return "", &EncodeError{Err: err}
	}

	transport := ToURLSafe(base64.StdEncoding.EncodeToString(buf.Bytes()))

	c.opts.logger.Debug("encoded deflate-variant payload",
		"json_bytes", len(text),
		"deflate_bytes", buf.Len(),
		"transport_chars", len(transport),
	)
	return transport, nil
}
