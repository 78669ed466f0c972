package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/url"

	"github.com/klauspost/compress/gzip"

	"github.com/MarkTrayford/CPIDebugLocal/pkg/archive"
	"github.com/MarkTrayford/CPIDebugLocal/pkg/payload"
)

// ZipCodec is the archive-in-gzip transport codec used when handing a
// debug session to the web IDE.
type ZipCodec struct {
	opts options
}

// NewZipCodec creates a ZIP-variant codec.
func NewZipCodec(opts ...Option) *ZipCodec {
	return &ZipCodec{opts: newOptions(opts)}
}

// Encode converts a debug payload into a transport string: the payload's
// JSON text is stored as a single-entry ZIP archive, the archive is
// gzip-compressed, base64-encoded with the standard padded alphabet,
// and percent-encoded for URL embedding. Equal payloads always encode
// to identical strings; both the archive entry timestamp and the gzip
// MTIME field are pinned, never wall-clock.
func (c *ZipCodec) Encode(p *payload.DebugPayload) (string, error) {
	text, err := p.JSON()
	if err != nil {
		return "", &EncodeError{Err: err}
	}

	arch, err := archive.WriteSingle(payload.ArchiveEntryName, text)
	if err != nil {
		return "", &EncodeError{Err: err}
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return "", &EncodeError{Err: err}
	}
	// The zero ModTime in the gzip header is written as MTIME 0 on the
	// wire, keeping the container byte-stable across encodes.
	if _, err := zw.Write(arch); err != nil {
		zw.Close()
		return "", &EncodeError{Err: err}
	}
	if err := zw.Close(); err != nil {
		return "", &EncodeError{Err: err}
	}

	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())
	transport := url.QueryEscape(b64)

	c.opts.logger.Debug("encoded zip-variant payload",
		"json_bytes", len(text),
		"archive_bytes", len(arch),
		"gzip_bytes", buf.Len(),
		"transport_chars", len(transport),
	)
	return transport, nil
}

// Decode reverses the outer layers of a ZIP-variant transport string
// and returns the raw archive bytes. It does not parse the archive;
// archive.ReadSingle does that for callers that want the embedded
// document. Inputs that used the URL-safe alphabet are tolerated, but
// padding must already be valid.
func (c *ZipCodec) Decode(s string) ([]byte, error) {
	// PathUnescape, not QueryUnescape: the padded standard base64
	// this variant carries contains literal '+' characters, which
	// query semantics would turn into spaces.
	unescaped, err := url.PathUnescape(s)
	if err != nil {
		return nil, &DecodeError{Stage: StagePercent, Err: err}
	}

	raw, err := base64.StdEncoding.DecodeString(replaceURLSafe(unescaped))
	if err != nil {
		return nil, &DecodeError{Stage: StageBase64, Err: err}
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &DecodeError{Stage: StageGzip, Err: err}
	}
	defer zr.Close()

	arch, err := readAllLimited(zr, c.opts.maxDecodedSize)
	if err != nil {
		var tooLarge *PayloadTooLargeError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &DecodeError{Stage: StageGzip, Err: err}
	}

	c.opts.logger.Debug("decoded zip-variant transport",
		"transport_chars", len(s),
		"gzip_bytes", len(raw),
		"archive_bytes", len(arch),
	)
	return arch, nil
}
