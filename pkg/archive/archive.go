// Package archive implements deterministic single-entry ZIP handling
// for the transport codec.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
)

// entryModTime is the timestamp written for every archive entry. The
// web IDE compares transport strings byte-for-byte, so wall-clock
// timestamps must never reach the compressed stream.
var entryModTime = time.Unix(0, 0).UTC()

// WriteSingle builds a ZIP archive holding one deflate-compressed entry
// with the given name and content. The entry timestamp is pinned to the
// Unix epoch and the internal deflate stream runs at maximum
// compression, so equal inputs always produce equal archive bytes.
func WriteSingle(name string, content []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	hdr := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entryModTime,
	}
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		zw.Close()
		return nil, fmt.Errorf("creating archive entry %q: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		zw.Close()
		return nil, fmt.Errorf("writing archive entry %q: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	return buf.Bytes(), nil
}

// ReadSingle extracts the named entry from ZIP archive bytes. It is the
// caller-side counterpart to WriteSingle: the ZIP-variant codec stops
// at raw archive bytes on decode, and callers that want the embedded
// document use this helper.
func ReadSingle(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive entry %q: %w", name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading archive entry %q: %w", name, err)
		}
		return content, nil
	}

	return nil, fmt.Errorf("archive entry %q not found", name)
}
