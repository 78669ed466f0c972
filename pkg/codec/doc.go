// Copyright (c) 2024 Mark Trayford
// SPDX-License-Identifier: BSD-2-Clause

/*
Package codec implements the transport codecs that carry debug payloads
between the IDE plugin and the web IDE as URL-safe strings.

# Variants

Two wire variants exist. They share the base64 alphabet/padding
normalization but are otherwise not interchangeable, and each has its
own named codec so a caller can never feed one variant's string to the
other by flipping a mode flag.

ZipCodec frames the payload as archive-in-gzip:

	JSON → single-entry ZIP (data.json) → gzip → standard base64 → percent-encoding

Its Decode reverses the outer layers only and stops at raw archive
bytes; extracting the embedded document is the caller's job (see
package archive).

DeflateCodec frames the payload as bare compressed text:

	JSON → raw deflate (no gzip/zlib framing) → URL-safe base64, unpadded

Its Decode goes all the way back to a DebugPayload.

# Determinism

Encoding equal payloads twice yields byte-identical transport strings.
Every timestamp that would otherwise reach the compressed bytes is
pinned: the archive entry's modification time is the Unix epoch and the
gzip container's MTIME field is zero.

# Errors

Failures carry a specific type identifying what went wrong:
EncodeError, DecodeError (with the failing stage), EncodingError for
invalid UTF-8, ParseError for malformed JSON, and PayloadTooLargeError
when inflated output exceeds the configured ceiling. Operations never
return a partial result alongside an error.

# Tracing

Both codecs accept a *slog.Logger via WithLogger and emit per-stage
byte counts at debug level through it. Without the option nothing is
logged.

# Concurrency

Codecs hold no mutable state. All operations are pure and safe for
concurrent use from multiple goroutines.
*/
package codec
