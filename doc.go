// Copyright (c) 2024 Mark Trayford
// SPDX-License-Identifier: BSD-2-Clause

/*
Package cpidebuglocal bridges a CPI scripting IDE plugin and a web-based
Groovy IDE by converting debugger payloads between the plugin's JSON
format and the compressed, URL-safe transport strings the web IDE
consumes.

# Overview

A debug session captured in the integration tenant (script source, input
body, exchange headers and properties) is serialized to JSON, compressed,
and encoded into a string that survives embedding in a URL query. Two
wire variants exist and are not interchangeable:

  - ZIP variant: the JSON text is stored as a single-entry ZIP archive,
    the archive is wrapped in a gzip container, base64-encoded with the
    standard alphabet, then percent-encoded. Used when handing a session
    to the web IDE.
  - Deflate variant: the JSON text is raw-deflate compressed (no gzip or
    zlib framing) and carried as unpadded URL-safe base64. Used when the
    web IDE hands a session back.

Both variants pin every timestamp that would otherwise leak into the
compressed bytes, so encoding equal payloads twice produces identical
transport strings.

# Package Structure

	github.com/MarkTrayford/CPIDebugLocal/pkg/codec   - transport codecs and base64 normalization
	github.com/MarkTrayford/CPIDebugLocal/pkg/payload - debug payload value type
	github.com/MarkTrayford/CPIDebugLocal/pkg/archive - deterministic single-entry ZIP handling

# Quick Start

	import (
	    "github.com/MarkTrayford/CPIDebugLocal/pkg/codec"
	    "github.com/MarkTrayford/CPIDebugLocal/pkg/payload"
	)

	p := &payload.DebugPayload{
	    CurrentSessionType: "groovy",
	    Script:             src,
	    FunctionName:       "processData",
	}

	zc := codec.NewZipCodec()
	transport, err := zc.Encode(p)

The cmd/webide-bridge program wraps the codecs in a small local HTTP
service that the IDE plugin talks to.
*/
package cpidebuglocal
