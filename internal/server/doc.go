// Package server exposes a bridge.Bridge to other processes.
//
// # Protocol
//
// The primary transport is JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// An optional HTTP API (see HTTPApp) serves the same tools as
// POST /api/call/:method.
//
// # Available Tools
//
// Matrix handles:
//   - image_to_mat: Decode a file into a matrix handle
//   - mat_to_image: Write a matrix to PNG or JPEG
//   - mat_info: Describe a matrix
//   - mat_release: Release a matrix handle
//
// Edge detection:
//   - edge_overlay: Blur, Canny and contour fill in one call
//   - gaussian_blur: Grayscale and blur into a new matrix
//   - canny: Canny and contour fill on a blurred matrix
//
// File operations:
//   - crop: Cut a rectangle out of an image file
//   - combine: Composite two image files
//
// # Error Handling
//
// A rejected operation is returned as a JSON-RPC error with code -32000,
// the rejection message as message, and {code, message} as data, where code
// is ENOENT, EISDIR, EINVAL or EGENERIC. Over HTTP the same rejection is
// the response body, with status 400, 404, 409 or 500 respectively.
//
// # Usage
//
//	b := bridge.New(bridge.DefaultOptions())
//	srv := server.New(b, logger)
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
