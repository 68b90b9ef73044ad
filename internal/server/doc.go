// Package server implements the MCP (Model Context Protocol) server for
// scale-space keypoint detection.
//
// This package provides a JSON-RPC 2.0 server that exposes the Difference-of-
// Gaussians detector in internal/detection through the MCP protocol, so an
// MCP client can run the detector on image files and inspect its pyramids.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Keypoint Detection:
//   - image_detect_keypoints: Run the full detector, return (x, y, level) triples
//   - image_keypoint_overlay: Draw detected keypoints on an upscaled copy
//
// Pyramid Inspection:
//   - image_gaussian_pyramid: Render the Gaussian pyramid as a PNG strip
//   - image_dog_pyramid: Render the DoG pyramid as a PNG strip
//
// The detection tools share the parameters sigma0, k, levels, th_contrast,
// th_r and curvature_filter. Omitted parameters take the detector defaults.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images and their grayscale
// matrices. Both are cached by path and reused across tool calls.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Set KEYPOINT_MCP_LOG_LEVEL=debug to have cmd/keypoint-mcp install a stderr
// logger through SetDebugLogger.
package server
