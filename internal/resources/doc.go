// Package resources registers MCP resources describing the server itself:
// credential state and token diagnostics that clients can read without
// invoking a tool.
package resources
