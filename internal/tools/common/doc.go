// Package common provides shared utilities for MCP tool implementations.
// It contains argument extraction helpers and instrumentation wrappers used
// across all tool packages to ensure consistent behavior.
package common
