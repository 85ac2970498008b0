// Package cmd implements the command-line interface for spotify-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Spotify catalog tools
//   - version: Display version information
//   - docs: Generate markdown documentation for the MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
