package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the spotify-mcp application
var rootCmd = &cobra.Command{
	Use:   "spotify-mcp",
	Short: "MCP server for the Spotify Web API",
	Long: `spotify-mcp is an MCP (Model Context Protocol) server that exposes the
Spotify catalog to AI assistants: search, track and artist details, albums,
playlists, recommendations, and editorial browse data.

It serves tool calls over stdio (default), SSE, or streamable HTTP, and
manages the Spotify client-credentials token transparently.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "spotify-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDocsCmd())
}
