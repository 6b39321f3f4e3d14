package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Elactrac/newtation-mcp/internal/config"
	"github.com/Elactrac/newtation-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("newtation-mcp %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("newtation-mcp - AI brand presence audit tools over MCP")
			fmt.Println()
			fmt.Println("The server speaks MCP (JSON-RPC 2.0, one message per line) on")
			fmt.Println("stdin/stdout and is meant to be launched by an MCP client such")
			fmt.Println("as Claude Desktop rather than run by hand.")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  -v, --version    Print version and build metadata")
			fmt.Println("  -h, --help       Show this help")
			fmt.Println()
			fmt.Println("Environment:")
			fmt.Println("  NEWTATION_LOG_LEVEL=debug    Verbose diagnostics on stderr")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Newtation MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv, err := server.New()
	if err != nil {
		log.Fatalf("Startup error: %v", err)
	}
	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
