// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for birdwatch.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdSounds
	CmdMaps
	CmdNews
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	Model   string
	URL     string

	// Command-specific
	Limit int

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `birdwatch - birdwatching chat and field library for the terminal

Birdwatch talks to a birdwatching API service that identifies birds
from descriptions and audio recordings, and curates a library of bird
sounds, distribution maps, and newsletters.

Usage:
  birdwatch                  Start TUI (default)
  birdwatch chat             Interactive chat in the terminal
  birdwatch sounds           Browse the bird sound library
  birdwatch maps             Browse bird distribution maps
  birdwatch news             Browse newsletter issues
  birdwatch status, s        Show configuration and server status
  birdwatch version          Show version information
  birdwatch help             Show this help

Chat Commands (during chat):
  /model [name]       Show or switch the active model
  /attach <path>      Attach an audio recording or photo
  /new                Start a fresh chat
  /history [query]    List recent chats; a query searches the local cache
  /export [path]      Save the chat as a Markdown transcript
  /help, /h           Show available commands
  /quit, /q           Exit chat

Models:
  llm        Conversational identification from descriptions
  llm-cnn    Audio classifier: attach a recording, get species matches
  llm-rag    Answers grounded in the sound and map libraries
  llm-agent  Multi-step research over the whole library

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --json          Output listings in JSON (sounds, maps, news, status)
  --model NAME    Override the default model
  --url URL       Override the API base URL
  --limit N       Limit library listings to N entries

Examples:
  birdwatch                           Start the TUI
  birdwatch chat                      Chat from a plain terminal
  birdwatch chat --model llm-cnn      Start chat with the audio classifier
  birdwatch sounds --limit 10         Ten most recent bird sounds
  birdwatch maps --json               Distribution maps as JSON
  birdwatch status                    Check server reachability
  birdwatch --url http://10.0.0.5:9000 chat

Environment:
  BIRDWATCH_API_URL            API base URL (default http://localhost:9000)
  BIRDWATCH_CHAT_MODEL         Default model tag
  BIRDWATCH_API_TIMEOUT_SECS   Per-request timeout in seconds

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("birdwatch version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// No remaining args: default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "chat":
		parseChatArgs(&parsedArgs, remaining)
		return CmdChat, parsedArgs

	case "sounds", "sound":
		return CmdSounds, parsedArgs

	case "maps", "map":
		return CmdMaps, parsedArgs

	case "news", "newsletters", "newsletter":
		return CmdNews, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: restore it and fall back to the TUI
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdTUI, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		case "--url":
			if i+1 < len(args) {
				i++
				parsedArgs.URL = args[i]
			}
		case "--limit":
			if i+1 < len(args) {
				i++
				if n, err := strconv.Atoi(args[i]); err == nil && n > 0 {
					parsedArgs.Limit = n
				}
			}
		default:
			// Check for --flag=value forms
			switch {
			case strings.HasPrefix(arg, "--model="):
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			case strings.HasPrefix(arg, "--url="):
				parsedArgs.URL = strings.TrimPrefix(arg, "--url=")
			case strings.HasPrefix(arg, "--limit="):
				if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--limit=")); err == nil && n > 0 {
					parsedArgs.Limit = n
				}
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseChatArgs parses chat command specific arguments.
func parseChatArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-m", "--model":
			if i+1 < len(remaining) {
				i++
				args.Model = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			}
		}
	}
}
