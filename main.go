// ABOUTME: Entry point for the CalSync client CLI, TUI, and MCP server
// ABOUTME: Routes commands against the sync backend configured via env or flags
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/livelyapps/calsync/api"
	"github.com/livelyapps/calsync/cli"
	"github.com/livelyapps/calsync/db"
	"github.com/livelyapps/calsync/sync"
	"github.com/livelyapps/calsync/tui"
)

const version = "0.1.0"

func main() {
	// Optional .env with CALSYNC_SERVER / CALSYNC_TOKEN overrides.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	serverURL := flag.String("server", "", "Backend server URL (default: $CALSYNC_SERVER or "+api.DefaultServer+")")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("calsync version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	server := resolveServer(*serverURL)
	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "login":
		if err := cli.LoginCommand(server, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "logout":
		if err := cli.LogoutCommand(commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "calendars":
		if err := cli.CalendarsCommand(newService(server), commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "configs":
		if len(commandArgs) == 0 {
			fmt.Println("Error: configs requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		svc := newService(server)
		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "list":
			if err := cli.ListConfigsCommand(svc, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "create":
			if err := cli.CreateConfigCommand(svc, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "delete":
			if err := cli.DeleteConfigCommand(svc, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown configs command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "trigger":
		if err := cli.TriggerCommand(newService(server), commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "logs":
		database, err := db.OpenDatabase(db.DefaultPath())
		if err != nil {
			log.Fatalf("Failed to open log cache: %v", err)
		}
		defer database.Close()

		if err := cli.LogsCommand(newService(server), database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "viz":
		if err := cli.VizCommand(newService(server), commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "tui":
		p := tea.NewProgram(tui.NewModel(newService(server)), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "mcp":
		if err := cli.MCPCommand(newService(server)); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func resolveServer(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CALSYNC_SERVER"); env != "" {
		return env
	}
	return api.DefaultServer
}

func newService(server string) *sync.Service {
	client := api.NewClient(server, api.DefaultTokenSource())
	return sync.NewService(client)
}

func printUsage() {
	fmt.Printf(`calsync v%s - Calendar sync dashboard client

USAGE:
  calsync [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --server <url>         Backend server URL (default: $CALSYNC_SERVER or %s)

COMMANDS:
  login                  Store an API token for the backend
  logout                 Remove the stored API token
  calendars <slot>       List calendars of the source or destination account
  configs                Sync configuration commands
  trigger                Trigger a manual sync run
  logs                   Show sync history (cached locally for offline use)
  viz                    Render the sync topology graph
  tui                    Interactive dashboard
  mcp                    Start MCP server on stdio

CONFIG COMMANDS:
  calsync configs list      List sync configs grouped into pairs and one-way
  calsync configs create    Create a sync config
    --source <id>             Source calendar ID (required)
    --dest <id>               Destination calendar ID (required)
    --lookahead <days>        Sync window in days (default: 90)
    --color <id>              Destination color 1-11, "auto", or blank to inherit
    --bidirectional           Create both directions as a pair
    --reverse-color <id>      Destination color for the reverse direction
    --privacy                 Redact event details in the forward direction
    --privacy-text <text>     Placeholder title for redacted events
    --reverse-privacy         Redact event details in the reverse direction
    --reverse-privacy-text <text>  Placeholder title for the reverse direction
  calsync configs delete    Delete a config; pair anchors remove both legs
    --id <id>                 Config ID (required)
    --yes                     Skip the confirmation prompt

TRIGGER:
  calsync trigger --id <id> [--both]

LOGS:
  calsync logs --id <id> [--limit <n>] [--cached]

VIZ:
  calsync viz [--out <file.png>]
`, version, api.DefaultServer)
}
