// ABOUTME: MCP server subcommand
// ABOUTME: Exposes sync config operations as tools over stdio
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/livelyapps/calsync/handlers"
	"github.com/livelyapps/calsync/sync"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(svc *sync.Service) error {
	log.Println("Starting CalSync MCP Server...")

	syncHandlers := handlers.NewSyncHandlers(svc)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "calsync",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sync_configs",
		Description: "List all sync configurations grouped into one-way and bidirectional entries",
	}, syncHandlers.ListConfigs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_sync_config",
		Description: "Create a one-way or bidirectional sync configuration between two calendars",
	}, syncHandlers.CreateConfig)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_sync_config",
		Description: "Delete a sync configuration; deleting a pair anchor removes both legs",
	}, syncHandlers.DeleteConfig)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trigger_sync",
		Description: "Trigger a manual sync run and report its event counts",
	}, syncHandlers.TriggerSync)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_calendars",
		Description: "List the calendars of the source or destination account with suggested colors",
	}, syncHandlers.ListCalendars)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_sync_logs",
		Description: "Fetch the sync history of a configuration, most recent first",
	}, syncHandlers.GetSyncLogs)

	// Run server on stdio transport
	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
