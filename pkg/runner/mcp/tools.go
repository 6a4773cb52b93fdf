package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daybook/pkg/editor"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListCalendarsTool(srv, svc)
	registerCreateCalendarTool(srv, svc)
	registerToggleCalendarTool(srv, svc)
	registerListEventsTool(srv, svc)
	registerSearchEventsTool(srv, svc)
	registerGetEventTool(srv, svc)
	registerCreateEventTool(srv, svc)
	registerUpdateEventTool(srv, svc)
	registerDeleteEventTool(srv, svc)
}

// eventArgs are the event fields shared by create_event and update_event.
type eventArgs struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Calendar    string `json:"calendar"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	EndDate     string `json:"end_date"`
	End         string `json:"end"`
	AllDay      *bool  `json:"all_day"`
	Reminder    *int   `json:"reminder"`
}

func (a eventArgs) patch() editor.EventPatch {
	return editor.EventPatch{
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Calendar:    a.Calendar,
		Date:        a.Date,
		Start:       a.Start,
		EndDate:     a.EndDate,
		End:         a.End,
		AllDay:      a.AllDay,
		Reminder:    a.Reminder,
	}
}

func eventFieldOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("description", mcp.Description("Longer notes for the event.")),
		mcp.WithString("location", mcp.Description("Where the event happens.")),
		mcp.WithString("calendar", mcp.Description("Calendar id, id prefix or name. Defaults to the default calendar.")),
		mcp.WithString("date", mcp.Description("Start date as YYYY-MM-DD.")),
		mcp.WithString("start", mcp.Description("Start time as HH:MM (24h).")),
		mcp.WithString("end_date", mcp.Description("End date as YYYY-MM-DD. Defaults to the start date.")),
		mcp.WithString("end", mcp.Description("End time as HH:MM (24h). Defaults to one hour after start.")),
		mcp.WithBoolean("all_day", mcp.Description("Whether the event spans whole days.")),
		mcp.WithNumber("reminder",
			mcp.Description("Reminder in minutes before start; -1 clears it."),
			mcp.Min(-1),
		),
	}
}

func registerListCalendarsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_calendars",
		mcp.WithDescription("List all calendars with their colors, visibility and event counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cals, err := svc.ListCalendars(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"calendars": cals,
			"count":     len(cals),
		})
	})
}

func registerCreateCalendarTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_calendar",
		mcp.WithDescription("Create a new calendar."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Calendar name."),
		),
		mcp.WithString("color",
			mcp.Description("Hex color such as #34C759. Picked from the palette when empty."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddCalendar(ctx, name, request.GetString("color", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleCalendarTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_calendar",
		mcp.WithDescription("Show or hide a calendar's events."),
		mcp.WithString("calendar",
			mcp.Required(),
			mcp.Description("Calendar id, id prefix or name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("calendar")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleCalendar(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List events in a date range, sorted by start."),
		mcp.WithString("from", mcp.Description("First day as YYYY-MM-DD; open when empty.")),
		mcp.WithString("to", mcp.Description("Last day as YYYY-MM-DD; open when empty.")),
		mcp.WithString("calendar", mcp.Description("Optional calendar filter.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		from := strings.TrimSpace(request.GetString("from", ""))
		to := strings.TrimSpace(request.GetString("to", ""))
		events, err := svc.ListEvents(ctx, from, to, request.GetString("calendar", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"from":   from,
			"to":     to,
			"events": events,
			"count":  len(events),
		})
	})
}

func registerSearchEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_events",
		mcp.WithDescription("Search events by substring match across titles, descriptions and locations."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchEvents(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerGetEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_event",
		mcp.WithDescription("Fetch a single event by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event id or unique id prefix."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EventByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateEventTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Create an event. Without a start time it begins at 09:00 and lasts one hour."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title."),
		),
	}, eventFieldOptions()...)
	tool := mcp.NewTool("create_event", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args eventArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddEvent(ctx, args.patch())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEventTool(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Update fields of an existing event. Omitted fields are kept."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event id or unique id prefix."),
		),
		mcp.WithString("title", mcp.Description("New title.")),
	}, eventFieldOptions()...)
	tool := mcp.NewTool("update_event", opts...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args eventArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.ID) == "" {
			return mcp.NewToolResultError("id is required"), nil
		}
		dto, err := svc.UpdateEvent(ctx, args.ID, args.patch())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_event",
		mcp.WithDescription("Delete an event."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event id or unique id prefix."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteEvent(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"deleted": dto,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
