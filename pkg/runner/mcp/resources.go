package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCalendarsResource(srv, svc)
	registerDayTemplate(srv, svc)
	registerEventTemplate(srv, svc)
}

func registerCalendarsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"daybook://calendars",
		"Calendars",
		mcp.WithResourceDescription("All calendars with colors, visibility and event counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		cals, err := svc.ListCalendars(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"calendars": cals,
			"count":     len(cals),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daybook://days/{date}",
		"Day Agenda",
		mcp.WithTemplateDescription("Visible events on a day given as YYYY-MM-DD."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := argument(request, "date")
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}

		events, err := svc.EventsOn(ctx, date)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"date":   date,
			"count":  len(events),
			"events": events,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerEventTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daybook://events/{id}",
		"Event Details",
		mcp.WithTemplateDescription("Detailed information about a single event."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := argument(request, "id")
		if id == "" {
			return nil, fmt.Errorf("event id is required")
		}

		dto, err := svc.EventByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"event": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// argument reads a template variable. The server fills them as []string.
func argument(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
