// ABOUTME: MCP resource implementations for clinic records.
// ABOUTME: Provides clinic://summary and clinic://records resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	summaryURI = "clinic://summary"
	recordsURI = "clinic://records"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Clinic Summary",
		Description: "Counts of owners, pets and visits plus each owner's pets",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recordsURI,
		Name:        "Clinic Records",
		Description: "Every owner with their pets and visit histories",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)
}

// Resource handlers

type ownerSummary struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Pets   []string `json:"pets"`
	Visits int      `json:"visits"`
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := s.repo.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	owners := make([]ownerSummary, 0, len(data.Owners))
	var pets, visits int
	for _, o := range data.Owners {
		sum := ownerSummary{ID: o.ID, Name: o.Name, Pets: make([]string, 0, len(o.Pets))}
		for _, p := range o.Pets {
			sum.Pets = append(sum.Pets, p.Name)
			sum.Visits += len(p.Visits)
		}
		pets += len(o.Pets)
		visits += sum.Visits
		owners = append(owners, sum)
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"counts": map[string]int{
			"owners": len(data.Owners),
			"pets":   pets,
			"visits": visits,
		},
		"owners": owners,
	}

	return jsonResource(summaryURI, result)
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := s.repo.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return jsonResource(recordsURI, data)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
