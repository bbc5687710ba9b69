// Package graph is the transport boundary of the client: it sends a rendered
// query plus its variables to a subgraph endpoint and hands back the raw data
// envelope. Transport failures propagate to the caller untouched; retry
// policy lives below this layer, in the HTTP adapter.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shieldpool/subgraph-go/internal/adapter"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/logger"
)

// Request represents a GraphQL request
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// ResponseError is one GraphQL-level error returned by the subgraph
type ResponseError struct {
	Message string `json:"message"`
}

// Envelope is the standard GraphQL response wrapper
type Envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []ResponseError            `json:"errors"`
}

// Executor executes a rendered query against a subgraph and returns the data
// envelope keyed by top-level field name
//
//go:generate mockgen -source=client.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	Execute(ctx context.Context, operationName string, query string, variables map[string]any) (map[string]json.RawMessage, error)
}

// Client implements Executor over HTTP
type Client struct {
	httpClient adapter.HTTPClient
	endpoint   string
	json       adapter.JSON
}

// NewClient creates a new subgraph transport client
func NewClient(httpClient adapter.HTTPClient, endpoint string, json adapter.JSON) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		json:       json,
	}
}

// Execute POSTs the query and parses the response envelope. A response with
// GraphQL-level errors surfaces as domain.ErrGraphQL; zero matching records
// is not an error.
func (c *Client) Execute(ctx context.Context, operationName string, query string, variables map[string]any) (map[string]json.RawMessage, error) {
	requestBody, err := c.json.Marshal(Request{
		Query:         query,
		Variables:     variables,
		OperationName: operationName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	requestID := uuid.NewString()
	start := time.Now()
	logger.DebugCtx(ctx, "executing subgraph query",
		zap.String("request_id", requestID),
		zap.String("operation", operationName),
		zap.String("endpoint", c.endpoint))

	responseBody, err := c.httpClient.Post(ctx, c.endpoint, "application/json", bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to call subgraph: %w", err)
	}

	var envelope Envelope
	if err := c.json.Unmarshal(responseBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subgraph response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrGraphQL, strings.Join(messages, "; "))
	}

	logger.DebugCtx(ctx, "subgraph query completed",
		zap.String("request_id", requestID),
		zap.String("operation", operationName),
		zap.Duration("elapsed", time.Since(start)))

	return envelope.Data, nil
}
