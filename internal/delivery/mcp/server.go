// Package mcp exposes the nutrition database as MCP tools and resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/nutrimcp/backend/internal/domain"
	"github.com/nutrimcp/backend/internal/usecase"
)

// ServerName is the implementation name announced to MCP clients
const ServerName = "swiss-nutrition-mcp-server"

// Server wires the use cases to an MCP server
type Server struct {
	foods     *usecase.FoodService
	languages *usecase.LanguageService
	localizer domain.Localizer
	server    *mcpsdk.Server
	logger    zerolog.Logger
}

// NewServer creates an MCP server with every tool and resource template registered
func NewServer(
	foods *usecase.FoodService,
	languages *usecase.LanguageService,
	localizer domain.Localizer,
	version string,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		foods:     foods,
		languages: languages,
		localizer: localizer,
		server: mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    ServerName,
			Version: version,
		}, nil),
		logger: logger.With().Str("component", "mcp").Logger(),
	}

	for _, t := range s.tools() {
		s.addTool(t)
	}
	for _, r := range resourceTemplates {
		s.server.AddResourceTemplate(r, s.readResource)
	}

	return s
}

// Run serves MCP over transport until ctx is done or the client disconnects
func (s *Server) Run(ctx context.Context, transport mcpsdk.Transport) error {
	s.logger.Info().Msg("mcp server started")
	return s.server.Run(ctx, transport)
}

// Connect starts a session over transport without blocking
func (s *Server) Connect(ctx context.Context, transport mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// HTTPHandler serves MCP over the streamable HTTP transport
func (s *Server) HTTPHandler() http.Handler {
	return mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return s.server
	}, nil)
}

// addTool registers t with audit logging and error translation.
func (s *Server) addTool(t tool) {
	s.server.AddTool(&mcpsdk.Tool{
		Name:        t.name,
		Description: s.localizer.Translate(t.descriptionKey, domain.DefaultLanguage),
		InputSchema: t.schema,
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		callID := uuid.NewString()
		start := time.Now()

		args := req.Params.Arguments
		if len(args) == 0 {
			args = json.RawMessage(`{}`)
		}

		result, err := t.handle(ctx, args)
		event := s.logger.Info()
		if err != nil {
			event = s.logger.Warn().Err(err).Str("error_kind", string(domain.Kind(err)))
		}
		event.
			Str("call_id", callID).
			Str("tool", t.name).
			Dur("duration", time.Since(start)).
			Msg("tool call")

		if err != nil {
			return errorResult(err), nil
		}
		text, err := marshal(result)
		if err != nil {
			return errorResult(err), nil
		}
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
		}, nil
	})
}

// errorResult reports err to the client as a tool error.
func errorResult(err error) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: errorText(err)}},
	}
}

// errorText renders err so that it starts with its error class.
func errorText(err error) string {
	var class error
	switch domain.Kind(err) {
	case domain.KindInvalidInput:
		class = domain.ErrInvalidInput
	case domain.KindNotFound:
		class = domain.ErrNotFound
	default:
		class = domain.ErrUpstream
	}

	msg := err.Error()
	if strings.HasPrefix(msg, class.Error()) {
		return msg
	}
	return fmt.Sprintf("%s: %s", class, msg)
}

func marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

// decodeArgs unmarshals tool arguments into dst.
func decodeArgs(args json.RawMessage, dst any) error {
	if err := json.Unmarshal(args, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: argument %q must be %s", domain.ErrInvalidInput, typeErr.Field, typeErr.Type)
		}
		return fmt.Errorf("%w: malformed arguments: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
