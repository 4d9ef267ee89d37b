package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nutrimcp/backend/internal/domain"
)

const (
	resourceScheme = "nutrition"
	jsonMIMEType   = "application/json"
)

var resourceTemplates = []*mcpsdk.ResourceTemplate{
	{
		URITemplate: "nutrition://food/{foodId}",
		Name:        "food",
		Description: "Details of a food",
		MIMEType:    jsonMIMEType,
	},
	{
		URITemplate: "nutrition://search/{query}",
		Name:        "search",
		Description: "Foods matching a search term",
		MIMEType:    jsonMIMEType,
	},
	{
		URITemplate: "nutrition://category/{categoryId}",
		Name:        "category",
		Description: "A food category and its subcategories",
		MIMEType:    jsonMIMEType,
	},
	{
		URITemplate: "nutrition://recipe/{recipeId}",
		Name:        "recipe",
		Description: "Details of a recipe",
		MIMEType:    jsonMIMEType,
	},
	{
		URITemplate: "nutrition://recipe/{recipeId}/ingredients",
		Name:        "recipe-ingredients",
		Description: "Ingredients of a recipe",
		MIMEType:    jsonMIMEType,
	},
	{
		URITemplate: "nutrition://recipe/{recipeId}/nutrition",
		Name:        "recipe-nutrition",
		Description: "Nutritional values of a recipe computed from its ingredients",
		MIMEType:    jsonMIMEType,
	},
}

// resourceRef is a parsed resource URI
type resourceRef struct {
	kind     string
	id       int
	query    string
	sub      string
	language string
}

// parseResourceURI splits nutrition://<kind>/<arg>[/<sub>][?language=xx].
func parseResourceURI(raw string) (resourceRef, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != resourceScheme {
		return resourceRef{}, fmt.Errorf("%w: invalid resource URI %q", domain.ErrInvalidInput, raw)
	}

	ref := resourceRef{kind: u.Host, language: u.Query().Get("language")}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" || len(parts) > 2 {
		return resourceRef{}, fmt.Errorf("%w: invalid resource URI %q", domain.ErrInvalidInput, raw)
	}
	if len(parts) == 2 {
		ref.sub = parts[1]
	}

	if ref.kind == "search" {
		if ref.sub != "" {
			return resourceRef{}, fmt.Errorf("%w: invalid resource URI %q", domain.ErrInvalidInput, raw)
		}
		ref.query = parts[0]
		return ref, nil
	}

	ref.id, err = strconv.Atoi(parts[0])
	if err != nil {
		return resourceRef{}, fmt.Errorf("%w: invalid identifier %q in resource URI", domain.ErrInvalidInput, parts[0])
	}
	return ref, nil
}

// readResource serves every nutrition:// resource template.
func (s *Server) readResource(ctx context.Context, req *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
	uri := req.Params.URI
	callID := uuid.NewString()
	start := time.Now()

	result, err := s.resolveResource(ctx, uri)

	event := s.logger.Info()
	if err != nil {
		event = s.logger.Warn().Err(err).Str("error_kind", string(domain.Kind(err)))
	}
	event.
		Str("call_id", callID).
		Str("uri", uri).
		Dur("duration", time.Since(start)).
		Msg("resource read")

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcpsdk.ResourceNotFoundError(uri)
		}
		return nil, errors.New(errorText(err))
	}

	text, err := marshal(result)
	if err != nil {
		return nil, err
	}
	return &mcpsdk.ReadResourceResult{
		Contents: []*mcpsdk.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIMEType,
			Text:     text,
		}},
	}, nil
}

func (s *Server) resolveResource(ctx context.Context, uri string) (any, error) {
	ref, err := parseResourceURI(uri)
	if err != nil {
		return nil, err
	}
	lang, err := domain.ParseLanguage(ref.language)
	if err != nil {
		return nil, err
	}

	switch {
	case ref.kind == "food" && ref.sub == "":
		return s.foods.FoodDetails(ctx, ref.id, lang)
	case ref.kind == "search":
		return s.foods.SearchFoods(ctx, domain.SearchRequest{Query: ref.query, Language: lang})
	case ref.kind == "category" && ref.sub == "":
		return s.foods.Category(ctx, ref.id, lang)
	case ref.kind == "recipe" && ref.sub == "":
		return s.foods.RecipeDetails(ctx, ref.id, lang)
	case ref.kind == "recipe" && ref.sub == "ingredients":
		return s.foods.RecipeIngredients(ctx, ref.id, lang)
	case ref.kind == "recipe" && ref.sub == "nutrition":
		return s.foods.RecipeNutrition(ctx, ref.id, lang)
	}
	return nil, fmt.Errorf("%w: unknown resource %q", domain.ErrNotFound, uri)
}
