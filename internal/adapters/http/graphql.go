package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/waymark/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	pointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Point",
		Fields: graphql.Fields{
			"latitude":  &graphql.Field{Type: graphql.Int},
			"longitude": &graphql.Field{Type: graphql.Int},
		},
	})

	featureType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Feature",
		Fields: graphql.Fields{
			"name":     &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: pointType},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"features": &graphql.Field{Type: graphql.Int},
			"notes":    &graphql.Field{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"featureAt": &graphql.Field{
				Type:        featureType,
				Description: "Feature at an exact coordinate (unnamed when nothing is registered there)",
				Args: graphql.FieldConfigArgument{
					"latitude":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"longitude": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pt := domain.Point{
						Latitude:  int32(p.Args["latitude"].(int)),
						Longitude: int32(p.Args["longitude"].(int)),
					}
					return deps.Guide.GetFeature(p.Context, pt)
				},
			},
			"featuresWithin": &graphql.Field{
				Type:        graphql.NewList(featureType),
				Description: "All features inside a rectangle, corners in any order",
				Args: graphql.FieldConfigArgument{
					"lo_lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"lo_lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"hi_lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"hi_lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r := domain.Rectangle{
						Lo: domain.Point{
							Latitude:  int32(p.Args["lo_lat"].(int)),
							Longitude: int32(p.Args["lo_lon"].(int)),
						},
						Hi: domain.Point{
							Latitude:  int32(p.Args["hi_lat"].(int)),
							Longitude: int32(p.Args["hi_lon"].(int)),
						},
					}
					return deps.Guide.FeaturesWithin(p.Context, r)
				},
			},
			"stats": &graphql.Field{
				Type:        statsType,
				Description: "Counts of loaded features and exchanged notes",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return map[string]interface{}{
						"features": deps.Guide.FeatureCount(),
						"notes":    deps.Guide.NoteCount(),
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
