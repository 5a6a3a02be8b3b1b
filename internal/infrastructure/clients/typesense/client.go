package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/bluehands/branchfinder/pkg/config"
	"github.com/bluehands/branchfinder/pkg/retry"
	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	BranchesCollection = "branches"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(ctx context.Context, cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.DoWithLog(ctx, retry.StartupConfig(), "typesense", func() error {
		healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_, err := client.Health(healthCtx, 2*time.Second)
		return err
	}, retry.ZerologAttempts(log.Logger, "typesense"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// InitSchema ensures the branches collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	collections, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve collections: %w", err)
	}

	for _, col := range collections {
		if col.Name == BranchesCollection {
			log.Debug().Str("collection", BranchesCollection).Msg("typesense collection already exists")
			return nil
		}
	}

	schema := &api.CollectionSchema{
		Name: BranchesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "branch_id", Type: "int64"},
			{Name: "name", Type: "string"},
			{Name: "address", Type: "string", Optional: pointer.True()},
			{Name: "phone", Type: "string", Optional: pointer.True()},
			{Name: "latitude", Type: "string", Optional: pointer.True()},
			{Name: "longitude", Type: "string", Optional: pointer.True()},
			{Name: "type_id", Type: "int32"},
			{Name: "region", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "is_ev", Type: "bool", Facet: pointer.True()},
			{Name: "is_hydrogen", Type: "bool", Facet: pointer.True()},
			{Name: "is_frame", Type: "bool", Facet: pointer.True()},
			{Name: "is_cs_excellent", Type: "bool", Facet: pointer.True()},
			{Name: "is_n_line", Type: "bool", Facet: pointer.True()},
		},
		DefaultSortingField: pointer.String("branch_id"),
	}

	if _, err := c.client.Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Info().Str("collection", BranchesCollection).Msg("created typesense collection")
	return nil
}

// DropSchema deletes the branches collection
func (c *Client) DropSchema(ctx context.Context) error {
	if _, err := c.client.Collection(BranchesCollection).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

// IndexDocument upserts one branch document
func (c *Client) IndexDocument(ctx context.Context, document map[string]interface{}) error {
	_, err := c.client.Collection(BranchesCollection).Documents().Upsert(ctx, document)
	return err
}

// SearchDocuments returns one page of branch documents matching filterBy.
// An empty filter matches every document.
func (c *Client) SearchDocuments(ctx context.Context, filterBy string, page, perPage int) ([]map[string]interface{}, error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String("*"),
		QueryBy: pointer.String("name"),
		Page:    pointer.Int(page),
		PerPage: pointer.Int(perPage),
	}
	if filterBy != "" {
		params.FilterBy = pointer.String(filterBy)
	}

	result, err := c.client.Collection(BranchesCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, err
	}
	if result.Hits == nil {
		return nil, nil
	}

	docs := make([]map[string]interface{}, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document != nil {
			docs = append(docs, *hit.Document)
		}
	}
	return docs, nil
}
