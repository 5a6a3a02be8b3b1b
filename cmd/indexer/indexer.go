package main

import (
	"context"
	"fmt"

	"github.com/bluehands/branchfinder/internal/adapters/search"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/rs/zerolog/log"
)

type branchSource interface {
	ListAll(ctx context.Context) ([]entities.BranchRecord, error)
}

type branchIndex interface {
	DropSchema(ctx context.Context) error
	InitSchema(ctx context.Context) error
	IndexDocument(ctx context.Context, document map[string]interface{}) error
}

// indexBranches copies every branch into the search index. Failed documents
// are logged and skipped; the count of indexed documents is returned.
func indexBranches(ctx context.Context, source branchSource, index branchIndex, reset bool) (int, error) {
	if reset {
		log.Info().Msg("reset requested, deleting branches collection")
		if err := index.DropSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to delete collection")
		}
	}

	if err := index.InitSchema(ctx); err != nil {
		return 0, fmt.Errorf("init schema: %w", err)
	}

	branches, err := source.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list branches: %w", err)
	}
	log.Info().Int("branches", len(branches)).Msg("indexing branches")

	indexed := 0
	for _, b := range branches {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if err := index.IndexDocument(ctx, search.BranchDocument(b)); err != nil {
			log.Warn().Err(err).Int64("branch_id", b.ID).Msg("failed to index branch")
			continue
		}
		indexed++
	}
	return indexed, nil
}
