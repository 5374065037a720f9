package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/viant/rpg/internal/graph"
	"github.com/viant/rpg/internal/rpgerr"
	"github.com/viant/rpg/internal/storage"
)

func zapErr(err error) zap.Field { return zap.Error(err) }

// requireGraph loads the project's graph, failing with a helpful message
// when it doesn't exist yet (every command but build/info refuses to run
// without one, per spec §6).
func requireGraph(ctx context.Context, store *storage.Store) (*graph.Document, error) {
	doc, ok, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rpgerr.New(rpgerr.KindNotFound, "load",
			"no graph found under .rpg/ — run `rpg build` first")
	}
	return doc, nil
}
