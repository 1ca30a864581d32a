package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weft/internal/core/ports"
)

const NodeID graft.ID = "adapter.universe_loader"

func init() {
	graft.Register(graft.Node[ports.UniverseLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.UniverseLoader, error) {
			return NewFileLoader(), nil
		},
	})
}
