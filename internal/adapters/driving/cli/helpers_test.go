package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/services"
)

// setupTestServices wires the commands to in-memory stores seeded with
// a few anchors, returning a cleanup that restores the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	old := Services{
		Annotations: annotationService,
		Search:      searchService,
		Progress:    progressStore,
		Config:      configStore,
		Positions:   positionCache,
	}

	store := memory.NewAnnotationStore()
	ctx := context.Background()
	_, err := store.Create(ctx, domain.Anchor{
		CopyID: "copy-1", Kind: domain.KindComment, Page: 2,
		Text: "orbital mechanics", Body: "review before exam",
	})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Anchor{
		CopyID: "copy-1", Kind: domain.KindHighlight, Page: 9,
		Text: "Hohmann transfer", Color: domain.ColorGreen,
	})
	require.NoError(t, err)

	progress := memory.NewProgressStore()

	SetServices(Services{
		Annotations: services.NewAnnotationService(store, nil),
		Search:      services.NewSearchService(memory.NewSearchIndex(store)),
		Progress:    progress,
		Positions:   progress,
	})

	return func() {
		SetServices(old)
	}
}
