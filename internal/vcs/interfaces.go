package vcs

import (
	"context"

	"github.com/Tomas-vilte/diffclip/internal/models"
)

// PRDiffFetcher retrieves the unified diff of a pull request.
type PRDiffFetcher interface {
	FetchPRDiff(ctx context.Context, ref models.PRReference) (string, error)
}
