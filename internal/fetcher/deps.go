package fetcher

import (
	"context"

	"github.com/jonmartinstorm/repokontekst/internal/models"
)

// GitHubAPI er flaten runner og tester bruker mot klienten.
type GitHubAPI interface {
	FetchRepository(ctx context.Context, id models.RepoIdentity, cred Credential) (models.RawRepoData, error)
	FetchUserRepositories(ctx context.Context, cred Credential) ([]models.RepoSummary, error)
}
