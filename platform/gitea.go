package platform

import (
	"context"
	"fmt"

	"github.com/randalmurphal/depbot/config"
	depbothttp "github.com/randalmurphal/depbot/http"
)

type giteaPlatform struct{}

// giteaPageSize is Gitea's default maximum page size.
const giteaPageSize = 50

func (giteaPlatform) Name() string { return "gitea" }

func (giteaPlatform) Credentials(cfg config.ConfigMap, env map[string]string) (Credentials, error) {
	return tokenCredentials("gitea", "GITEA_TOKEN", cfg, env)
}

// ListRepositories returns the full name of every repository the token's
// user can access. Gitea has no official Go SDK, so this walks the REST
// API directly.
func (giteaPlatform) ListRepositories(ctx context.Context, creds Credentials, endpoint string) ([]string, error) {
	if endpoint == "" {
		endpoint = "https://gitea.com"
	}

	client := depbothttp.NewClient(depbothttp.ClientConfig{
		BaseURL:     endpoint,
		ServiceName: "gitea",
		Token:       creds.Token,
	})

	type giteaRepo struct {
		FullName string `json:"full_name"`
	}

	iter := depbothttp.NewPageIterator(func(ctx context.Context, page int) ([]giteaRepo, bool, error) {
		var repos []giteaRepo
		path := fmt.Sprintf("/api/v1/user/repos?page=%d&limit=%d", page, giteaPageSize)
		if err := client.Get(ctx, path, &repos); err != nil {
			return nil, false, err
		}
		return repos, len(repos) == giteaPageSize, nil
	})

	repos, err := iter.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gitea repositories: %w", err)
	}

	names := make([]string, len(repos))
	for i, repo := range repos {
		names[i] = repo.FullName
	}
	return names, nil
}
