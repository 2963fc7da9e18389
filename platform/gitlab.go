package platform

import (
	"context"
	"fmt"

	gitlab "github.com/xanzy/go-gitlab"

	"github.com/randalmurphal/depbot/config"
)

type gitlabPlatform struct{}

func (gitlabPlatform) Name() string { return "gitlab" }

func (gitlabPlatform) Credentials(cfg config.ConfigMap, env map[string]string) (Credentials, error) {
	return tokenCredentials("gitlab", "GITLAB_TOKEN", cfg, env)
}

// ListRepositories returns the path-with-namespace of every project the
// token is a member of.
func (gitlabPlatform) ListRepositories(ctx context.Context, creds Credentials, endpoint string) ([]string, error) {
	var clientOpts []gitlab.ClientOptionFunc
	if endpoint != "" {
		clientOpts = append(clientOpts, gitlab.WithBaseURL(endpoint))
	}
	client, err := gitlab.NewClient(creds.Token, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create gitlab client: %w", err)
	}

	opts := &gitlab.ListProjectsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
		Membership:  gitlab.Ptr(true),
	}
	var names []string
	for {
		projects, resp, err := client.Projects.ListProjects(opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("list gitlab projects: %w", err)
		}
		for _, project := range projects {
			names = append(names, project.PathWithNamespace)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}
