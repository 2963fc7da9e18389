package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/randalmurphal/depbot/config"
)

type githubPlatform struct{}

func (githubPlatform) Name() string { return "github" }

// Credentials accepts a personal access token (option or GITHUB_TOKEN) or,
// failing that, GitHub App credentials.
func (githubPlatform) Credentials(cfg config.ConfigMap, env map[string]string) (Credentials, error) {
	if token := lookupToken(cfg, env, "GITHUB_TOKEN"); token != "" {
		return Credentials{Token: token}, nil
	}

	if appID, ok := asInt64(cfg["githubAppId"]); ok && appID != 0 {
		if key, ok := cfg["githubAppKey"].(string); ok && key != "" {
			return Credentials{AppID: appID, AppKey: []byte(key)}, nil
		}
	}

	return Credentials{}, fmt.Errorf(
		"%w: platform github needs the token option, GITHUB_TOKEN, or githubAppId with githubAppKey",
		ErrMissingToken)
}

// ListRepositories returns the full names of every repository the
// credential can see. App credentials list across all installations.
func (g githubPlatform) ListRepositories(ctx context.Context, creds Credentials, endpoint string) ([]string, error) {
	if creds.Token == "" && creds.AppID != 0 {
		return g.listAppRepositories(ctx, creds, endpoint)
	}

	client, err := newGitHubClient(ctx, creds.Token, endpoint)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var names []string
	for {
		repos, resp, err := client.Repositories.List(ctx, "", opts)
		if err != nil {
			return nil, fmt.Errorf("list github repositories: %w", err)
		}
		for _, repo := range repos {
			names = append(names, repo.GetFullName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// newGitHubClient builds a go-github client authenticated with token. An
// empty endpoint means api.github.com.
func newGitHubClient(ctx context.Context, token, endpoint string) (*github.Client, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, source))

	if endpoint == "" {
		return client, nil
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	baseURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse github endpoint: %w", err)
	}
	client.BaseURL = baseURL
	return client, nil
}
