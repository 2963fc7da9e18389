package platform

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-github/v57/github"
)

// appJWTLifetime is the signed-JWT lifetime GitHub allows for App
// authentication.
const appJWTLifetime = 5 * time.Minute

// listAppRepositories enumerates repositories across every installation of
// a GitHub App: sign an App JWT, list installations, mint an installation
// token per installation, and list that installation's repositories.
func (g githubPlatform) listAppRepositories(ctx context.Context, creds Credentials, endpoint string) ([]string, error) {
	signed, err := appJWT(creds.AppID, creds.AppKey)
	if err != nil {
		return nil, err
	}

	// The App JWT authenticates as the App itself, enough to list
	// installations and mint their tokens.
	appClient, err := newGitHubClient(ctx, signed, endpoint)
	if err != nil {
		return nil, err
	}

	installations, err := listInstallations(ctx, appClient)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, installation := range installations {
		token, _, err := appClient.Apps.CreateInstallationToken(ctx, installation.GetID(), nil)
		if err != nil {
			return nil, fmt.Errorf("create installation token for %d: %w", installation.GetID(), err)
		}

		installationClient, err := newGitHubClient(ctx, token.GetToken(), endpoint)
		if err != nil {
			return nil, err
		}

		repos, err := listInstallationRepos(ctx, installationClient)
		if err != nil {
			return nil, fmt.Errorf("list repositories for installation %d: %w", installation.GetID(), err)
		}
		names = append(names, repos...)
	}
	return names, nil
}

func listInstallations(ctx context.Context, client *github.Client) ([]*github.Installation, error) {
	opts := &github.ListOptions{PerPage: 100}
	var installations []*github.Installation
	for {
		page, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("list app installations: %w", err)
		}
		installations = append(installations, page...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return installations, nil
}

func listInstallationRepos(ctx context.Context, client *github.Client) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}
	var names []string
	for {
		page, resp, err := client.Apps.ListRepos(ctx, opts)
		if err != nil {
			return nil, err
		}
		for _, repo := range page.Repositories {
			names = append(names, repo.GetFullName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// appJWT signs the short-lived RS256 JWT GitHub requires from Apps. The
// issuer is the App id; issuance is backdated slightly to absorb clock
// skew.
func appJWT(appID int64, key []byte) (string, error) {
	parsed, err := jwt.ParseRSAPrivateKeyFromPEM(key)
	if err != nil {
		return "", fmt.Errorf("parse github app key: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-30 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appJWTLifetime)),
		Issuer:    strconv.FormatInt(appID, 10),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(parsed)
	if err != nil {
		return "", fmt.Errorf("sign github app jwt: %w", err)
	}
	return signed, nil
}
