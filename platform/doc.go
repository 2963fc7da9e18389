// Package platform talks to the hosting platforms depbot supports.
//
// The supported set is closed: github, gitlab, and gitea. ForName maps the
// platform configuration value onto its implementation once, during
// validation; anything outside the set is ErrUnsupportedPlatform.
//
// # Credentials
//
// Each platform resolves its own credential, without touching the network:
//
//	p, err := platform.ForName("github")
//	creds, err := p.Credentials(cfg, env)
//
// The lookup order is the explicit token option, then the platform's
// environment variable (GITHUB_TOKEN, GITLAB_TOKEN, GITEA_TOKEN). GitHub
// additionally accepts App credentials (githubAppId + githubAppKey) when
// no token is present; repositories are then listed across every App
// installation using short-lived installation tokens.
//
// # Autodiscovery
//
// ListRepositories enumerates the repositories a credential can reach:
//
//	repos, err := p.ListRepositories(ctx, creds, endpoint)
//
// An empty endpoint means the platform's public API host. GitHub and
// GitLab use their SDK clients; Gitea is walked through depbot's own REST
// client since it has no official Go SDK.
package platform
