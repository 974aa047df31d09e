// Package gitinfo derives repository hints from git state using go-git.
package gitinfo

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Adapter implements domain.GitInfo using go-git.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

// RemoteName returns the repository name parsed from the origin remote URL.
func (a *Adapter) RemoteName(repoPath string) (string, error) {
	url, err := originURL(repoPath)
	if err != nil {
		return "", err
	}

	name := url
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "", fmt.Errorf("origin URL %q has no repository name", url)
	}
	return name, nil
}

// PlatformHint maps the origin remote host to a CI platform name, or ""
// when the host is not recognized.
func (a *Adapter) PlatformHint(repoPath string) (string, error) {
	url, err := originURL(repoPath)
	if err != nil {
		return "", err
	}

	host := remoteHost(url)
	switch {
	case strings.Contains(host, "github"):
		return "github", nil
	case strings.Contains(host, "dev.azure.com"), strings.Contains(host, "visualstudio.com"), strings.Contains(host, "ssh.dev.azure.com"):
		return "azuredevops", nil
	case strings.Contains(host, "gitlab"):
		return "gitlab", nil
	case strings.Contains(host, "bitbucket"):
		return "bitbucket", nil
	}
	return "", nil
}

func originURL(repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("getting origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	return urls[0], nil
}

// remoteHost extracts the host from https, ssh and scp-like git URLs.
func remoteHost(url string) string {
	rest := url
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.Index(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	for _, sep := range []string{":", "/"} {
		if i := strings.Index(rest, sep); i >= 0 {
			rest = rest[:i]
		}
	}
	return rest
}
