package services

import (
	"context"
	"strings"

	"github.com/google/go-github/v80/github"
	"golang.org/x/mod/semver"

	"github.com/horw/issue-title-ai/internal/errors"
)

const (
	releaseOwner = "horw"
	releaseRepo  = "issue-title-ai"
)

type releaseService interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

// VersionChecker compares the running version with the latest published release.
type VersionChecker struct {
	currentVersion string
	releases       releaseService
}

func NewVersionChecker(version string, releases releaseService) *VersionChecker {
	if releases == nil {
		releases = github.NewClient(nil).Repositories
	}
	return &VersionChecker{
		currentVersion: version,
		releases:       releases,
	}
}

// Latest returns the newest release tag and whether it is newer than the
// running version.
func (v *VersionChecker) Latest(ctx context.Context) (string, bool, error) {
	release, _, err := v.releases.GetLatestRelease(ctx, releaseOwner, releaseRepo)
	if err != nil {
		return "", false, errors.NewAppError(errors.TypeVCS, "failed to get latest release", err)
	}
	latest := release.GetTagName()
	return latest, v.isUpdateAvailable(latest), nil
}

func (v *VersionChecker) isUpdateAvailable(latest string) bool {
	current := v.currentVersion
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}

	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return current != latest
	}

	return semver.Compare(latest, current) > 0
}
