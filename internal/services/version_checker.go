package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/mod/semver"

	"github.com/Tomas-vilte/diffclip/internal/logger"
)

const (
	releaseOwner   = "Tomas-vilte"
	releaseRepo    = "diffclip"
	cacheFileName  = "last_update_check.json"
	cacheTTL       = 24 * time.Hour
	requestTimeout = 2 * time.Second

	// DisableEnv turns every check into a no-op, for CI and offline use.
	DisableEnv = "DIFFCLIP_DISABLE_UPDATE_CHECK"
)

type ReleasesService interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

type VersionChecker struct {
	currentVersion string
	releases       ReleasesService
	cacheDir       string
	now            func() time.Time
}

type UpdateCache struct {
	LastCheck   time.Time `json:"last_check"`
	LatestKnown string    `json:"latest_known"`
}

// UpdateStatus is the outcome of a check. Latest is empty when checks are
// disabled.
type UpdateStatus struct {
	Current   string
	Latest    string
	Available bool
}

func NewVersionChecker(currentVersion, cacheDir string) *VersionChecker {
	return NewVersionCheckerWithService(currentVersion, cacheDir, github.NewClient(nil).Repositories)
}

func NewVersionCheckerWithService(currentVersion, cacheDir string, releases ReleasesService) *VersionChecker {
	return &VersionChecker{
		currentVersion: currentVersion,
		releases:       releases,
		cacheDir:       cacheDir,
		now:            time.Now,
	}
}

// Check compares the running version with the latest release. The answer is
// cached for a day in cacheDir.
func (v *VersionChecker) Check(ctx context.Context) (UpdateStatus, error) {
	status := UpdateStatus{Current: v.currentVersion}
	if os.Getenv(DisableEnv) != "" {
		return status, nil
	}

	cache, err := v.loadCache()
	if err == nil && v.now().Sub(cache.LastCheck) < cacheTTL && cache.LatestKnown != "" {
		logger.Debug(ctx, "update check served from cache", "latest", cache.LatestKnown)
		status.Latest = cache.LatestKnown
		status.Available = v.isUpdateAvailable(cache.LatestKnown)
		return status, nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	release, _, err := v.releases.GetLatestRelease(ctx, releaseOwner, releaseRepo)
	if err != nil {
		return status, err
	}

	latest := release.GetTagName()
	if err := v.saveCache(UpdateCache{LastCheck: v.now(), LatestKnown: latest}); err != nil {
		logger.Debug(ctx, "update cache not saved", "error", err)
	}

	status.Latest = latest
	status.Available = v.isUpdateAvailable(latest)
	return status, nil
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

func (v *VersionChecker) loadCache() (UpdateCache, error) {
	data, err := os.ReadFile(filepath.Join(v.cacheDir, cacheFileName))
	if err != nil {
		return UpdateCache{}, err
	}

	var cache UpdateCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return UpdateCache{}, err
	}
	return cache, nil
}

func (v *VersionChecker) saveCache(cache UpdateCache) error {
	if err := os.MkdirAll(v.cacheDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(v.cacheDir, cacheFileName), data, 0644)
}
