// Package fetch discovers and downloads the CPC bulk data archives.
//
// The CPC authority lists its bulk archives as zip links on a single
// download page. The fetcher scrapes that page once, derives the set of
// published release tokens from the link names and downloads the archives
// of a chosen release into the raw data directory. Files already on disk
// are kept unless a re-download is forced.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/gocpc/cpc"
)

// DefaultBaseURL is the CPC authority's site root.
const DefaultBaseURL = "https://www.cooperativepatentclassification.org"

// bulkPagePath is the download page listing every bulk archive.
const bulkPagePath = "/cpcSchemeAndDefinitions/bulk"

// Fetcher downloads CPC bulk archives.
type Fetcher struct {
	baseURL string
	rawDir  string
	client  *http.Client
	logger  *zap.Logger

	mu    sync.Mutex
	links map[string]string // archive filename -> absolute URL
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURL overrides the authority site root, mainly for tests.
func WithBaseURL(url string) Option {
	return func(f *Fetcher) {
		f.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLogger sets the fetcher's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher downloading into rawDir.
func New(rawDir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: DefaultBaseURL,
		rawDir:  rawDir,
		client:  &http.Client{Timeout: 5 * time.Minute},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// discoverLinks fetches and parses the bulk page, caching the result.
func (f *Fetcher) discoverLinks(ctx context.Context) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.links != nil {
		return f.links, nil
	}

	pageURL := f.baseURL + bulkPagePath
	f.logger.Info("discovering bulk archives", zap.String("url", pageURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bulk page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch bulk page: unexpected status %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse bulk page: %w", err)
	}

	links := make(map[string]string)
	collectZipLinks(doc, func(href string) {
		links[path.Base(href)] = f.absoluteURL(href)
	})
	if len(links) == 0 {
		return nil, fmt.Errorf("no bulk archives found at %s", pageURL)
	}

	f.links = links
	return links, nil
}

// collectZipLinks walks the parsed page and reports every anchor whose
// href ends in .zip.
func collectZipLinks(n *html.Node, report func(href string)) {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" && strings.HasSuffix(attr.Val, ".zip") {
				report(attr.Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectZipLinks(c, report)
	}
}

func (f *Fetcher) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return f.baseURL + href
	}
	return f.baseURL + "/" + href
}

// AvailableVersions returns every release token published on the bulk
// page, sorted chronologically.
func (f *Fetcher) AvailableVersions(ctx context.Context) ([]string, error) {
	links, err := f.discoverLinks(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for name := range links {
		if token := cpc.ReleaseToken(name); token != "" {
			seen[token] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no release tokens found on bulk page")
	}

	versions := make([]string, 0, len(seen))
	for v := range seen {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, nil
}

// LatestVersion picks the release to work with: the newest published
// token, or the newest already-downloaded one when the page offers
// nothing newer.
func (f *Fetcher) LatestVersion(ctx context.Context) (string, error) {
	versions, err := f.AvailableVersions(ctx)
	if err != nil {
		return "", err
	}
	latestAvailable := versions[len(versions)-1]

	latestExisting := f.latestOnDisk()
	if latestExisting == "" {
		f.logger.Info("using latest published release", zap.String("version", latestAvailable))
		return latestAvailable, nil
	}

	if latestAvailable > latestExisting {
		f.logger.Info("newer release available",
			zap.String("available", latestAvailable),
			zap.String("existing", latestExisting))
		return latestAvailable, nil
	}
	f.logger.Info("using already-downloaded release", zap.String("version", latestExisting))
	return latestExisting, nil
}

// latestOnDisk returns the newest release token among downloaded zips,
// empty when none exist.
func (f *Fetcher) latestOnDisk() string {
	matches, err := filepath.Glob(filepath.Join(f.rawDir, "*.zip"))
	if err != nil {
		return ""
	}

	latest := ""
	for _, m := range matches {
		if token := cpc.ReleaseToken(filepath.Base(m)); token > latest {
			latest = token
		}
	}
	return latest
}

// Download fetches every bulk archive of the given release into the raw
// directory and returns the local paths. Existing files are kept unless
// force is set.
func (f *Fetcher) Download(ctx context.Context, version string, force bool) ([]string, error) {
	links, err := f.discoverLinks(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(f.rawDir, 0o755); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(links))
	for name := range links {
		if strings.Contains(name, version) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no archives published for release %s", version)
	}

	var paths []string
	for _, name := range names {
		local := filepath.Join(f.rawDir, name)
		if _, err := os.Stat(local); err == nil && !force {
			f.logger.Debug("archive already downloaded", zap.String("file", name))
			paths = append(paths, local)
			continue
		}

		if err := f.downloadFile(ctx, links[name], local); err != nil {
			return nil, err
		}
		paths = append(paths, local)
	}
	return paths, nil
}

func (f *Fetcher) downloadFile(ctx context.Context, url, local string) error {
	f.logger.Info("downloading archive", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	tmp := local + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, local)
}
