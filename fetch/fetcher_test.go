package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulkPage = `<html><body>
<h1>Bulk Data</h1>
<ul>
  <li><a href="/archive/CPCTitleList202505.zip">Title list</a></li>
  <li><a href="/archive/CPCSymbolList202505.zip">Symbol list</a></li>
  <li><a href="/archive/CPCValidityFile202505.zip">Validity file</a></li>
  <li><a href="/archive/CPCSchemeXML202505.zip">Scheme XML</a></li>
  <li><a href="/archive/CPCTitleList202501.zip">Older title list</a></li>
  <li><a href="/docs/readme.html">Readme</a></li>
</ul>
</body></html>`

func newBulkServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/cpcSchemeAndDefinitions/bulk", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(bulkPage))
	})
	mux.HandleFunc("/archive/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("zip-bytes-for-" + filepath.Base(r.URL.Path)))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAvailableVersions(t *testing.T) {
	srv := newBulkServer(t)
	f := New(t.TempDir(), WithBaseURL(srv.URL))

	versions, err := f.AvailableVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"202501", "202505"}, versions)
}

func TestLatestVersion(t *testing.T) {
	t.Run("nothing on disk picks newest published", func(t *testing.T) {
		srv := newBulkServer(t)
		f := New(t.TempDir(), WithBaseURL(srv.URL))

		version, err := f.LatestVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "202505", version)
	})

	t.Run("on-disk release wins when page has nothing newer", func(t *testing.T) {
		srv := newBulkServer(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "CPCTitleList202505.zip"), []byte("x"), 0o644))

		f := New(dir, WithBaseURL(srv.URL))
		version, err := f.LatestVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "202505", version)
	})
}

func TestDownload(t *testing.T) {
	srv := newBulkServer(t)
	dir := t.TempDir()
	f := New(dir, WithBaseURL(srv.URL))

	paths, err := f.Download(context.Background(), "202505", false)
	require.NoError(t, err)
	require.Len(t, paths, 4, "all four 202505 archives")

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), filepath.Base(p))
	}

	// No .partial files left behind.
	partials, err := filepath.Glob(filepath.Join(dir, "*.partial"))
	require.NoError(t, err)
	assert.Empty(t, partials)
}

func TestDownloadSkipsExisting(t *testing.T) {
	srv := newBulkServer(t)
	dir := t.TempDir()
	existing := filepath.Join(dir, "CPCTitleList202505.zip")
	require.NoError(t, os.WriteFile(existing, []byte("local copy"), 0o644))

	f := New(dir, WithBaseURL(srv.URL))

	paths, err := f.Download(context.Background(), "202505", false)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "local copy", string(data), "existing file kept without force")

	// Force overwrites it.
	_, err = f.Download(context.Background(), "202505", true)
	require.NoError(t, err)
	data, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.NotEqual(t, "local copy", string(data))
}

func TestDownloadUnknownVersion(t *testing.T) {
	srv := newBulkServer(t)
	f := New(t.TempDir(), WithBaseURL(srv.URL))

	_, err := f.Download(context.Background(), "199901", false)
	assert.Error(t, err)
}

func TestDiscoverEmptyPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cpcSchemeAndDefinitions/bulk", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f := New(t.TempDir(), WithBaseURL(srv.URL))
	_, err := f.AvailableVersions(context.Background())
	assert.Error(t, err)
}

func TestDiscoverServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cpcSchemeAndDefinitions/bulk", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f := New(t.TempDir(), WithBaseURL(srv.URL))
	_, err := f.LatestVersion(context.Background())
	assert.Error(t, err)
}
