package e2e_test

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePDF = "%PDF-1.4\n1 0 obj << /Type /Catalog >> endobj\ntrailer << /Root 1 0 R >>\n%%EOF\n"

// TestE2E_Filesystem runs the browser flow against the filesystem driver.
func TestE2E_Filesystem(t *testing.T) {
	scratchDir := t.TempDir()

	baseURL, cleanup := startServer(t, ServerConfig{
		Port:        getOpenPort(t),
		ScratchDir:  scratchDir,
		Driver:      "filesystem",
		StoragePath: t.TempDir(),
	})
	defer cleanup()

	runDocumentFlow(t, baseURL, scratchDir)
}

// runDocumentFlow contains the shared browser test logic.
func runDocumentFlow(t *testing.T, baseURL, scratchDir string) {
	t.Helper()
	browser := newBrowser(t)

	t.Run("anonymous main page redirects to login", func(t *testing.T) {
		resp, err := noRedirect(browser).Get(baseURL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/users", resp.Header.Get("Location"))
	})

	t.Run("static assets are public", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/static/style.css")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password shows the login form again", func(t *testing.T) {
		resp, err := noRedirect(browser).PostForm(baseURL+"/users", url.Values{
			"username": {testUser},
			"password": {"wrong"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "Invalid username or password.")
	})

	t.Run("login lands on the main page", func(t *testing.T) {
		resp, err := browser.PostForm(baseURL+"/users", url.Values{
			"username": {testUser},
			"password": {testPassword},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "/", resp.Request.URL.Path)
		assert.Contains(t, string(body), "Documents of user1")
		assert.Contains(t, string(body), "No documents yet.")
	})

	t.Run("upload of a pdf shows it in the listing", func(t *testing.T) {
		body, contentType := multipartBody(t, "pdf", "minutes.pdf", []byte(samplePDF))
		resp, err := browser.Post(baseURL+"/files/upload", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		page, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "/", resp.Request.URL.Path)
		assert.Contains(t, string(page), `href="/files/minutes.pdf"`)
		assert.NotContains(t, string(page), "Invalid file when uploading.")
	})

	t.Run("upload of a non pdf is rejected with a message", func(t *testing.T) {
		body, contentType := multipartBody(t, "pdf", "notes.txt", []byte("plain text"))
		resp, err := browser.Post(baseURL+"/files/upload", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()

		page, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(page), "Invalid file when uploading.  Please retry.")
		assert.NotContains(t, string(page), "notes.txt")

		// The message is shown once.
		resp, err = browser.Get(baseURL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		page, err = io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(page), "Invalid file when uploading.")
	})

	t.Run("download streams the pdf and cleans up", func(t *testing.T) {
		resp, err := browser.Get(baseURL + "/files/minutes.pdf")
		require.NoError(t, err)
		defer resp.Body.Close()

		content, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment"))
		assert.Equal(t, samplePDF, string(content))

		entries, err := os.ReadDir(filepath.Join(scratchDir, testUser))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("other users do not see the document", func(t *testing.T) {
		other := newBrowser(t)
		resp, err := other.PostForm(baseURL+"/users", url.Values{
			"username": {"user2"},
			"password": {testPassword},
		})
		require.NoError(t, err)
		defer resp.Body.Close()

		page, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(page), "Documents of user2")
		assert.NotContains(t, string(page), "minutes.pdf")

		resp, err = noRedirect(other).Get(baseURL + "/files/minutes.pdf")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})

	t.Run("delete removes the document", func(t *testing.T) {
		resp, err := browser.Get(baseURL + "/files/delete/minutes.pdf")
		require.NoError(t, err)
		defer resp.Body.Close()

		page, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "/", resp.Request.URL.Path)
		assert.NotContains(t, string(page), "minutes.pdf")
	})

	t.Run("logout ends the session", func(t *testing.T) {
		resp, err := browser.Get(baseURL + "/users/logout")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "/users", resp.Request.URL.Path)

		resp, err = noRedirect(browser).Get(baseURL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/users", resp.Header.Get("Location"))
	})
}

// TestE2E_CLI exercises the management commands against the filesystem driver.
func TestE2E_CLI(t *testing.T) {
	configPath := createConfigFile(t, ServerConfig{
		Port:        getOpenPort(t),
		ScratchDir:  t.TempDir(),
		Driver:      "filesystem",
		StoragePath: t.TempDir(),
	})

	out := runCLI(t, configPath, "bucket", "ensure")
	assert.Contains(t, out, "bucket apt-pdf-browser is ready")

	pdfPath := filepath.Join(t.TempDir(), "handbook.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte(samplePDF), 0o600))

	runCLI(t, configPath, "add", "--user", testUser, "--quiet", pdfPath)

	out = runCLI(t, configPath, "list", "--user", testUser)
	assert.Contains(t, out, "handbook.pdf")

	out = runCLI(t, configPath, "token", "--username", testUser, "--password", testPassword)
	assert.Contains(t, out, testUser+" ")

	out = runCLI(t, configPath, "config", "show")
	assert.Contains(t, out, "driver: filesystem")
	assert.NotContains(t, out, "e2e-secret")

	runCLI(t, configPath, "remove", "--user", testUser, "--all", "--quiet")

	out = runCLI(t, configPath, "list", "--user", testUser)
	assert.NotContains(t, out, "handbook.pdf")
}
