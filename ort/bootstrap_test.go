package ort

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResolveRuntimeArtifact(t *testing.T) {
	cases := []struct {
		goos, goarch string
		platform     string
		extension    string
	}{
		{"darwin", "arm64", "osx-arm64", "tgz"},
		{"darwin", "amd64", "osx-x86_64", "tgz"},
		{"linux", "arm64", "linux-aarch64", "tgz"},
		{"linux", "amd64", "linux-x64", "tgz"},
		{"windows", "amd64", "win-x64", "zip"},
		{"windows", "arm64", "win-arm64", "zip"},
	}
	for _, tc := range cases {
		artifact, err := resolveRuntimeArtifact(tc.goos, tc.goarch)
		if err != nil {
			t.Errorf("resolveRuntimeArtifact(%s/%s): %v", tc.goos, tc.goarch, err)
			continue
		}
		if artifact.platform != tc.platform || artifact.archiveExtension != tc.extension {
			t.Errorf("resolveRuntimeArtifact(%s/%s) = %+v", tc.goos, tc.goarch, artifact)
		}
	}

	if _, err := resolveRuntimeArtifact("plan9", "386"); err == nil {
		t.Error("expected error for unsupported platform")
	}
}

func TestArtifactNaming(t *testing.T) {
	artifact, err := resolveRuntimeArtifact("linux", "amd64")
	if err != nil {
		t.Fatal(err)
	}
	if got := artifact.archiveName("1.23.1"); got != "onnxruntime-linux-x64-1.23.1" {
		t.Errorf("archiveName = %q", got)
	}
	if got := artifact.archiveFilename("1.23.1"); got != "onnxruntime-linux-x64-1.23.1.tgz" {
		t.Errorf("archiveFilename = %q", got)
	}
	want := "https://example.com/v1.23.1/onnxruntime-linux-x64-1.23.1.tgz"
	if got := artifact.downloadURL("https://example.com/", "1.23.1"); got != want {
		t.Errorf("downloadURL = %q", got)
	}
}

func TestNormalizeRuntimeVersion(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "1.23.1", want: "1.23.1"},
		{raw: "v1.23.1", want: "1.23.1"},
		{raw: " 1.23.1 ", want: "1.23.1"},
		{raw: "", wantErr: true},
		{raw: "1.23", wantErr: true},
		{raw: "1.23.1.4", wantErr: true},
		{raw: "1.23.x", wantErr: true},
		{raw: "1.23.1-rc1", wantErr: true},
		{raw: "1.23.1+meta", wantErr: true},
	}
	for _, tc := range cases {
		got, err := normalizeRuntimeVersion(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("normalizeRuntimeVersion(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeRuntimeVersion(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("normalizeRuntimeVersion(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestSecureArchiveJoin(t *testing.T) {
	base := t.TempDir()

	good := []string{"lib/libonnxruntime.so", "include/onnxruntime_c_api.h", "VERSION"}
	for _, entry := range good {
		path, err := secureArchiveJoin(base, entry)
		if err != nil {
			t.Errorf("secureArchiveJoin(%q): %v", entry, err)
			continue
		}
		if !strings.HasPrefix(path, base) {
			t.Errorf("secureArchiveJoin(%q) escaped base: %q", entry, path)
		}
	}

	bad := []string{"", ".", "..", "../evil", "lib/../../evil", "/abs/path", "C:/evil", `..\evil`}
	for _, entry := range bad {
		if _, err := secureArchiveJoin(base, entry); err == nil {
			t.Errorf("secureArchiveJoin(%q): expected error", entry)
		}
	}
}

func TestParseBoolEnv(t *testing.T) {
	cases := []struct {
		value   string
		want    bool
		wantErr bool
	}{
		{value: "", want: false},
		{value: "true", want: true},
		{value: "false", want: false},
		{value: "1", want: true},
		{value: "0", want: false},
		{value: "yes", want: true},
		{value: "NO", want: false},
		{value: "on", want: true},
		{value: "off", want: false},
		{value: "maybe", wantErr: true},
	}
	for _, tc := range cases {
		t.Setenv("ORT_GO_TEST_BOOL", tc.value)
		got, err := parseBoolEnv("ORT_GO_TEST_BOOL")
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseBoolEnv(%q): expected error", tc.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseBoolEnv(%q): %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseBoolEnv(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidateLibraryFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := validateLibraryFile(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := validateLibraryFile(filepath.Join(dir, "missing.so")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := validateLibraryFile(dir); err == nil {
		t.Error("expected error for directory")
	}

	empty := filepath.Join(dir, "empty.so")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := validateLibraryFile(empty); err == nil {
		t.Error("expected error for empty file")
	}

	valid := filepath.Join(dir, "lib.so")
	if err := os.WriteFile(valid, []byte("elf"), 0o644); err != nil {
		t.Fatal(err)
	}
	path, err := validateLibraryFile(valid)
	if err != nil {
		t.Fatalf("validateLibraryFile: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %q", path)
	}
}

func TestEnsureSharedLibraryExplicitPath(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "libonnxruntime.so")
	if err := os.WriteFile(lib, []byte("elf"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := EnsureSharedLibrary(WithBootstrapLibraryPath(lib))
	if err != nil {
		t.Fatalf("EnsureSharedLibrary: %v", err)
	}
	if path != lib {
		t.Errorf("path = %q, want %q", path, lib)
	}
}

func TestEnsureSharedLibraryDownloadDisabled(t *testing.T) {
	t.Setenv("ONNXRUNTIME_LIB_PATH", "")
	_, err := EnsureSharedLibrary(
		WithBootstrapCacheDir(t.TempDir()),
		WithBootstrapDisableDownload(true),
	)
	if err == nil || !strings.Contains(err.Error(), "download is disabled") {
		t.Fatalf("expected disabled-download error, got %v", err)
	}
}

// buildFakeArchive assembles a minimal release archive for the current
// platform's artifact layout.
func buildFakeArchive(t *testing.T, artifact runtimeArtifact, version string) []byte {
	t.Helper()
	libEntry := artifact.archiveName(version) + "/lib/" + artifact.primaryLibrary
	content := []byte("fake shared library")

	var buf bytes.Buffer
	switch artifact.archiveExtension {
	case "tgz":
		gz := gzip.NewWriter(&buf)
		tw := tar.NewWriter(gz)
		if err := tw.WriteHeader(&tar.Header{Name: libEntry, Mode: 0o755, Size: int64(len(content))}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write(content); err != nil {
			t.Fatal(err)
		}
		if err := tw.Close(); err != nil {
			t.Fatal(err)
		}
		if err := gz.Close(); err != nil {
			t.Fatal(err)
		}
	case "zip":
		zw := zip.NewWriter(&buf)
		w, err := zw.Create(libEntry)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		t.Fatalf("unexpected archive extension %q", artifact.archiveExtension)
	}
	return buf.Bytes()
}

func TestEnsureSharedLibraryDownloadsAndCaches(t *testing.T) {
	t.Setenv("ONNXRUNTIME_LIB_PATH", "")
	artifact, err := resolveRuntimeArtifact(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("unsupported test platform: %v", err)
	}

	const version = "1.23.1"
	archive := buildFakeArchive(t, artifact, version)
	sum := sha256.Sum256(archive)

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		wantPath := "/v" + version + "/" + artifact.archiveFilename(version)
		if r.URL.Path != wantPath {
			t.Errorf("request path = %q, want %q", r.URL.Path, wantPath)
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(archive)
	}))
	defer server.Close()

	cacheDir := t.TempDir()
	opts := []BootstrapOption{
		WithBootstrapCacheDir(cacheDir),
		WithBootstrapVersion(version),
		WithBootstrapExpectedSHA256(hex.EncodeToString(sum[:])),
		withBootstrapBaseURL(server.URL),
		withBootstrapHTTPClient(server.Client()),
	}

	path, err := EnsureSharedLibrary(opts...)
	if err != nil {
		t.Fatalf("EnsureSharedLibrary: %v", err)
	}
	if filepath.Base(path) != artifact.primaryLibrary {
		t.Errorf("resolved %q", path)
	}
	if requests != 1 {
		t.Fatalf("%d requests, want 1", requests)
	}

	// Second call must be served from the cache.
	again, err := EnsureSharedLibrary(opts...)
	if err != nil {
		t.Fatalf("EnsureSharedLibrary (cached): %v", err)
	}
	if again != path {
		t.Errorf("cached path %q differs from %q", again, path)
	}
	if requests != 1 {
		t.Errorf("cache miss: %d requests", requests)
	}
}

func TestEnsureSharedLibraryChecksumMismatch(t *testing.T) {
	t.Setenv("ONNXRUNTIME_LIB_PATH", "")
	artifact, err := resolveRuntimeArtifact(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("unsupported test platform: %v", err)
	}

	const version = "1.23.1"
	archive := buildFakeArchive(t, artifact, version)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer server.Close()

	_, err = EnsureSharedLibrary(
		WithBootstrapCacheDir(t.TempDir()),
		WithBootstrapVersion(version),
		WithBootstrapExpectedSHA256(strings.Repeat("0", 64)),
		withBootstrapBaseURL(server.URL),
		withBootstrapHTTPClient(server.Client()),
	)
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestEnsureSharedLibraryHTTPError(t *testing.T) {
	t.Setenv("ONNXRUNTIME_LIB_PATH", "")
	if _, err := resolveRuntimeArtifact(runtime.GOOS, runtime.GOARCH); err != nil {
		t.Skipf("unsupported test platform: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := EnsureSharedLibrary(
		WithBootstrapCacheDir(t.TempDir()),
		withBootstrapBaseURL(server.URL),
		withBootstrapHTTPClient(server.Client()),
	)
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("expected HTTP 404 error, got %v", err)
	}
}

func TestBootstrapOptionValidation(t *testing.T) {
	cases := []struct {
		name string
		opt  BootstrapOption
	}{
		{"empty library path", WithBootstrapLibraryPath("  ")},
		{"empty cache dir", WithBootstrapCacheDir("")},
		{"empty version", WithBootstrapVersion(" ")},
		{"short checksum", WithBootstrapExpectedSHA256("abc")},
		{"non-hex checksum", WithBootstrapExpectedSHA256(strings.Repeat("z", 64))},
		{"empty base URL", withBootstrapBaseURL("")},
		{"nil http client", withBootstrapHTTPClient(nil)},
	}
	for _, tc := range cases {
		var cfg bootstrapConfig
		if err := tc.opt(&cfg); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestWithProcessFileLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), ".locks", "test.lock")
	ran := false
	err := withProcessFileLock(lockPath, func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("withProcessFileLock: %v", err)
	}
	if !ran {
		t.Error("callback not invoked")
	}

	// Reacquiring after release must work.
	if err := withProcessFileLock(lockPath, func() error { return nil }); err != nil {
		t.Fatalf("second acquisition: %v", err)
	}
}
