package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelease stands in for the GitHub release endpoints: the latest-release
// API plus download URLs for each asset and the checksum manifest.
type fakeRelease struct {
	tag      string
	assets   map[string][]byte
	manifest string // overrides the computed checksums.txt when set
}

func (f fakeRelease) start(t *testing.T) *httptest.Server {
	t.Helper()

	manifest := f.manifest
	if manifest == "" {
		var b strings.Builder
		for name, data := range f.assets {
			sum := sha256.Sum256(data)
			fmt.Fprintf(&b, "%s  %s\n", hex.EncodeToString(sum[:]), name)
		}
		manifest = b.String()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/quizdoc/quizdoc/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://github.com/quizdoc/quizdoc/releases/tag/%s"}`, f.tag, f.tag)
	})
	download := "/quizdoc/quizdoc/releases/download/" + f.tag + "/"
	mux.HandleFunc(download+"checksums.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, manifest)
	})
	for name, data := range f.assets {
		mux.HandleFunc(download+name, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(data)
		})
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name          string
		published     string
		running       string
		wantAvailable bool
	}{
		{"newer release available", "v1.2.0", "v1.1.0", true},
		{"running the latest", "v1.1.0", "v1.1.0", false},
		{"local build ahead", "v1.1.0", "v1.2.0", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := fakeRelease{tag: tc.published}.start(t)

			result, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: tc.running})
			require.NoError(t, err)
			assert.Equal(t, tc.wantAvailable, result.UpdateAvailable)
			assert.Equal(t, tc.published, result.LatestVersion)
			assert.Equal(t, "https://github.com/quizdoc/quizdoc/releases/tag/"+tc.published, result.ReleaseURL)
		})
	}

	t.Run("rate limited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		t.Cleanup(srv.Close)

		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})
}

func TestUpdate(t *testing.T) {
	const asset = "quizdoc_Linux_x86_64.tar.gz"
	bin := []byte("v2 binary payload")
	archive := tarball(t, map[string][]byte{"quizdoc": bin})

	install := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "quizdoc")
		require.NoError(t, os.WriteFile(path, []byte("v1 binary payload"), 0o755))
		return path
	}
	checkerFor := func(srv *httptest.Server, execPath string) *Checker {
		return NewChecker(
			WithBaseURL(srv.URL),
			WithDownloadBaseURL(srv.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
			withAssetName(func() (string, error) { return asset, nil }),
		)
	}

	t.Run("replaces the binary", func(t *testing.T) {
		srv := fakeRelease{tag: "v2.0.0", assets: map[string][]byte{asset: archive}}.start(t)
		execPath := install(t)

		var stages []string
		err := checkerFor(srv, execPath).Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"},
			func(p UpdateProgress) { stages = append(stages, p.Stage) })
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, bin, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("pinned target version skips the check", func(t *testing.T) {
		srv := fakeRelease{tag: "v2.0.0", assets: map[string][]byte{asset: archive}}.start(t)
		execPath := install(t)

		var stages []string
		err := checkerFor(srv, execPath).Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0", TargetVersion: "v2.0.0"},
			func(p UpdateProgress) { stages = append(stages, p.Stage) })
		require.NoError(t, err)
		assert.Equal(t, []string{"download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("development build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, nil)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already current", func(t *testing.T) {
		srv := fakeRelease{tag: "v1.0.0"}.start(t)

		err := checkerFor(srv, "").Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("tampered archive", func(t *testing.T) {
		srv := fakeRelease{
			tag:      "v2.0.0",
			assets:   map[string][]byte{asset: archive},
			manifest: strings.Repeat("0", 64) + "  " + asset + "\n",
		}.start(t)

		err := checkerFor(srv, install(t)).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("asset missing from release", func(t *testing.T) {
		srv := fakeRelease{tag: "v2.0.0"}.start(t)

		err := checkerFor(srv, install(t)).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})

	t.Run("no manifest entry for the asset", func(t *testing.T) {
		srv := fakeRelease{
			tag:      "v2.0.0",
			assets:   map[string][]byte{asset: archive},
			manifest: "c0ffee  quizdoc_Darwin_all.tar.gz\n",
		}.start(t)

		err := checkerFor(srv, install(t)).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no entry for "+asset)
	})
}

func TestAssetNameFor(t *testing.T) {
	supported := []struct{ goos, goarch, asset string }{
		{"darwin", "amd64", "quizdoc_Darwin_all.tar.gz"},
		{"darwin", "arm64", "quizdoc_Darwin_all.tar.gz"},
		{"linux", "amd64", "quizdoc_Linux_x86_64.tar.gz"},
		{"linux", "arm64", "quizdoc_Linux_arm64.tar.gz"},
		{"linux", "386", "quizdoc_Linux_i386.tar.gz"},
		{"windows", "amd64", "quizdoc_Windows_x86_64.zip"},
		{"windows", "arm64", "quizdoc_Windows_arm64.zip"},
	}
	for _, tc := range supported {
		t.Run(tc.goos+"/"+tc.goarch, func(t *testing.T) {
			got, err := assetNameFor(tc.goos, tc.goarch)
			require.NoError(t, err)
			assert.Equal(t, tc.asset, got)
		})
	}

	unsupported := []struct{ goos, goarch string }{
		{"freebsd", "amd64"},
		{"linux", "mips"},
	}
	for _, tc := range unsupported {
		t.Run(tc.goos+"/"+tc.goarch, func(t *testing.T) {
			_, err := assetNameFor(tc.goos, tc.goarch)
			assert.Error(t, err)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	t.Run("goreleaser manifest", func(t *testing.T) {
		manifest := "9b1c44  quizdoc_Linux_x86_64.tar.gz\n7e02af  quizdoc_Windows_x86_64.zip\n"

		got := parseChecksums([]byte(manifest))
		assert.Equal(t, map[string]string{
			"quizdoc_Linux_x86_64.tar.gz": "9b1c44",
			"quizdoc_Windows_x86_64.zip":  "7e02af",
		}, got)
	})

	t.Run("empty manifest", func(t *testing.T) {
		got := parseChecksums(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("skips lines that are not checksum pairs", func(t *testing.T) {
		manifest := strings.Join([]string{
			"c0ffee  quizdoc_Darwin_all.tar.gz",
			"not-a-pair",
			"   ",
			"one two three",
			"d00dad  quizdoc_Windows_arm64.zip",
		}, "\n")

		got := parseChecksums([]byte(manifest))
		assert.Equal(t, map[string]string{
			"quizdoc_Darwin_all.tar.gz": "c0ffee",
			"quizdoc_Windows_arm64.zip": "d00dad",
		}, got)
	})
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("release archive bytes")
	sum := sha256.Sum256(data)

	t.Run("match", func(t *testing.T) {
		assert.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := verifyChecksum(data, strings.Repeat("0", 64))
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("unreadable manifest entry", func(t *testing.T) {
		err := verifyChecksum(data, "not-hex")
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func TestExtractBinary(t *testing.T) {
	bin := []byte("#!/bin/sh\necho quizdoc")

	t.Run("tarball", func(t *testing.T) {
		archive := tarball(t, map[string][]byte{"quizdoc": bin})

		got, err := extractBinary(archive, "quizdoc_Linux_x86_64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})

	t.Run("tarball with a nested binary", func(t *testing.T) {
		archive := tarball(t, map[string][]byte{"quizdoc_2.0.0/quizdoc": bin})

		got, err := extractBinary(archive, "quizdoc_Linux_arm64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})

	t.Run("zip", func(t *testing.T) {
		archive := zipball(t, map[string][]byte{"quizdoc.exe": bin})

		got, err := extractBinary(archive, "quizdoc_Windows_x86_64.zip")
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})

	t.Run("binary not in the archive", func(t *testing.T) {
		archive := tarball(t, map[string][]byte{"README.md": []byte("docs")})

		_, err := extractBinary(archive, "quizdoc_Linux_x86_64.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestApplyUpdate(t *testing.T) {
	t.Run("swaps the binary and keeps its mode", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "quizdoc")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

		replacement := []byte("new")
		sum := sha256.Sum256(replacement)
		require.NoError(t, applyUpdate(replacement, target, sum[:]))

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, replacement, got)

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	})

	t.Run("refuses bytes that do not match the hash", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "quizdoc")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

		wrong := sha256.Sum256([]byte("something else"))
		err := applyUpdate([]byte("new"), target, wrong[:])
		assert.ErrorIs(t, err, ErrChecksum)

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), got, "target must stay untouched")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file must be cleaned up")
	})
}

// tarball builds a gzipped tarball from entry names to contents.
func tarball(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0o755}))
		_, err := tw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// zipball builds a zip archive from entry names to contents.
func zipball(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
