package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("running a development build")
	ErrAlreadyLatest = errors.New("no newer release")
	ErrChecksum      = errors.New("checksum mismatch")
)

// UpdateInput controls which release Update installs. An empty TargetVersion
// means whatever the release API reports as latest.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is emitted once per stage so the caller can narrate the
// install as it runs.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update swaps the running executable for the release build of the target
// version, verifying the downloaded archive against the published checksum
// manifest first. Progress walks the stages check, download, verify,
// extract, apply and done, in that order.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}
	notify := func(stage, message string) {
		if progress != nil {
			progress(UpdateProgress{Stage: stage, Message: message})
		}
	}

	tag := input.TargetVersion
	if tag == "" {
		notify("check", "Looking up the latest release...")
		var err error
		if tag, err = c.latestTag(ctx, input.CurrentVersion); err != nil {
			return err
		}
	}

	asset, err := c.resolveAsset()
	if err != nil {
		return err
	}

	notify("download", fmt.Sprintf("Downloading %s...", tag))
	archive, err := c.fetchReleaseFile(ctx, tag, asset)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	notify("verify", "Verifying archive checksum...")
	if err := c.verifyArchive(ctx, tag, asset, archive); err != nil {
		return err
	}

	notify("extract", "Unpacking the new binary...")
	binary, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	notify("apply", "Installing...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	sum := sha256.Sum256(binary)
	if err := applyUpdate(binary, target, sum[:]); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	notify("done", fmt.Sprintf("Updated to %s", tag))
	return nil
}

// latestTag asks the release API for the newest tag, rejecting the update
// when the running version is already current.
func (c *Checker) latestTag(ctx context.Context, current string) (string, error) {
	result, err := c.Check(ctx, &CheckInput{Version: current})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return result.LatestVersion, nil
}

// fetchReleaseFile downloads a single file attached to a release tag.
func (c *Checker) fetchReleaseFile(ctx context.Context, tag, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// verifyArchive checks the downloaded archive against its entry in the
// release's checksums.txt.
func (c *Checker) verifyArchive(ctx context.Context, tag, asset string, archive []byte) error {
	manifest, err := c.fetchReleaseFile(ctx, tag, "checksums.txt")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(manifest)[asset]
	if !ok {
		return fmt.Errorf("checksums.txt has no entry for %s", asset)
	}
	return verifyChecksum(archive, want)
}

// parseChecksums reads a goreleaser-style checksum manifest, one
// "<sha256>  <filename>" pair per line. Lines that don't fit are skipped.
func parseChecksums(data []byte) map[string]string {
	sums := map[string]string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		sums[fields[1]] = fields[0]
	}
	return sums
}

func verifyChecksum(data []byte, wantHex string) error {
	want, err := hex.DecodeString(wantHex)
	if err != nil {
		return fmt.Errorf("%w: unreadable manifest entry %q", ErrChecksum, wantHex)
	}
	got := sha256.Sum256(data)
	if !bytes.Equal(got[:], want) {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, hex.EncodeToString(got[:]))
	}
	return nil
}

// extractBinary pulls the executable out of a release archive. Windows
// releases ship zips, everything else tarballs.
func extractBinary(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return unzipFile(archive, "quizdoc.exe")
	}
	return untarFile(archive, "quizdoc")
}

func untarFile(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func unzipFile(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, readErr := io.ReadAll(rc)
		_ = rc.Close()
		return data, readErr
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// assetName maps the running platform to its published release asset.
func assetName() (string, error) {
	return assetNameFor(runtime.GOOS, runtime.GOARCH)
}

var releaseArches = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetNameFor(goos, goarch string) (string, error) {
	// macOS releases ship a single universal binary.
	if goos == "darwin" {
		return "quizdoc_Darwin_all.tar.gz", nil
	}
	arch, ok := releaseArches[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return "quizdoc_Linux_" + arch + ".tar.gz", nil
	case "windows":
		return "quizdoc_Windows_" + arch + ".zip", nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// applyUpdate writes the new binary beside the target and renames it into
// place, keeping the swap on a single filesystem. The bytes that landed on
// disk are re-hashed before the rename.
func applyUpdate(binary []byte, targetPath string, expectedHash []byte) error {
	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(targetPath), ".quizdoc-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	_, writeErr := tmp.Write(binary)
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}

	written, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	sum := sha256.Sum256(written)
	if !bytes.Equal(sum[:], expectedHash) {
		return fmt.Errorf("%w: temp file changed between write and install", ErrChecksum)
	}

	if err := os.Rename(tmpPath, targetPath); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	if err := os.Chmod(targetPath, info.Mode()); err != nil {
		return fmt.Errorf("restore mode: %w", err)
	}
	return nil
}
