package adapters

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/shared"
)

// CookbookDownloader copies every file of a cookbook version from the Chef
// server to a local directory.
type CookbookDownloader struct {
	Client *ChefClient
}

type cookbookFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// cookbookManifest covers both the segmented manifest of API v0 and the
// all_files list of API v1.
type cookbookManifest struct {
	AllFiles    []cookbookFile `json:"all_files"`
	Recipes     []cookbookFile `json:"recipes"`
	Definitions []cookbookFile `json:"definitions"`
	Libraries   []cookbookFile `json:"libraries"`
	Attributes  []cookbookFile `json:"attributes"`
	Files       []cookbookFile `json:"files"`
	Templates   []cookbookFile `json:"templates"`
	Resources   []cookbookFile `json:"resources"`
	Providers   []cookbookFile `json:"providers"`
	RootFiles   []cookbookFile `json:"root_files"`
}

func NewCookbookDownloader(client *ChefClient) CookbookDownloader {
	return CookbookDownloader{Client: client}
}

func (m cookbookManifest) entries() []cookbookFile {
	if len(m.AllFiles) > 0 {
		return m.AllFiles
	}
	var files []cookbookFile
	for _, segment := range [][]cookbookFile{
		m.Recipes, m.Definitions, m.Libraries, m.Attributes, m.Files,
		m.Templates, m.Resources, m.Providers, m.RootFiles,
	} {
		files = append(files, segment...)
	}
	return files
}

// DownloadCookbookVersion replaces destDir/<cookbook>-<version>/ with the
// cookbook content. File checksums are not verified.
func (d CookbookDownloader) DownloadCookbookVersion(ctx context.Context, cookbook string, version string, destDir string) error {
	if d.Client == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("chef client is not configured")
	}
	var manifest cookbookManifest
	path := "/cookbooks/" + url.PathEscape(cookbook) + "/" + url.PathEscape(version)
	if err := d.Client.getJSON(ctx, path, nil, &manifest); err != nil {
		return err
	}
	target := filepath.Join(destDir, cookbook+"-"+version)
	if err := os.RemoveAll(target); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to clear backup directory").
			WithCause(err)
	}
	if err := os.MkdirAll(target, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create backup directory").
			WithCause(err)
	}
	seen := map[string]struct{}{}
	for _, file := range manifest.entries() {
		relative := strings.TrimSpace(file.Path)
		if relative == "" {
			relative = strings.TrimSpace(file.Name)
		}
		if _, ok := seen[relative]; ok || relative == "" {
			continue
		}
		seen[relative] = struct{}{}
		if err := d.downloadFile(ctx, target, relative, file.URL); err != nil {
			return err
		}
	}
	log.Ctx(ctx).Debug().Str("path", target).Int("files", len(seen)).Msg("cookbook downloaded")
	return nil
}

func (d CookbookDownloader) downloadFile(ctx context.Context, target string, relative string, fileURL string) error {
	dest := filepath.Join(target, filepath.FromSlash(relative))
	if !shared.WithinDir(target, dest) || dest == filepath.Clean(target) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cookbook file path escapes backup directory: %s", relative))
	}
	if strings.TrimSpace(fileURL) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cookbook file has no url: %s", relative))
	}
	content, err := d.Client.fetch(ctx, fileURL)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create backup directory").
			WithCause(err)
	}
	if err := os.WriteFile(dest, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write cookbook file").
			WithCause(err)
	}
	return nil
}

var _ ports.CookbookBackupPort = CookbookDownloader{}
