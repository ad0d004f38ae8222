package adapters

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/types"
)

// ChefServerAdapter talks to a Chef server over its REST API.
type ChefServerAdapter struct {
	Client     *ChefClient
	Downloader CookbookDownloader
}

type chefCookbookListing map[string]struct {
	URL      string `json:"url"`
	Versions []struct {
		URL     string `json:"url"`
		Version string `json:"version"`
	} `json:"versions"`
}

type chefEnvironment struct {
	Name             string            `json:"name"`
	CookbookVersions map[string]string `json:"cookbook_versions"`
}

type chefResolvedCookbook struct {
	CookbookName string `json:"cookbook_name"`
	Version      string `json:"version"`
}

func NewChefServerAdapter(client *ChefClient) ChefServerAdapter {
	return ChefServerAdapter{
		Client:     client,
		Downloader: NewCookbookDownloader(client),
	}
}

func (a ChefServerAdapter) CookbookVersions(ctx context.Context, cookbook string, num int) (types.VersionSet, error) {
	path := "/cookbooks"
	if name := strings.TrimSpace(cookbook); name != "" {
		path += "/" + url.PathEscape(name)
	}
	query := url.Values{}
	if num == ports.AllVersions {
		query.Set("num_versions", "all")
	} else {
		query.Set("num_versions", strconv.Itoa(num))
	}
	var listing chefCookbookListing
	if err := a.Client.getJSON(ctx, path, query, &listing); err != nil {
		return nil, err
	}
	versions := make(types.VersionSet, len(listing))
	for name, entry := range listing {
		list := make([]string, 0, len(entry.Versions))
		for _, version := range entry.Versions {
			list = append(list, version.Version)
		}
		versions[name] = list
	}
	return versions, nil
}

func (a ChefServerAdapter) ListEnvironments(ctx context.Context) ([]string, error) {
	var listing map[string]string
	if err := a.Client.getJSON(ctx, "/environments", nil, &listing); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(listing))
	for name := range listing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (a ChefServerAdapter) LoadEnvironment(ctx context.Context, name string) (types.Environment, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return types.Environment{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("environment name is empty")
	}
	var env chefEnvironment
	if err := a.Client.getJSON(ctx, "/environments/"+url.PathEscape(trimmed), nil, &env); err != nil {
		return types.Environment{}, err
	}
	if env.Name == "" {
		env.Name = trimmed
	}
	return types.Environment{Name: env.Name, CookbookVersions: env.CookbookVersions}, nil
}

func (a ChefServerAdapter) ResolveRunList(ctx context.Context, environment string, runList []string) (map[string]string, error) {
	request := map[string][]string{"run_list": runList}
	var resolved map[string]chefResolvedCookbook
	path := "/environments/" + url.PathEscape(environment) + "/cookbook_versions"
	if err := a.Client.postJSON(ctx, path, request, &resolved); err != nil {
		return nil, err
	}
	versions := make(map[string]string, len(resolved))
	for key, cookbook := range resolved {
		name := cookbook.CookbookName
		if name == "" {
			name = key
		}
		versions[name] = cookbook.Version
	}
	return versions, nil
}

func (a ChefServerAdapter) DeleteCookbookVersion(ctx context.Context, cookbook string, version string) error {
	if strings.TrimSpace(cookbook) == "" || strings.TrimSpace(version) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cookbook name and version are required")
	}
	return a.Client.deletePath(ctx, "/cookbooks/"+url.PathEscape(cookbook)+"/"+url.PathEscape(version))
}

func (a ChefServerAdapter) DownloadCookbookVersion(ctx context.Context, cookbook string, version string, destDir string) error {
	return a.Downloader.DownloadCookbookVersion(ctx, cookbook, version, destDir)
}

var _ ports.ChefServerPort = ChefServerAdapter{}
