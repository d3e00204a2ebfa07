package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgviz/orgviz/internal/contract"
	"github.com/orgviz/orgviz/internal/gristio"
)

// LoadSnapshot resolves the configured data source and reads the five
// tables from it. Precedence: the Grist API when requested and fully
// configured, then an explicit archive path, then the newest archive in
// the data directory. A half-configured API falls back to the archive
// path with a warning instead of failing the run.
func LoadSnapshot(ctx context.Context, cfg *contract.Config) (*gristio.Snapshot, error) {
	if cfg.UseAPI {
		apiCfg, missing := gristio.APIConfigFromEnv()
		if len(missing) == 0 {
			client := gristio.NewClient(*apiCfg)
			return client.FetchSnapshot(ctx, cfg.Mapping)
		}
		contract.LogWarning(fmt.Sprintf("API requested but %s not set, falling back to local archive", strings.Join(missing, ", ")))
	}

	path := cfg.SourcePath
	if path == "" {
		found, err := gristio.FindDefaultArchive(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	return gristio.LoadArchive(path, cfg.Mapping)
}
