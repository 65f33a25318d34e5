package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func (a *app) cmdThumbnail() *cli.Command {
	return &cli.Command{
		Name:      "thumbnail",
		Aliases:   []string{"t"},
		Usage:     "Download 420x420 thumbnails of asset IDs",
		ArgsUsage: "<asset_id>...",
		Action: func(ctx context.Context, c *cli.Command) error {
			ids := c.Args().Slice()
			if len(ids) == 0 {
				return goerr.New("at least one asset ID is required")
			}

			fetcher := a.fetchCfg.NewFetcher(a.logger, a.reporter, a.run.clientOptions...)
			result := &model.DownloadResult{}

			for _, id := range ids {
				assetID := model.AssetID(id)

				data, err := fetcher.GetThumbnail(ctx, assetID)
				if err != nil {
					result.Add("", err)
					a.logger.Warn("Failed to get thumbnail", "asset_id", assetID, "error", err)
					a.reporter.Failure("Error getting thumbnail for %s: %v", assetID, err)
					if !model.IsExpected(err) {
						a.capture(err)
					}
					continue
				}

				path, err := fetcher.SaveImage(id, model.CategoryThumbnails, data)
				result.Add(path, err)
				if err != nil {
					a.reporter.Failure("Error saving thumbnail for %s: %v", assetID, err)
					a.capture(err)
					continue
				}

				a.reporter.Success("Successfully downloaded %s", path)
			}

			a.reporter.Notice("Finished downloading thumbnails.")
			a.logger.Info("Thumbnail download finished",
				"succeeded", result.Succeeded,
				"failed", result.Failed,
			)
			return nil
		},
	}
}
