package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/wardrobe/pkg/cli/config"
	"github.com/m-mizutani/wardrobe/pkg/domain/interfaces"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
	"github.com/m-mizutani/wardrobe/pkg/infra/settings"
	"github.com/urfave/cli/v3"
)

func (a *app) cmdDownload(ctx context.Context, c *cli.Command) error {
	store := settings.NewStore(a.settingsCfg.Path)

	if a.settingsCfg.Clear {
		if err := store.Clear(); err != nil {
			a.reporter.Failure("Error clearing settings: %v", err)
			return nil
		}
		a.reporter.Success("Settings cleared successfully!")
		return nil
	}

	category, err := model.ParseCategory(a.fetchCfg.Category)
	if err != nil {
		return err
	}

	saved, err := store.Load()
	if err != nil {
		a.reporter.Warn("Error loading settings: %v", err)
	}

	p := newPrompter(a.run.stdin, a.run.stdout)

	cookie, err := resolveCookie(a.authCfg, saved, store, a.reporter, p)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(c.Args().First(), p)
	if err != nil {
		a.reporter.Failure("Error reading input: %v", err)
		return err
	}

	d := &downloader{
		fetcher:  a.fetchCfg.NewFetcher(a.logger, a.reporter, a.run.clientOptions...),
		reporter: a.reporter,
		logger:   a.logger,
		capture:  a.capture,
	}

	result := d.run(ctx, cookie, inputs, category)
	a.reporter.Notice("Finished downloading clothing items.")

	a.logger.Info("Download finished",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)

	return nil
}

// resolveCookie picks the cookie from the flag, the saved settings or an
// interactive prompt, in that order, and persists it when asked to
func resolveCookie(auth config.Auth, saved *model.Settings, store interfaces.SettingsStore, reporter interfaces.Reporter, p *prompter) (model.SessionCookie, error) {
	cookie := model.SessionCookie(auth.Cookie)
	if cookie == "" && saved.HasCookie() {
		cookie = saved.Cookie
	}

	if cookie == "" {
		input, err := p.Ask("Enter your ROBLOSECURITY cookie: ")
		if err != nil {
			return "", err
		}
		if input == "" {
			return "", goerr.New("cookie is required")
		}
		cookie = model.SessionCookie(input)

		if p.Confirm("Would you like to save this cookie for future use? (y/n): ") {
			saveCookie(store, saved, cookie, reporter)
		}
	}

	if auth.SaveCookie && auth.Cookie != "" {
		saveCookie(store, saved, model.SessionCookie(auth.Cookie), reporter)
	}

	return cookie, nil
}

func saveCookie(store interfaces.SettingsStore, saved *model.Settings, cookie model.SessionCookie, reporter interfaces.Reporter) {
	if saved == nil {
		saved = &model.Settings{}
	}
	saved.Cookie = cookie
	if err := store.Save(saved); err != nil {
		reporter.Failure("Error saving settings: %v", err)
		return
	}
	reporter.Success("Settings saved successfully!")
}

// downloader processes inputs one by one. A failed item never stops the
// batch.
type downloader struct {
	fetcher  interfaces.FetcherUseCase
	reporter interfaces.Reporter
	logger   *slog.Logger
	capture  func(error)
}

func (d *downloader) run(ctx context.Context, cookie model.SessionCookie, inputs []string, category model.Category) *model.DownloadResult {
	result := &model.DownloadResult{}

	for _, input := range inputs {
		catalogID, err := model.ParseCatalogInput(input)
		if err != nil {
			d.reporter.Failure("Failed to extract clothing ID from URL: %s", input)
			result.Add("", err)
			continue
		}

		path, err := d.fetcher.DownloadAsset(ctx, cookie, catalogID, category)
		result.Add(path, err)
		if err != nil {
			d.reportFailure(catalogID, err)
			continue
		}

		d.reporter.Success("Successfully downloaded %s", path)
	}

	return result
}

func (d *downloader) reportFailure(catalogID model.CatalogID, err error) {
	d.logger.Warn("Failed to download asset", "catalog_id", catalogID, "error", err)

	switch {
	case goerr.HasTag(err, model.ErrTagInvalidID):
		d.reporter.Failure("Invalid clothing ID format: '%s'. ID must consist of digits only.", catalogID)
	case goerr.HasTag(err, model.ErrTagCopyrightProtected):
		// already reported by the fetcher
	default:
		d.reporter.Failure("Failed to download %s: %v", catalogID, err)
	}

	if !model.IsExpected(err) {
		d.capture(err)
	}
}
