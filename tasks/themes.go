package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"

	setup "github.com/aorozco-g/arch-setup"
	"github.com/aorozco-g/arch-setup/step"
)

// downloadThemes fetches theme and dotfile archives. Each download is
// independent; one bad URL does not stop the others.
func downloadThemes(client *resty.Client, downloads []setup.Download, logger *slog.Logger) step.Action {
	return func(ctx context.Context) error {
		var errs []error
		for _, dl := range downloads {
			if err := download(ctx, client, dl); err != nil {
				errs = append(errs, fmt.Errorf("download %s: %w", dl.URL, err))
				continue
			}
			logger.Info("downloaded",
				slog.String("url", dl.URL),
				slog.String("dest", dl.Dest),
			)
		}
		return errors.Join(errs...)
	}
}

func download(ctx context.Context, client *resty.Client, dl setup.Download) error {
	if err := os.MkdirAll(filepath.Dir(dl.Dest), 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	resp, err := client.R().
		SetContext(ctx).
		SetOutput(dl.Dest).
		Get(dl.URL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status %s", resp.Status())
	}
	return nil
}
