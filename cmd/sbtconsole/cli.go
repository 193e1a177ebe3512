package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/sbtransport/sbtconsole/internal/bundle"
	adminhttp "github.com/sbtransport/sbtconsole/internal/http/admin"
	"github.com/sbtransport/sbtconsole/internal/pricing"
)

// cli runs the one-shot modes against the same services the admin API uses.
type cli struct {
	admin *adminhttp.Service
	out   io.Writer
}

func (c *cli) setKey(ctx context.Context, key string) error {
	resp, err := c.admin.SaveCredential(ctx, &adminhttp.CredentialRequest{AccessKey: key})
	if err != nil {
		return err
	}
	log.Info().Bool("active_now", resp.Configured).Msg("access key saved; restart to use it")
	return nil
}

func (c *cli) export(ctx context.Context, path string) error {
	doc, err := c.admin.Export(ctx)
	if err != nil {
		return err
	}
	if path == "-" {
		return doc.Encode(c.out)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := doc.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", path).Interface("rows", doc.Counts()).Msg("export written")
	return nil
}

func (c *cli) importFile(ctx context.Context, path string) error {
	raw, err := bundle.ReadDocument(path)
	if err != nil {
		return err
	}
	resp, err := c.admin.Import(ctx, raw)
	for _, t := range resp.Tables {
		fmt.Fprintf(c.out, "%-14s %d rows\n", t.Table, t.Rows)
	}
	return err
}

func (c *cli) snapshot(ctx context.Context) error {
	result, err := c.admin.CreateBackup(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s (%d bytes)\n", result.Path, result.Size)
	return nil
}

func (c *cli) services(ctx context.Context, path string) error {
	rows, err := c.admin.GetServices(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create price list: %w", err)
	}
	if err := pricing.WritePriceList(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s (%d services)\n", path, len(rows))
	return nil
}

func (c *cli) nextMemo(ctx context.Context) error {
	resp, err := c.admin.NextMemo(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, resp.MemoNo)
	return nil
}
