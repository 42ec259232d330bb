package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/db"
	"lostark-hub/partyfinder/internal/models/dtos"
	"lostark-hub/partyfinder/internal/seed"
	"lostark-hub/partyfinder/internal/services"
)

type runner struct {
	cfg *config.Config
	out io.Writer
	gdb *gorm.DB
}

func (r *runner) app() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Maintenance tasks for the party finder database",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create or update every table",
				Action: r.migrate,
			},
			{
				Name:  "seed",
				Usage: "Load regions and content catalogs from the embedded TOML files",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Content type to seed (repeatable); regions and every catalog when omitted",
					},
				},
				Action: r.seed,
			},
			{
				Name:   "expire",
				Usage:  "Expire started posts once and repost recurring ones",
				Action: r.expire,
			},
		},
	}
}

func (r *runner) open() (*gorm.DB, error) {
	if r.gdb != nil {
		return r.gdb, nil
	}
	gdb, _, err := db.Open(r.cfg)
	if err != nil {
		return nil, err
	}
	r.gdb = gdb
	return gdb, nil
}

func (r *runner) migrate(ctx context.Context, cmd *cli.Command) error {
	gdb, err := r.open()
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb.WithContext(ctx)); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "migrated")
	return nil
}

func (r *runner) seed(ctx context.Context, cmd *cli.Command) error {
	gdb, err := r.open()
	if err != nil {
		return err
	}
	loader := seed.NewLoader(gdb)

	var results []dtos.SeedResult
	types := cmd.StringSlice("type")
	if len(types) == 0 {
		results, err = loader.SeedAll(ctx)
		if err != nil {
			return err
		}
	} else {
		for _, raw := range types {
			ct, ok := constants.ParseContentType(raw)
			if !ok {
				return fmt.Errorf("unknown content type %q", raw)
			}
			res, err := loader.SeedContent(ctx, ct)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
	}

	for _, res := range results {
		fmt.Fprintf(r.out, "%-16s %d rows\n", res.Catalog, res.Rows)
	}
	return nil
}

func (r *runner) expire(ctx context.Context, cmd *cli.Command) error {
	gdb, err := r.open()
	if err != nil {
		return err
	}
	catalog := services.NewCatalogService(gdb, common.NewCacheService(services.CatalogTTL, services.CatalogTTL))
	expired, err := services.NewPartyFindService(gdb, catalog).ExpireStarted(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "expired %d posts\n", expired)
	return nil
}
