package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/sheqworks/themis/pkg/cli/config"
	"github.com/sheqworks/themis/pkg/domain/interfaces"
	"github.com/sheqworks/themis/pkg/utils/logging"
	"github.com/sheqworks/themis/pkg/utils/safe"
)

// loadSeedData loads the legal knowledge base into the repository without
// the interactive output of the seed command. Used by serve to populate a
// fresh memory backend at startup.
func loadSeedData(ctx context.Context, repo interfaces.Repository, path string) error {
	ref, err := config.LoadReferenceData(path)
	if err != nil {
		return err
	}

	laws, obligations := ref.ToModels()
	for _, law := range laws {
		if _, err := repo.Law().Create(ctx, law); err != nil {
			return goerr.Wrap(err, "failed to upsert law", goerr.V(config.LawIDKey, law.ID))
		}
	}
	for _, obl := range obligations {
		if _, err := repo.Obligation().Create(ctx, obl); err != nil {
			return goerr.Wrap(err, "failed to upsert obligation", goerr.V(config.ObligationKey, obl.ID))
		}
	}

	logging.Default().Info("Loaded legal knowledge base",
		"path", path,
		"laws", len(laws),
		"obligations", len(obligations),
	)
	return nil
}

func cmdSeed() *cli.Command {
	var seedFile string
	var dryRun bool
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "Path to the legal knowledge base TOML file",
			Value:       "data/legal_knowledge.toml",
			Sources:     cli.EnvVars("THEMIS_SEED_FILE"),
			Destination: &seedFile,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Validate the seed file without writing",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load the legal knowledge base into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ref, err := config.LoadReferenceData(seedFile)
			if err != nil {
				return goerr.Wrap(err, "failed to load seed file")
			}

			laws, obligations := ref.ToModels()
			color.Cyan("Loaded %d laws and %d obligations from %s", len(laws), len(obligations), seedFile)

			if dryRun {
				color.Yellow("Dry run mode - nothing written")
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			for _, law := range laws {
				if _, err := repo.Law().Create(ctx, law); err != nil {
					return goerr.Wrap(err, "failed to upsert law", goerr.V(config.LawIDKey, law.ID))
				}
				color.Green("law %s: %s", law.ID, law.Name)
			}

			for _, obl := range obligations {
				if _, err := repo.Obligation().Create(ctx, obl); err != nil {
					return goerr.Wrap(err, "failed to upsert obligation", goerr.V(config.ObligationKey, obl.ID))
				}
				color.Green("obligation %s (%s, weight %d)", obl.ID, obl.Category, obl.RiskWeight)
			}

			color.Cyan("Seed completed")
			return nil
		},
	}
}
