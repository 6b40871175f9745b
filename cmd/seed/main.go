package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/open-agent-labs/skills-catalog/internal/catalog"
	"github.com/open-agent-labs/skills-catalog/internal/config"
	"github.com/open-agent-labs/skills-catalog/internal/db"
	"github.com/open-agent-labs/skills-catalog/internal/logger"
	"github.com/open-agent-labs/skills-catalog/internal/models"
	"github.com/open-agent-labs/skills-catalog/internal/repository"
	"github.com/open-agent-labs/skills-catalog/internal/service"
)

type seedOptions struct {
	file    string
	driver  string
	dsn     string
	migrate bool
	dryRun  bool
}

func newRootCmd() *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load skill records into the catalog store",
		Long: `Load skill records into the catalog store.

Without --file the embedded fallback catalog is loaded. Records are upserted
by id, so running the command twice leaves the store unchanged.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML file with skills (defaults to the embedded catalog)")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "Database driver: postgres or sqlite (defaults to DATABASE_DRIVER)")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Database connection string (defaults to DATABASE_URL)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", true, "Apply migrations before loading")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate the records without writing them")

	return cmd
}

func runSeed(ctx context.Context, cmd *cobra.Command, opts *seedOptions) error {
	skills, err := loadSkills(opts.file)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		fmt.Fprintf(out, "%d skills are valid\n", len(skills))
		return nil
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	driver, dsn := cfg.DatabaseDriver, cfg.DatabaseURL
	if opts.driver != "" {
		driver = opts.driver
	}
	if opts.dsn != "" {
		dsn = opts.dsn
	}
	if dsn == "" {
		return fmt.Errorf("seed: database connection string is required (--dsn or DATABASE_URL)")
	}

	conn, err := db.Open(ctx, driver, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	if opts.migrate {
		if err := db.RunMigrations(ctx, conn, db.Migrations); err != nil {
			return err
		}
	}

	seeder := service.NewSeedService(service.NewSkillService(repository.NewSkillRepository(conn)))
	result, err := seeder.Seed(ctx, skills)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "seeded %d of %d skills\n", result.Upserted, result.Total)
	for _, f := range result.Failures {
		fmt.Fprintf(out, "  failed %s (%s): %s\n", f.Name, f.ID, f.Error)
	}
	if result.Failed > 0 {
		return fmt.Errorf("seed: %d skills failed", result.Failed)
	}
	return nil
}

func loadSkills(path string) ([]models.Skill, error) {
	if path == "" {
		return catalog.EmbeddedSkills()
	}
	return catalog.LoadSkillsFile(path)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Init("info")

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
