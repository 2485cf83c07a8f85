package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gosuri/uiprogress"
	"github.com/mmrzaf/tpchgen/internal/app"
	"github.com/mmrzaf/tpchgen/internal/config"
	"github.com/mmrzaf/tpchgen/internal/domain"
	"github.com/mmrzaf/tpchgen/internal/exec"
	"github.com/mmrzaf/tpchgen/internal/infra/repos/profiles"
	"github.com/mmrzaf/tpchgen/internal/infra/repos/runs"
	"github.com/mmrzaf/tpchgen/internal/logging"
	"github.com/mmrzaf/tpchgen/internal/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	profilesDir string
	runsDB      string
	logLevel    string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "tpchgen",
		Short: "TPC-H benchmark dataset generator",
	}

	rootCmd.PersistentFlags().StringVar(&profilesDir, "profiles-dir", cfg.ProfilesDir, "Profiles directory")
	rootCmd.PersistentFlags().StringVar(&runsDB, "runs-db", cfg.RunsDB, "Runs database path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")

	rootCmd.AddCommand(generateCmd(cfg))
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd(cfg *config.Config) *cobra.Command {
	var (
		scaleFactor  float64
		seed         int64
		hasSeed      bool
		outDir       string
		profileID    string
		profilePath  string
		tableList    []string
		rowsOverride []string
		dryRun       bool
		noProgress   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(logLevel)

			profileRepo := profiles.NewFileRepository(profilesDir)
			runRepo := runs.NewRepository(runsDB)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			service := app.NewRunService(profileRepo, runRepo, logger)

			req := &app.RunRequest{
				ProfileID:   profileID,
				ProfilePath: profilePath,
				OutDir:      outDir,
				Tables:      tableList,
				DryRun:      dryRun,
			}
			if profileID == "" && profilePath == "" {
				req.Profile = &domain.Profile{
					Name:        "inline",
					ScaleFactor: scaleFactor,
				}
			}
			if hasSeed {
				req.Seed = &seed
			}

			if len(rowsOverride) > 0 {
				overrides := make(map[string]int64)
				for _, override := range rowsOverride {
					parts := strings.SplitN(override, "=", 2)
					if len(parts) != 2 {
						return fmt.Errorf("invalid rows override format: %s", override)
					}
					rows, err := strconv.ParseInt(parts[1], 10, 64)
					if err != nil {
						return fmt.Errorf("invalid rows value: %s", parts[1])
					}
					overrides[parts[0]] = rows
				}
				req.RowOverrides = overrides
			}

			var bar *uiprogress.Bar
			if !noProgress {
				uiprogress.Start()
				bar = uiprogress.AddBar(len(exec.StageNames())).AppendCompleted().PrependElapsed()
				var current string
				bar.PrependFunc(func(b *uiprogress.Bar) string {
					return fmt.Sprintf("%-10s", current)
				})
				req.OnStage = func(name string, completed, total int) {
					current = name
					bar.Set(completed)
				}
			}

			run, err := service.Execute(req)
			if !noProgress {
				uiprogress.Stop()
			}
			if err != nil {
				return err
			}

			fmt.Printf("Run %s completed\n", run.ID)
			if run.Stats != nil {
				var stats domain.RunStats
				json.Unmarshal(run.Stats, &stats)
				fmt.Printf("Tables: %d, total rows: %d, duration: %.2fs\n",
					stats.TablesGenerated, stats.TotalRows, stats.DurationSeconds)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&scaleFactor, "scale-factor", "s", 1.0, "Scale factor")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for RNG")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", cfg.OutDir, "Output directory")
	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID or name")
	cmd.Flags().StringVar(&profilePath, "profile-path", "", "Profile file path")
	cmd.Flags().StringSliceVar(&tableList, "tables", nil, "Tables to write (default all)")
	cmd.Flags().StringSliceVar(&rowsOverride, "rows-override", nil, "Row overrides (table=rows)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate without writing files")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasSeed = cmd.Flags().Changed("seed")
	}

	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
	}

	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := profiles.NewFileRepository(profilesDir)
			list, err := repo.List()
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSCALE FACTOR\tTABLES")
			for _, p := range list {
				tables := "all"
				if len(p.Tables) > 0 {
					tables = strings.Join(p.Tables, ",")
				}
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", p.ID, p.Name, p.ScaleFactor, tables)
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show profile details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := profiles.NewFileRepository(profilesDir)
			profile, err := repo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(profile)
			fmt.Println(string(data))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <id|path>",
		Short: "Validate a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := profiles.NewFileRepository(profilesDir)
			var profile *domain.Profile
			var err error

			if strings.Contains(args[0], "/") || strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml") {
				profile, err = repo.GetByPath(args[0])
			} else {
				profile, err = repo.Get(args[0])
			}

			if err != nil {
				return err
			}

			if err := validation.ValidateProfile(profile); err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				return err
			}

			fmt.Printf("Profile '%s' is valid\n", profile.Name)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd, validateCmd)
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Inspect past runs",
	}

	var limit int
	var status string
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewRepository(runsDB)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			list, err := runRepo.List(limit, status)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROFILE\tSF\tSEED\tSTATUS\tSTARTED")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%s\t%s\n",
					r.ID[:8], r.ProfileName, r.ScaleFactor, r.Seed, r.Status, r.StartedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Show run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewRepository(runsDB)
			if err := runRepo.Init(); err != nil {
				return err
			}
			defer runRepo.Close()

			run, err := runRepo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(run)
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
