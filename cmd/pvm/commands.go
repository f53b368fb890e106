package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	operaton "github.com/operaton/operaton-sub059"
	"github.com/operaton/operaton-sub059/persistence/sqlpersistence"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runCmd() *cobra.Command {
	var (
		metricsAddr      string
		pollInterval     time.Duration
		core, maxWorkers int
		maxJobs          int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute due jobs until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if core < 0 || maxWorkers <= 0 || core > maxWorkers {
				return fmt.Errorf("invalid worker pool size: %d core, %d max", core, maxWorkers)
			}

			return withEngine(
				cmd.Context(),
				func(ctx context.Context, e *operaton.Engine, logger *zap.Logger) error {
					setMaxProcs(logger)

					g, ctx := errgroup.WithContext(ctx)

					if metricsAddr != "" {
						server := &http.Server{
							Addr:              metricsAddr,
							Handler:           promhttp.Handler(),
							ReadHeaderTimeout: 5 * time.Second,
						}

						g.Go(func() error {
							logger.Info("serving metrics", zap.String("addr", metricsAddr))
							if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
								return err
							}
							return nil
						})

						g.Go(func() error {
							<-ctx.Done()
							return server.Close()
						})
					}

					g.Go(func() error {
						logger.Info("executing jobs")
						return e.Run(ctx)
					})

					err := g.Wait()
					if errors.Is(err, context.Canceled) {
						logger.Info("stopped")
						return nil
					}
					return err
				},
				operaton.WithJobExecutor(true),
				operaton.WithMetrics(prometheus.DefaultRegisterer),
				operaton.WithPollInterval(pollInterval),
				operaton.WithWorkerPool(core, maxWorkers),
				operaton.WithMaxJobsPerAcquisition(maxJobs),
			)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address at which to serve Prometheus metrics")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", operaton.DefaultPollInterval, "interval between queries for due jobs")
	cmd.Flags().IntVar(&core, "core-workers", operaton.DefaultCoreWorkers, "number of workers kept while idle")
	cmd.Flags().IntVar(&maxWorkers, "max-workers", operaton.DefaultMaxWorkers, "maximum number of workers")
	cmd.Flags().IntVar(&maxJobs, "max-jobs", operaton.DefaultMaxJobsPerAcquisition, "maximum number of jobs acquired at once")

	return cmd
}

func definitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "definitions",
		Short: "List the process definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := loadDefinitions()
			if err != nil {
				return err
			}
			return printDefinitions(cmd.OutOrStdout(), defs)
		},
	}
}

func startCmd() *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "start <definition-id>",
		Short: "Start a process instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseVariables(vars)
			if err != nil {
				return err
			}

			return withEngine(
				cmd.Context(),
				func(ctx context.Context, e *operaton.Engine, _ *zap.Logger) error {
					id, err := e.StartProcessInstance(ctx, args[0], m)
					if err != nil {
						return err
					}

					fmt.Fprintln(cmd.OutOrStdout(), id)
					return nil
				},
			)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable as name=value, may be repeated")

	return cmd
}

func signalCmd() *cobra.Command {
	var (
		vars            []string
		name            string
		deferOnConflict bool
	)

	cmd := &cobra.Command{
		Use:   "signal <execution-id>",
		Short: "Signal an execution that is waiting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseVariables(vars)
			if err != nil {
				return err
			}

			var options []operaton.SignalOption
			if name != "" {
				options = append(options, operaton.WithSignalName(name))
			}
			if deferOnConflict {
				options = append(options, operaton.WithDeferOnConflict())
			}

			return withEngine(
				cmd.Context(),
				func(ctx context.Context, e *operaton.Engine, _ *zap.Logger) error {
					return e.Signal(ctx, args[0], m, options...)
				},
			)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable as name=value, may be repeated")
	cmd.Flags().StringVar(&name, "name", "", "signal name")
	cmd.Flags().BoolVar(&deferOnConflict, "defer", false, "defer the signal to a job if it conflicts")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <process-instance-id>",
		Short: "Show the state of a process instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(
				cmd.Context(),
				func(ctx context.Context, e *operaton.Engine, _ *zap.Logger) error {
					pi, err := e.ProcessInstance(ctx, args[0])
					if err != nil {
						return err
					}

					vars, err := e.Variables(ctx, pi.ID)
					if err != nil {
						return err
					}

					jobs, err := e.Jobs(ctx, pi.ID)
					if err != nil {
						return err
					}

					out := cmd.OutOrStdout()
					printInstance(out, pi)
					printVariables(out, vars)
					printJobs(out, jobs)

					return nil
				},
			)
		},
	}
}

func jobCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "job", Short: "Manage jobs"}

	cmd.AddCommand(jobAction(
		"execute",
		"Execute a job immediately",
		(*operaton.Engine).ExecuteJob,
	))
	cmd.AddCommand(jobAction(
		"suspend",
		"Suspend a job",
		(*operaton.Engine).SuspendJob,
	))
	cmd.AddCommand(jobAction(
		"activate",
		"Activate a suspended job",
		(*operaton.Engine).ActivateJob,
	))

	var retries int
	retry := &cobra.Command{
		Use:   "retries <job-id>",
		Short: "Set the remaining retries of a job, resolving its incidents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(
				cmd.Context(),
				func(ctx context.Context, e *operaton.Engine, _ *zap.Logger) error {
					return e.SetJobRetries(ctx, args[0], retries)
				},
			)
		},
	}
	retry.Flags().IntVar(&retries, "retries", 1, "number of retries")
	cmd.AddCommand(retry)

	return cmd
}

func jobAction(
	use, short string,
	fn func(*operaton.Engine, context.Context, string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <job-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(
				cmd.Context(),
				func(ctx context.Context, e *operaton.Engine, _ *zap.Logger) error {
					return fn(e, ctx, args[0])
				},
			)
		},
	}
}

func incidentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incidents <process-instance-id>",
		Short: "List the incidents of a process instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(
				cmd.Context(),
				func(ctx context.Context, e *operaton.Engine, _ *zap.Logger) error {
					incidents, err := e.Incidents(ctx, args[0])
					if err != nil {
						return err
					}

					printIncidents(cmd.OutOrStdout(), incidents)
					return nil
				},
			)
		},
	}
}

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "schema", Short: "Manage the SQL schema"}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create the SQL schema if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), sqlpersistence.CreateSchema)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "drop",
		Short: "Drop the SQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), sqlpersistence.DropSchema)
		},
	})

	return cmd
}

// withDB calls fn with the configured SQL database.
func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	n := viper.GetString("sql-driver")
	if n == "" {
		return errors.New("--sql-driver is required")
	}

	db, err := sql.Open(n, viper.GetString("sql-dsn"))
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, db)
}
