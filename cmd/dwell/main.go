package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dwell/internal/bootstrap"
	reportdto "dwell/internal/modules/report/dto"
	"dwell/internal/platform/config"
	"dwell/internal/platform/timeutil"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "dwell",
		Short:         "Digital wellbeing tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory")

	root.AddCommand(newRunCmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newReportCmd(&dataDir))
	root.AddCommand(newGoalCmd(&dataDir))
	root.AddCommand(newSensorCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dwell"
	}
	return filepath.Join(home, ".dwell")
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newRunCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the tracking daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Run(cmd.Context())
		},
	}
}

func newStatusCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's totals and goal progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			day, err := app.ReportCLI.Today(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n", day.Date)
			_, _ = fmt.Fprintf(out, "  screen  %s\n", day.ScreenText)
			_, _ = fmt.Fprintf(out, "  focus   %s\n", day.FocusText)
			_, _ = fmt.Fprintf(out, "  sound   %s\n", day.SoundText)

			status, err := app.GoalCLI.Status(ctx, timeutil.SecondsDuration(day.ScreenSeconds))
			if err != nil {
				return err
			}
			if status.HasGoal {
				_, _ = fmt.Fprintf(out, "  goal    %s\n", status.Text)
			}
			return nil
		},
	}
}

func newReportCmd(dataDir *string) *cobra.Command {
	var date string
	var top int

	report := &cobra.Command{
		Use:   "report",
		Short: "Show a full day report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*dataDir)
			if err != nil {
				return err
			}
			app, err := bootstrap.NewReporting(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			var day reportdto.DayReport
			if date == "" {
				day, err = app.ReportCLI.Today(ctx)
			} else {
				day, err = app.ReportCLI.ForDate(ctx, date)
			}
			if err != nil {
				return err
			}
			printDayReport(cmd, day, top)
			return nil
		},
	}
	report.Flags().StringVar(&date, "date", "", "day to report in 2006-01-02 form (default today)")
	report.Flags().IntVar(&top, "top", 5, "number of apps to list")
	return report
}

func printDayReport(cmd *cobra.Command, day reportdto.DayReport, top int) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n", day.Date)
	_, _ = fmt.Fprintf(out, "  screen  %s\n", day.ScreenText)
	_, _ = fmt.Fprintf(out, "  focus   %s\n", day.FocusText)
	_, _ = fmt.Fprintf(out, "  sound   %s\n", day.SoundText)

	if len(day.TopApps) > 0 {
		_, _ = fmt.Fprintln(out, "top apps:")
		for i, app := range day.TopApps {
			if top > 0 && i >= top {
				break
			}
			_, _ = fmt.Fprintf(out, "  %-30s %s\n", app.AppName, app.Text)
		}
	}
	if len(day.SoundSessions) > 0 {
		_, _ = fmt.Fprintln(out, "sound sessions:")
		for _, s := range day.SoundSessions {
			flag := ""
			if s.WasHarmful {
				flag = "  HARMFUL"
			}
			_, _ = fmt.Fprintf(out, "  %s  %-24s %4dm  %.0f dB%s\n",
				s.Start.Format("15:04"), s.DeviceName, s.Seconds/60, s.EstimatedMaxDB, flag)
		}
	}
}

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Screen time goal"}

	setCmd := &cobra.Command{
		Use:   "set <minutes>",
		Short: "Set the daily screen time goal; 0 clears it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseMinutes(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.GoalCLI.SetGoal(context.Background(), minutes); err != nil {
				return err
			}
			if minutes <= 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "goal cleared")
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal set to %dm\n", minutes)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show goal progress for today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			day, err := app.ReportCLI.Today(ctx)
			if err != nil {
				return err
			}
			status, err := app.GoalCLI.Status(ctx, timeutil.SecondsDuration(day.ScreenSeconds))
			if err != nil {
				return err
			}
			if !status.HasGoal {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goal set")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), status.Text)
			return nil
		},
	}

	notifyCmd := &cobra.Command{
		Use:   "notifications [on|off]",
		Short: "Show or toggle goal and exposure notifications",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := context.Background()
			if len(args) == 1 {
				var enabled bool
				switch args[0] {
				case "on":
					enabled = true
				case "off":
					enabled = false
				default:
					return fmt.Errorf("notifications: want on or off, got %q", args[0])
				}
				if err := app.GoalCLI.SetNotifications(ctx, enabled); err != nil {
					return err
				}
			}
			enabled, err := app.GoalCLI.Notifications(ctx)
			if err != nil {
				return err
			}
			state := "off"
			if enabled {
				state = "on"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notifications %s\n", state)
			return nil
		},
	}

	goal.AddCommand(setCmd, showCmd, notifyCmd)
	return goal
}

func parseMinutes(raw string) (int, error) {
	var minutes int
	if _, err := fmt.Sscanf(raw, "%d", &minutes); err != nil {
		return 0, fmt.Errorf("minutes must be an integer: %q", raw)
	}
	return minutes, nil
}

func newSensorCmd(dataDir *string) *cobra.Command {
	sensor := &cobra.Command{Use: "sensor", Short: "Sensor provider operations"}

	sensor.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the configured provider with a live handshake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			info, err := app.SensorCLI.Check(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "provider %s %s (%s)\n  binary %s\n",
				info.Name, info.Version, info.Platform, info.Binary)
			return nil
		},
	})
	return sensor
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the wellbeing dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}
