package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"libtrack/internal/bootstrap"
	exportdomain "libtrack/internal/modules/export/domain"
	statsdto "libtrack/internal/modules/stats/dto"
	"libtrack/internal/platform/config"
	"libtrack/internal/platform/duration"
	"libtrack/internal/ui/theme"
)

const timeFlagLayout = "2006-01-02 15:04"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "libtrack",
		Short:         "Library visit tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newLogCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newAskCmd(&dataDir))
	root.AddCommand(newThemeCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	return bootstrap.New(context.Background(), dataDir)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the libtrack terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Visit session lifecycle"}

	var level int
	in := &cobra.Command{
		Use:   "in <name>",
		Short: "Sign a student in",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.TimeIn(context.Background(), strings.Join(args, " "), level)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in: %s level=%d id=%s at=%s\n",
				out.StudentName, out.Level, out.SessionID, out.TimeIn.Format(timeFlagLayout))
			return nil
		},
	}
	in.Flags().IntVar(&level, "level", 100, "student level: 100|200|300|400")

	out := &cobra.Command{
		Use:   "out <id>",
		Short: "Sign a student out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			result, err := app.SessionCLI.TimeOut(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !result.Completed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session with that id")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed out: %s\n", result.SessionID)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List active sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			active, err := app.SessionCLI.Active(context.Background())
			if err != nil {
				return err
			}
			if len(active) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no one is signed in")
				return nil
			}
			for _, s := range active {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n",
					s.SessionID, s.StudentName, s.Level, s.TimeIn.Format(timeFlagLayout))
			}
			return nil
		},
	}

	session.AddCommand(in, out, list)
	session.AddCommand(newSessionAddCmd(dataDir), newSessionEditCmd(dataDir), newSessionDeleteCmd(dataDir))
	return session
}

func newSessionAddCmd(dataDir *string) *cobra.Command {
	var level int
	var timeIn, timeOut, notes string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Backfill a completed session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out, err := parseRange(timeIn, timeOut)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			added, err := app.SessionCLI.AddCompleted(context.Background(), strings.Join(args, " "), level, in, out, notes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added: %s %s\n", added.SessionID, duration.FormatClock(added.Seconds))
			return nil
		},
	}
	add.Flags().IntVar(&level, "level", 100, "student level")
	add.Flags().StringVar(&timeIn, "in", "", `time in ("2006-01-02 15:04")`)
	add.Flags().StringVar(&timeOut, "out", "", `time out ("2006-01-02 15:04")`)
	add.Flags().StringVar(&notes, "notes", "", "notes")
	return add
}

func newSessionEditCmd(dataDir *string) *cobra.Command {
	var name, timeIn, timeOut, notes string
	var level int
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a completed session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out, err := parseRange(timeIn, timeOut)
			if err != nil {
				return err
			}
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.SessionCLI.UpdateCompleted(context.Background(), args[0], name, level, in, out, notes); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "updated")
			return nil
		},
	}
	edit.Flags().StringVar(&name, "name", "", "student name")
	edit.Flags().IntVar(&level, "level", 100, "student level")
	edit.Flags().StringVar(&timeIn, "in", "", `time in ("2006-01-02 15:04")`)
	edit.Flags().StringVar(&timeOut, "out", "", `time out ("2006-01-02 15:04")`)
	edit.Flags().StringVar(&notes, "notes", "", "notes")
	return edit
}

func newSessionDeleteCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a completed session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.SessionCLI.DeleteCompleted(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

func parseRange(timeIn, timeOut string) (time.Time, time.Time, error) {
	if timeIn == "" || timeOut == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--in and --out are required")
	}
	in, err := time.ParseInLocation(timeFlagLayout, timeIn, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad --in: %w", err)
	}
	out, err := time.ParseInLocation(timeFlagLayout, timeOut, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad --out: %w", err)
	}
	return in, out, nil
}

func newStatsCmd(dataDir *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Derived statistics"}

	var search, sortKey string
	var descending bool
	var limit int
	totals := &cobra.Command{
		Use:   "totals",
		Short: "Per-student totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			board, err := app.StatsCLI.Leaderboard(context.Background(), search, sortKey, descending, limit)
			if err != nil {
				return err
			}
			for _, t := range board.Totals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d sessions\tavg %s\ttotal %s\n",
					t.StudentName, t.Level, t.SessionCount,
					duration.Format(int(t.AverageSeconds)), duration.Format(t.TotalSeconds))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d total sessions\n", board.TotalSessions)
			return nil
		},
	}
	totals.Flags().StringVar(&search, "search", "", "name filter")
	totals.Flags().StringVar(&sortKey, "sort", "total", "sort key: name|level|total|average|count")
	totals.Flags().BoolVar(&descending, "desc", true, "descending order")
	totals.Flags().IntVar(&limit, "limit", 0, "max rows, 0 for all")

	levels := &cobra.Command{
		Use:   "levels",
		Short: "Session counts per level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			buckets, err := app.StatsCLI.LevelBuckets(context.Background())
			if err != nil {
				return err
			}
			for _, b := range buckets {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\n", b.Label, b.Value)
			}
			return nil
		},
	}

	students := &cobra.Command{
		Use:   "students",
		Short: "Time per student, busiest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			buckets, err := app.StatsCLI.StudentBuckets(context.Background())
			if err != nil {
				return err
			}
			for _, b := range buckets {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", b.Label, duration.Format(int(b.Value)))
			}
			return nil
		},
	}

	stats.AddCommand(totals, levels, students)
	return stats
}

func newLogCmd(dataDir *string) *cobra.Command {
	var name, from, to string
	var level int
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "List completed sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := statsdto.LogQuery{Name: name, Level: level}
			if from != "" {
				t, err := time.ParseInLocation("2006-01-02", from, time.Local)
				if err != nil {
					return fmt.Errorf("bad --from: %w", err)
				}
				query.From = t
			}
			if to != "" {
				t, err := time.ParseInLocation("2006-01-02", to, time.Local)
				if err != nil {
					return fmt.Errorf("bad --to: %w", err)
				}
				query.To = t
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.StatsCLI.Log(context.Background(), query)
			if err != nil {
				return err
			}
			for _, e := range out.Entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
					e.SessionID, e.StudentName, e.Level,
					e.TimeIn.Format(timeFlagLayout), e.TimeOut.Format(timeFlagLayout),
					duration.FormatClock(e.Seconds), e.Notes)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d entries, %s total\n",
				len(out.Entries), duration.Format(out.TotalSeconds))
			return nil
		},
	}
	logCmd.Flags().StringVar(&name, "name", "", "name filter")
	logCmd.Flags().IntVar(&level, "level", 0, "level filter, 0 for any")
	logCmd.Flags().StringVar(&from, "from", "", "start date (2006-01-02)")
	logCmd.Flags().StringVar(&to, "to", "", "end date (2006-01-02)")
	return logCmd
}

func newExportCmd(dataDir *string) *cobra.Command {
	var view string
	export := &cobra.Command{Use: "export", Short: "Export session data"}

	run := func(cmd *cobra.Command, format, path string) error {
		app, err := loadApp(*dataDir)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		ctx := context.Background()
		dark := app.Config.Theme == config.ThemeDark

		switch view {
		case "log":
			out, err := app.StatsCLI.Log(ctx, statsdto.LogQuery{})
			if err != nil {
				return err
			}
			rows := make([]exportdomain.LogRow, 0, len(out.Entries))
			for _, e := range out.Entries {
				rows = append(rows, exportdomain.LogRow{
					StudentName: e.StudentName,
					Level:       e.Level,
					TimeIn:      e.TimeIn,
					TimeOut:     e.TimeOut,
					Seconds:     e.Seconds,
					Notes:       e.Notes,
				})
			}
			switch format {
			case "csv":
				csv, err := app.Export.LogCSV(ctx, rows)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
					return err
				}
			case "pdf":
				if err := app.Export.LogPDF(ctx, rows, path); err != nil {
					return err
				}
			case "png":
				if err := app.Export.LogPNG(ctx, rows, dark, path); err != nil {
					return err
				}
			}

		case "leaderboard":
			board, err := app.StatsCLI.Leaderboard(ctx, "", "total", true, 0)
			if err != nil {
				return err
			}
			rows := make([]exportdomain.LeaderboardRow, 0, len(board.Totals))
			for _, t := range board.Totals {
				rows = append(rows, exportdomain.LeaderboardRow{
					StudentName:    t.StudentName,
					Level:          t.Level,
					SessionCount:   t.SessionCount,
					AverageSeconds: t.AverageSeconds,
					TotalSeconds:   t.TotalSeconds,
				})
			}
			switch format {
			case "csv":
				csv, err := app.Export.LeaderboardCSV(ctx, rows)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
					return err
				}
			case "pdf":
				if err := app.Export.LeaderboardPDF(ctx, rows, path); err != nil {
					return err
				}
			case "png":
				if err := app.Export.LeaderboardPNG(ctx, rows, dark, path); err != nil {
					return err
				}
			}

		default:
			return fmt.Errorf("unknown --view %q, want log or leaderboard", view)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
		return nil
	}

	for _, format := range []string{"csv", "pdf", "png"} {
		format := format
		export.AddCommand(&cobra.Command{
			Use:   format + " <path>",
			Short: "Export as " + strings.ToUpper(format),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, format, args[0])
			},
		})
	}
	export.PersistentFlags().StringVar(&view, "view", "log", "data to export: log|leaderboard")
	return export
}

func newAskCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant about the session data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			answer, err := app.Assistant.Ask(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
}

func newThemeCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "theme <light|dark>",
		Short: "Set and persist the color theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name != config.ThemeLight && name != config.ThemeDark {
				return fmt.Errorf("unknown theme %q, want light or dark", name)
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			cfg := app.Config
			cfg.Theme = name
			if err := cfg.Save(); err != nil {
				return err
			}
			theme.Use(name)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", name)
			return nil
		},
	}
}
