package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cardioconsult/config"
	"cardioconsult/services/booking"
	"cardioconsult/services/calendar"
	"cardioconsult/utils"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cardioconsult",
		Short: "Cardiology consultation scheduling service",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
			utils.InitializeLogger()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(slotsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the notification worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print a day's free consultation slots for a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctor, _ := cmd.Flags().GetString("doctor")
			day, _ := cmd.Flags().GetString("date")
			if doctor == "" {
				doctor = config.AppConfig.DoctorEmail
			}
			if doctor == "" {
				return fmt.Errorf("--doctor is required when DOCTOR_EMAIL is not set")
			}

			loc := config.AppConfig.Location()
			date := time.Now().In(loc)
			if day != "" {
				parsed, err := time.ParseInLocation("2006-01-02", day, loc)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", day, err)
				}
				date = parsed
			}

			ctx := cmd.Context()
			cal, err := newCalendar(ctx)
			if err != nil {
				return err
			}
			engine, err := newEngine(cal)
			if err != nil {
				return err
			}

			slots, err := engine.FindOrganizerSlots(ctx, date, doctor)
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No free slots for %s on %s\n", doctor, date.Format("2006-01-02"))
				return nil
			}
			for _, s := range slots {
				fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", s.Start.Format("15:04"), s.End().Format("15:04"))
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "day to list (YYYY-MM-DD, default today)")
	cmd.Flags().String("doctor", "", "doctor calendar email (default DOCTOR_EMAIL)")
	return cmd
}

func newCalendar(ctx context.Context) (*calendar.GoogleCalendar, error) {
	svc, err := calendar.NewGoogleService(ctx, config.AppConfig.GoogleCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("google calendar: %w", err)
	}
	return calendar.NewGoogleCalendar(svc, config.AppConfig.GoogleCalendarID), nil
}

// newEngine builds the availability engine from configuration.
func newEngine(cal calendar.Collaborator) (*booking.Engine, error) {
	cfg := config.AppConfig
	hours, err := booking.ParseWorkingHours(cfg.WorkdayStart, cfg.WorkdayEnd, cfg.Location())
	if err != nil {
		return nil, err
	}
	return booking.NewEngine(cal, hours,
		booking.WithSlotDuration(cfg.SlotDuration()),
		booking.WithLookahead(booking.Lookahead{Offset: cfg.LookaheadOffset, Span: cfg.LookaheadSpan}),
		booking.WithTimeout(cfg.CalendarTimeout),
		booking.WithLogger(utils.GetLogger().Named("availability")),
	), nil
}

func newScheduler(cal calendar.Collaborator) *booking.Scheduler {
	return booking.NewScheduler(cal, config.AppConfig.Location(),
		booking.WithSchedulerTimeout(config.AppConfig.CalendarTimeout),
		booking.WithSchedulerLogger(utils.GetLogger().Named("scheduler")),
	)
}
