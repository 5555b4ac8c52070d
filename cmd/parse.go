package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/order-ingest/internal/batch"
	"github.com/example/order-ingest/internal/config"
	"github.com/example/order-ingest/internal/pdftext"
	"github.com/example/order-ingest/internal/schedule"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one order PDF and print its normalized schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			var extractor pdftext.File
			pages, err := extractor.Extract(args[0])
			if err != nil {
				return err
			}

			lookups := schedule.DefaultLookups()
			pipeline := batch.Pipeline{Lookups: lookups, Splitter: cfg.Splitter}
			orderType, estimates, err := pipeline.Parse(pages)
			if err != nil {
				return err
			}

			fmt.Printf("agency: %s\n", orderType)
			for _, est := range estimates {
				fmt.Printf("\nestimate %s  client=%q product=%q station=%s flight=%s..%s",
					est.Number, est.Client, est.Product, est.Station,
					est.FlightStart.Format("2006-01-02"), est.FlightEnd.Format("2006-01-02"))
				if est.Degraded {
					fmt.Print("  DEGRADED")
				}
				fmt.Println()
				sep := lookups.SeparationFor(est.Agency)
				for _, line := range est.Lines {
					printLine(line, est.FlightEnd, sep)
				}
			}
			return nil
		},
	}
}

func printLine(line schedule.ScheduleLine, flightEnd time.Time, sep schedule.Separation) {
	fmt.Printf("  %-8s %s  %q lang=%s dur=:%d rate=%s gross=%s",
		schedule.FormatDays(line.Days), line.Time, line.Program, line.Language,
		line.DurationSec, line.Rate.StringFixed(2), line.GrossRate.StringFixed(2))
	if line.ROS {
		fmt.Print(" ROS")
	}
	if line.Bonus() {
		fmt.Print(" bonus")
	}
	peak := 0
	for _, n := range line.WeeklySpots {
		if n > peak {
			peak = n
		}
	}
	if !schedule.FitsSeparation(sep, line.Days, line.Time, peak) {
		fmt.Print(" OVERBOOKED")
	}
	fmt.Println()

	ranges, err := schedule.Reduce(line.WeeklySpots, line.WeekDates, flightEnd)
	if err != nil {
		fmt.Printf("    ranges: %v\n", err)
		return
	}
	for _, r := range ranges {
		fmt.Printf("    %s..%s  %d/wk x %d wks = %d spots\n",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"),
			r.SpotsPerWeek, r.Weeks, r.TotalSpots())
	}
}
