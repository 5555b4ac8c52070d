package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/order-ingest/internal/batch"
	"github.com/example/order-ingest/internal/config"
	"github.com/example/order-ingest/internal/logging"
	"github.com/example/order-ingest/internal/pdftext"
	"github.com/example/order-ingest/internal/schedule"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Process every PDF in the incoming folder and move them to completed/failed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			defer log.Sync()

			p := &batch.Processor{
				Extractor:    pdftext.File{},
				Pipeline:     batch.Pipeline{Lookups: schedule.DefaultLookups(), Splitter: cfg.Splitter},
				Log:          log,
				IncomingDir:  cfg.IncomingDir,
				CompletedDir: cfg.CompletedDir,
				FailedDir:    cfg.FailedDir,
				Workers:      cfg.Workers,
			}
			summary, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			for _, r := range summary.Results {
				if r.Err != nil {
					fmt.Printf("FAIL  %-30s %s\n", filepath.Base(r.Path), r.Err)
					continue
				}
				status := "OK  "
				if r.Degraded {
					status = "DGRD"
				}
				fmt.Printf("%s  %-30s %s  %d estimates, %d lines\n",
					status, filepath.Base(r.Path), r.OrderType, r.Estimates, r.Lines)
			}
			fmt.Printf("\n%d processed: %d ok (%d degraded), %d failed (%d unrecognized, %d no schedule)\n",
				summary.Processed, summary.Succeeded, summary.Degraded,
				summary.Failed, summary.Unrecognized, summary.NoSchedule)
			return nil
		},
	}
}
