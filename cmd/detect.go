package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/order-ingest/internal/agency"
	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/pdftext"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file|dir>",
		Short: "Classify order PDFs and print agency type and advertiser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := pdfPaths(args[0])
			if err != nil {
				return err
			}
			var extractor pdftext.File
			for _, path := range paths {
				pages, err := extractor.Extract(path)
				if err != nil {
					fmt.Printf("%s\terror\t%v\n", filepath.Base(path), err)
					continue
				}
				doc := agency.NewDocument(pages...)
				if ingest.HasEncodingIssues(doc.FullText) {
					fmt.Printf("%s\tunknown\ttext layer unreadable\n", filepath.Base(path))
					continue
				}
				orderType := ingest.Classify(doc.Page(0), doc.Page(1))
				client := ingest.ExtractClientName(doc.Page(0), doc.Page(1), orderType)
				billing := "direct"
				if ingest.BilledViaAgency(client) {
					billing = "agency"
				}
				fmt.Printf("%s\t%s\t%s\t%s\n", filepath.Base(path), orderType, client, billing)
			}
			return nil
		},
	}
}

// pdfPaths resolves a file or directory argument to the PDFs in it.
func pdfPaths(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{arg}, nil
	}
	entries, err := os.ReadDir(arg)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(arg, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDFs in %s", arg)
	}
	return paths, nil
}
