// Package batch runs the incoming-folder flow: every PDF in the incoming
// directory is extracted, classified and parsed, then moved to completed or
// failed. Documents are independent, so a small worker pool fans them out.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/order-ingest/internal/agency"
	"github.com/example/order-ingest/internal/ingest"
	"github.com/example/order-ingest/internal/pdftext"
	"github.com/example/order-ingest/internal/schedule"
)

// Pipeline is the per-document parse path, shared by the batch processor and
// the single-shot CLI commands.
type Pipeline struct {
	Lookups  *schedule.Lookups
	Splitter ingest.SplitterConfig
}

// Parse classifies page text and runs the matching agency parser. Multi-
// estimate documents whose section boundaries could not be recovered come
// back with Degraded set on the affected estimates.
func (p Pipeline) Parse(pages []string) (ingest.OrderType, []schedule.Estimate, error) {
	doc := agency.NewDocument(pages...)
	if ingest.HasEncodingIssues(doc.FullText) {
		return ingest.Unknown, nil, &ingest.UnrecognizedLayoutError{Hint: "text layer unreadable, re-save the PDF"}
	}

	orderType := ingest.Classify(doc.Page(0), doc.Page(1))
	if orderType == ingest.Unknown {
		return orderType, nil, &ingest.UnrecognizedLayoutError{}
	}
	parser, err := agency.ParserFor(orderType, p.Lookups)
	if err != nil {
		return orderType, nil, err
	}

	estimates, err := parser.Parse(doc)
	if err != nil {
		return orderType, nil, err
	}

	if orderType == ingest.TCAA && ingest.CountOrders(doc.FullText) > 1 {
		chunks, err := ingest.Split(doc.FullText, p.Splitter)
		if err == nil {
			degraded := map[string]bool{}
			for _, c := range chunks {
				if c.Degraded {
					degraded[c.Estimate] = true
				}
			}
			for i := range estimates {
				estimates[i].Degraded = degraded[estimates[i].Number]
			}
		}
	}
	return orderType, estimates, nil
}

// Result is the outcome for one document.
type Result struct {
	DocumentID uuid.UUID
	Path       string
	OrderType  ingest.OrderType
	Estimates  int
	Lines      int
	Degraded   bool
	Err        error
}

// Summary aggregates a batch run. Failure counts are split the way operators
// triage them: unrecognized layouts need a new parser, no-schedule documents
// are usually summaries mailed by mistake, degraded parses need review.
type Summary struct {
	RunID        uuid.UUID
	Processed    int
	Succeeded    int
	Failed       int
	Degraded     int
	Unrecognized int
	NoSchedule   int
	Results      []Result
}

type Processor struct {
	Extractor pdftext.Extractor
	Pipeline  Pipeline
	Log       *zap.Logger

	IncomingDir  string
	CompletedDir string
	FailedDir    string
	Workers      int
}

// Run processes every PDF in the incoming directory and moves each to the
// completed or failed directory. The walk order is stable so reruns are
// comparable.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	paths, err := p.incoming()
	if err != nil {
		return Summary{}, err
	}
	for _, dir := range []string{p.CompletedDir, p.FailedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Summary{}, err
		}
	}

	summary := Summary{RunID: uuid.New()}
	log := p.Log.With(zap.String("run_id", summary.RunID.String()))
	log.Info("batch run starting", zap.Int("documents", len(paths)), zap.Int("workers", p.workers()))

	jobs := make(chan string)
	results := make(chan Result)
	var wg sync.WaitGroup
	for w := 0; w < p.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- p.process(log, path)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		summary.add(r)
	}
	sort.Slice(summary.Results, func(i, j int) bool { return summary.Results[i].Path < summary.Results[j].Path })
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	log.Info("batch run finished",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("degraded", summary.Degraded))
	return summary, nil
}

func (p *Processor) process(log *zap.Logger, path string) Result {
	r := Result{DocumentID: uuid.New(), Path: path}
	log = log.With(zap.String("doc_id", r.DocumentID.String()), zap.String("file", filepath.Base(path)))

	pages, err := p.Extractor.Extract(path)
	if err == nil {
		var estimates []schedule.Estimate
		r.OrderType, estimates, err = p.Pipeline.Parse(pages)
		for _, est := range estimates {
			r.Estimates++
			r.Lines += len(est.Lines)
			if est.Degraded {
				r.Degraded = true
			}
		}
	}
	r.Err = err

	dest := p.CompletedDir
	if err != nil {
		dest = p.FailedDir
		log.Warn("document failed", zap.String("agency", r.OrderType.String()), zap.Error(err))
	} else {
		log.Info("document parsed",
			zap.String("agency", r.OrderType.String()),
			zap.Int("estimates", r.Estimates),
			zap.Int("lines", r.Lines),
			zap.Bool("degraded", r.Degraded))
	}
	if moveErr := moveFile(path, filepath.Join(dest, filepath.Base(path))); moveErr != nil {
		log.Error("move failed", zap.Error(moveErr))
		if r.Err == nil {
			r.Err = moveErr
		}
	}
	return r
}

func (p *Processor) incoming() ([]string, error) {
	entries, err := os.ReadDir(p.IncomingDir)
	if err != nil {
		return nil, fmt.Errorf("read incoming dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(p.IncomingDir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (p *Processor) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}

func (s *Summary) add(r Result) {
	s.Processed++
	s.Results = append(s.Results, r)
	switch {
	case r.Err == nil:
		s.Succeeded++
		if r.Degraded {
			s.Degraded++
		}
	default:
		s.Failed++
		var unrec *ingest.UnrecognizedLayoutError
		var nosched *ingest.NoScheduleDataError
		switch {
		case errors.As(r.Err, &unrec):
			s.Unrecognized++
		case errors.As(r.Err, &nosched):
			s.NoSchedule++
		}
	}
}

// moveFile renames, falling back to copy+remove for cross-device moves.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
