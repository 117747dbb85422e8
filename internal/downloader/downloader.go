package downloader

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/packaging"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/store"
	"github.com/brogergvhs/noveld/internal/toc"
	"github.com/brogergvhs/noveld/internal/ui"
)

// Options describes one run.
type Options struct {
	SourceURL string
	BaseDir   string // parent of the title-derived output folder
	OutputDir string // overrides the title-derived folder when set

	Limit int // stop after this many newly acquired chapters; 0 means all
	Range string
	List  string

	Format      string
	SkipPackage bool
	DryRun      bool
}

// Progress receives one Advance per visited chapter.
type Progress interface {
	Advance(bytes int64)
	Close()
}

type Downloader struct {
	scraper  providers.Scraper
	packager packaging.Packager
	log      *ui.Logger
	opts     Options

	newProgress func(total int) Progress
	onOutputDir func(dir string)
}

func New(scr providers.Scraper, pkg packaging.Packager, log *ui.Logger, opts Options) *Downloader {
	if opts.Format == "" {
		opts.Format = "mobi"
	}
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}

	return &Downloader{
		scraper:  scr,
		packager: pkg,
		log:      log,
		opts:     opts,
	}
}

// WithProgress sets the factory for the chapter progress display.
func (d *Downloader) WithProgress(f func(total int) Progress) *Downloader {
	d.newProgress = f
	return d
}

// OnOutputDir registers a callback fired once the output folder is known.
func (d *Downloader) OnOutputDir(f func(dir string)) *Downloader {
	d.onOutputDir = f
	return d
}

// Result summarises a run, including partial runs that ended in Failed.
type Result struct {
	State     State
	Metadata  providers.Metadata
	OutputDir string
	Chapters  []chapters.Chapter

	Fetched []int
	Skipped []int
	Failed  []int
	Missing []int // after the run, for every listed chapter
	Bytes   int64

	TOCPath      string
	PackagePath  string
	PackagingErr error
	Interrupted  bool

	Timings map[State]time.Duration
}

// ValidateSourceURL rejects anything but an absolute http(s) URL.
func ValidateSourceURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: missing listing URL", providers.ErrInvalidInput)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an http(s) URL", providers.ErrInvalidInput, raw)
	}

	return nil
}

// Run walks the acquisition states. Listing-level and storage failures end
// in Failed and are returned; chapter failures are recorded and skipped.
func (d *Downloader) Run(ctx context.Context) (*Result, error) {
	res := &Result{State: Initializing, Timings: map[State]time.Duration{}}

	fail := func(err error) (*Result, error) {
		d.log.Debugf("%s -> %s: %v\n", res.State, Failed, err)
		res.State = Failed
		return res, err
	}

	if err := ValidateSourceURL(d.opts.SourceURL); err != nil {
		return fail(err)
	}

	// ExtractingMeta
	d.enter(res, ExtractingMeta)
	start := time.Now()
	d.log.Infof("Downloading %s...\n", d.opts.SourceURL)

	listing, err := d.scraper.GetListing(ctx, d.opts.SourceURL)
	if err != nil {
		return fail(fmt.Errorf("listing %s: %w", d.opts.SourceURL, err))
	}

	res.Metadata = listing.Metadata
	res.Chapters = chapters.FromListing(listing.Chapters)
	res.OutputDir = d.outputDir(listing.Metadata)
	res.Timings[ExtractingMeta] = time.Since(start)

	d.log.Infof("Downloaded info for %s - %s: %.3fs\n",
		res.Metadata.Author, res.Metadata.Title, res.Timings[ExtractingMeta].Seconds())
	d.log.Infof("Found %d chapters\n", len(res.Chapters))

	selected, err := chapters.Filter(res.Chapters, d.opts.Range, d.opts.List)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", providers.ErrInvalidInput, err))
	}

	st := store.New(res.OutputDir)
	if d.onOutputDir != nil {
		d.onOutputDir(res.OutputDir)
	}

	if d.opts.DryRun {
		res.Missing = st.Missing(res.Chapters)
		res.State = Done
		return res, nil
	}

	// PreparingStorage
	d.enter(res, PreparingStorage)
	if err := st.Prepare(); err != nil {
		return fail(err)
	}

	// AcquiringChapters
	d.enter(res, AcquiringChapters)
	start = time.Now()
	if err := d.acquire(ctx, st, selected, res); err != nil {
		res.Timings[AcquiringChapters] = time.Since(start)
		return fail(err)
	}
	res.Timings[AcquiringChapters] = time.Since(start)
	res.Interrupted = ctx.Err() != nil

	// RenderingToc
	d.enter(res, RenderingToc)
	index, err := toc.Render(res.Metadata, res.Chapters)
	if err != nil {
		return fail(err)
	}
	if err := st.WriteIndex(index); err != nil {
		return fail(err)
	}
	res.TOCPath = st.IndexPath()
	res.Missing = st.Missing(res.Chapters)
	d.log.Infof("TOC file generated: %s\n", res.TOCPath)

	// Packaging
	d.enter(res, Packaging)
	switch {
	case res.Interrupted:
		d.log.Warnf("Packaging skipped: run was interrupted\n")
	case d.opts.SkipPackage || d.packager == nil:
		d.log.Infof("Packaging skipped\n")
	default:
		res.PackagePath = filepath.Join(res.OutputDir, store.FolderName(res.Metadata.Title)+"."+d.opts.Format)
		if len(res.Missing) > 0 {
			d.log.Warnf("%d chapters are still missing; their TOC links will be broken\n", len(res.Missing))
		}

		d.log.Infof("Converting to .%s...\n", d.opts.Format)
		start = time.Now()
		err := d.packager.Package(ctx, packaging.Request{
			TOCPath:    res.TOCPath,
			OutputPath: res.PackagePath,
			Author:     res.Metadata.Author,
			Title:      res.Metadata.Title,
		})
		res.Timings[Packaging] = time.Since(start)

		if err != nil {
			res.PackagingErr = err
			d.log.Errorf("Packaging failed: %v\n", err)
		} else {
			d.log.Infof("Done generating %s: %.3fs\n", res.PackagePath, res.Timings[Packaging].Seconds())
		}
	}

	d.enter(res, Done)
	return res, nil
}

// acquire visits selected in ascending ordinal order. Only storage failures
// and cancellation stop it early.
func (d *Downloader) acquire(ctx context.Context, st *store.Store, selected []chapters.Chapter, res *Result) error {
	var progress Progress
	if d.newProgress != nil {
		progress = d.newProgress(len(selected))
		defer progress.Close()
	}
	advance := func(n int64) {
		if progress != nil {
			progress.Advance(n)
		}
	}

	acquired := 0
	for _, ch := range selected {
		if err := ctx.Err(); err != nil {
			d.log.Warnf("Stopped before chapter %d: %v\n", ch.Ordinal, err)
			return nil
		}

		if st.Exists(ch.Ordinal) {
			d.log.Debugf("Chapter %d downloaded. Skipping.\n", ch.Ordinal)
			res.Skipped = append(res.Skipped, ch.Ordinal)
			advance(0)
			continue
		}

		if d.opts.Limit > 0 && acquired >= d.opts.Limit {
			d.log.Infof("Reached limit of %d chapters for this run\n", d.opts.Limit)
			return nil
		}

		start := time.Now()
		body, err := d.scraper.GetChapterBody(ctx, ch.URL)
		if err != nil {
			if ctx.Err() != nil {
				d.log.Warnf("Stopped during chapter %d\n", ch.Ordinal)
				return nil
			}

			d.log.Errorf("Chapter %d (%s) failed: %v\n", ch.Ordinal, ch.Title, err)
			res.Failed = append(res.Failed, ch.Ordinal)
			advance(0)
			continue
		}

		n, err := st.Write(ch, body)
		if err != nil {
			res.Failed = append(res.Failed, ch.Ordinal)
			return err
		}

		acquired++
		res.Fetched = append(res.Fetched, ch.Ordinal)
		res.Bytes += n
		d.log.Debugf("Download Chapter %d: %.3f seconds -> %s\n", ch.Ordinal, time.Since(start).Seconds(), st.Path(ch.Ordinal))
		advance(n)
	}

	return nil
}

func (d *Downloader) enter(res *Result, next State) {
	d.log.Debugf("%s -> %s\n", res.State, next)
	res.State = next
}

func (d *Downloader) outputDir(meta providers.Metadata) string {
	if d.opts.OutputDir != "" {
		return d.opts.OutputDir
	}
	return filepath.Join(d.opts.BaseDir, store.FolderName(meta.Title))
}
