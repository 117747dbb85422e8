package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/downloader"
	"github.com/brogergvhs/noveld/internal/packaging"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/providers/vnthuquan"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagRange string
	flagList  string
	flagLimit int

	// runtime
	flagBaseDir     string
	flagOutput      string
	flagDryRun      bool
	flagSkipPackage bool
	flagFormat      string
	flagConverter   string

	// transport
	flagBrowser    bool
	flagCloudflare bool
	flagRetries    int
	flagTimeout    time.Duration

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download [listing-url]",
		Short: "Download a novel and package it as an e-book. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "only visit chapters in this ordinal range (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "only visit these chapter ordinals (e.g. 1,3,5)")
	downloadCmd.Flags().IntVar(&flagLimit, "limit", 0, "fetch at most N new chapters this run (0 = all)")

	// runtime
	downloadCmd.Flags().StringVar(&flagBaseDir, "base-dir", "", "parent folder for the per-title output folder")
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "use this folder instead of <base-dir>/<title>")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show stored and missing chapters, don't download")
	downloadCmd.Flags().BoolVar(&flagSkipPackage, "skip-package", false, "stop after writing the table of contents")
	downloadCmd.Flags().StringVar(&flagFormat, "format", "", "e-book format: mobi, azw3 or epub")
	downloadCmd.Flags().StringVar(&flagConverter, "converter", "", "path to the ebook-convert binary")

	// transport
	downloadCmd.Flags().BoolVar(&flagBrowser, "browser", false, "render pages with headless Chrome")
	downloadCmd.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "use the Cloudflare bypass transport")
	downloadCmd.Flags().IntVar(&flagRetries, "retries", 0, "attempts per page on network errors and 5xx responses")
	downloadCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per-page timeout (e.g. 30s)")

	// headers/auth
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	var url string
	if len(args) == 1 {
		url = args[0]
	}

	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		BaseDir:      flagBaseDir,
		Output:       flagOutput,
		URL:          url,
		Limit:        flagLimit,
		Range:        flagRange,
		List:         flagList,
		Format:       flagFormat,
		Converter:    flagConverter,
		SkipPackage:  flagSkipPackage,
		Browser:      flagBrowser,
		Cloudflare:   flagCloudflare,
		Retries:      flagRetries,
		Timeout:      flagTimeout,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
	})
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := downloader.ValidateSourceURL(cfg.DefaultURL); err != nil {
		return fmt.Errorf("%w (pass it as an argument or set default_url in the config)", err)
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	fmt.Println("Full config:")
	cfg.Print(os.Stdout)
	fmt.Println()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var (
		mu     sync.Mutex
		outDir string
	)
	util.SetupInterruptHandler(cancel, func() string {
		mu.Lock()
		defer mu.Unlock()
		return outDir
	})

	var fetcher providers.Fetcher
	if cfg.Browser {
		bf := providers.NewBrowserFetcher(ctx, cfg.Timeout, util.PickUserAgent(cfg.UserAgent), logSvc)
		defer bf.Close()
		fetcher = bf
	} else {
		client, err := util.NewHTTPClient(util.HTTPClientOptions{
			Timeout:     cfg.Timeout,
			UserAgent:   util.PickUserAgent(cfg.UserAgent),
			Cookie:      cfg.Cookie,
			CookieFile:  cfg.CookieFile,
			Cloudflare:  cfg.Cloudflare,
			DebugLogger: logSvc,
		})
		if err != nil {
			return err
		}
		fetcher = providers.NewHTTPFetcher(client, cfg.Retries, logSvc)
	}

	scr := vnthuquan.NewScraper(fetcher, logSvc)
	pkg := packaging.NewEbookConvert(cfg.Converter, os.Stdout, os.Stderr)

	dl := downloader.New(scr, pkg, logSvc, downloader.Options{
		SourceURL:   cfg.DefaultURL,
		BaseDir:     cfg.BaseDir,
		OutputDir:   cfg.Output,
		Limit:       cfg.Limit,
		Range:       cfg.Range,
		List:        cfg.List,
		Format:      cfg.Format,
		SkipPackage: cfg.SkipPackage,
		DryRun:      flagDryRun,
	}).WithProgress(func(total int) downloader.Progress {
		return ui.NewChapterProgress(os.Stdout, total)
	}).OnOutputDir(func(dir string) {
		mu.Lock()
		outDir = dir
		mu.Unlock()
	})

	start := time.Now()
	res, err := dl.Run(ctx)
	if err != nil {
		return err
	}

	if flagDryRun {
		printDryRun(res)
		return nil
	}

	printSummary(res, time.Since(start))

	if res.PackagingErr != nil {
		return fmt.Errorf("chapters are saved in %s but packaging failed: %w", res.OutputDir, res.PackagingErr)
	}

	return nil
}

func printDryRun(res *downloader.Result) {
	missing := make(map[int]bool, len(res.Missing))
	for _, n := range res.Missing {
		missing[n] = true
	}

	fmt.Printf("Dry-run: %s - %s\n", res.Metadata.Author, res.Metadata.Title)
	fmt.Printf("Folder: %s\n", res.OutputDir)
	fmt.Printf("%d chapters listed, %d missing.\n\n", len(res.Chapters), len(res.Missing))

	for _, ch := range res.Chapters {
		status := "stored"
		if missing[ch.Ordinal] {
			status = "missing"
		}
		fmt.Printf("%4d) %-8s %s\n      %s\n", ch.Ordinal, status, ch.Title, ch.URL)
	}
}

func printSummary(res *downloader.Result, total time.Duration) {
	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Title:    %s - %s\n", res.Metadata.Author, res.Metadata.Title)
	fmt.Printf("Folder:   %s\n", res.OutputDir)
	fmt.Printf("Fetched:  %d\n", len(res.Fetched))
	fmt.Printf("Skipped:  %d\n", len(res.Skipped))
	fmt.Printf("Failed:   %d %v\n", len(res.Failed), res.Failed)
	fmt.Printf("Missing:  %d\n", len(res.Missing))
	fmt.Printf("Data:     %s\n", util.Human(res.Bytes))

	steps := make([]downloader.State, 0, len(res.Timings))
	for st := range res.Timings {
		steps = append(steps, st)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i] < steps[j] })
	for _, st := range steps {
		fmt.Printf("  %-18s %.3fs\n", st.String()+":", res.Timings[st].Seconds())
	}
	fmt.Printf("Time:     %s\n", total.Round(time.Millisecond))

	switch {
	case res.Interrupted:
		fmt.Println("\nInterrupted. Run the same command again to resume.")
	case res.PackagePath != "" && res.PackagingErr == nil:
		fmt.Printf("\nE-book: %s\n", res.PackagePath)
	default:
		fmt.Println("\nAll done.")
	}
}
