package util

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

// SetupInterruptHandler cancels the run on the first SIGINT/SIGTERM so the
// current chapter can finish. A second signal removes leftover temp files
// from the folder reported by outputDir and exits.
func SetupInterruptHandler(cancel context.CancelFunc, outputDir func() string) {
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nInterrupt received. Finishing the current chapter (press Ctrl+C again to quit now)...")
		cancel()

		<-sig
		if dir := outputDir(); dir != "" {
			CleanupTempFiles(dir)
			RemoveIfEmpty(dir)
		}
		fmt.Println("\nExiting due to interrupt.")

		os.Exit(1)
	}()
}

// CleanupTempFiles removes unfinished atomic-write temp files from dir.
func CleanupTempFiles(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, e := range entries {
		if e.IsDir() || !isTempFile(e.Name()) {
			continue
		}

		full := filepath.Join(dir, e.Name())
		if err := os.Remove(full); err != nil {
			fmt.Printf("Error cleaning up %s: %v\n", full, err)
		} else {
			fmt.Printf("Removed %s\n", full)
		}
	}
}

func RemoveIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			fmt.Printf("Removed empty output folder: %s\n", dir)
		}
	}
}
