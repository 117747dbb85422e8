// Package packaging turns the rendered folder into a single e-book by
// shelling out to calibre's ebook-convert.
package packaging

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

const DefaultBinary = "ebook-convert"

// Request names the TOC document, the package to produce and the
// bibliographic fields stamped into it.
type Request struct {
	TOCPath    string
	OutputPath string
	Author     string
	Title      string
}

type Packager interface {
	Package(ctx context.Context, req Request) error
}

// PackagingError means the converter could not be started or failed.
type PackagingError struct {
	Tool string
	Err  error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("packaging with %s: %v", e.Tool, e.Err)
}

func (e *PackagingError) Unwrap() error {
	return e.Err
}

type EbookConvert struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

func NewEbookConvert(binary string, stdout, stderr io.Writer) *EbookConvert {
	if binary == "" {
		binary = DefaultBinary
	}
	return &EbookConvert{Binary: binary, Stdout: stdout, Stderr: stderr}
}

// Args is the fixed command line for req. No shell is involved, so values
// are passed verbatim.
func (e *EbookConvert) Args(req Request) []string {
	return []string{
		req.TOCPath,
		req.OutputPath,
		"--input-profile=kindle",
		"--output-profile=kindle",
		"--authors=" + req.Author,
		"--title=" + req.Title,
		"--remove-paragraph-spacing",
		"--remove-paragraph-spacing-indent-size",
		"-vvv",
	}
}

func (e *EbookConvert) Package(ctx context.Context, req Request) error {
	bin, err := exec.LookPath(e.Binary)
	if err != nil {
		return &PackagingError{Tool: e.Binary, Err: err}
	}

	cmd := exec.CommandContext(ctx, bin, e.Args(req)...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return &PackagingError{Tool: e.Binary, Err: err}
	}

	return nil
}
