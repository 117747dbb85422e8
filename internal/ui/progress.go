package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/noveld/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ChapterProgress is a single bar counting visited chapters.
type ChapterProgress struct {
	p     *mpb.Progress
	bar   *mpb.Bar
	bytes atomic.Int64
	start time.Time
	final atomic.Bool
}

func NewChapterProgress(out io.Writer, total int) *ChapterProgress {
	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	cp := &ChapterProgress{p: p, start: time.Now()}
	cp.bar = p.New(
		int64(total),
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name("Chapters  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.Human(cp.bytes.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" | %ds", int(time.Since(cp.start).Seconds()))
			}),
		),
	)

	return cp
}

// Advance marks one chapter as visited, adding n downloaded bytes.
func (cp *ChapterProgress) Advance(n int64) {
	if cp.final.Load() {
		return
	}

	cp.bytes.Add(n)
	cp.bar.Increment()
}

// Close completes the bar at its current count and waits for the render.
func (cp *ChapterProgress) Close() {
	if cp.final.Swap(true) {
		return
	}

	cp.bar.SetTotal(-1, true)
	cp.p.Wait()
}
