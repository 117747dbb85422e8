package downloader

// State is a step of one acquisition run.
type State int

const (
	Initializing State = iota
	ExtractingMeta
	PreparingStorage
	AcquiringChapters
	RenderingToc
	Packaging
	Done
	Failed
)

var stateNames = [...]string{
	Initializing:      "initializing",
	ExtractingMeta:    "extracting-meta",
	PreparingStorage:  "preparing-storage",
	AcquiringChapters: "acquiring-chapters",
	RenderingToc:      "rendering-toc",
	Packaging:         "packaging",
	Done:              "done",
	Failed:            "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
