package assist

import (
	"errors"
	"time"

	"github.com/csheth/chronicle/internal/editor"
	"github.com/csheth/chronicle/internal/llm"
)

// Capability names one AI operation.
type Capability string

const (
	ContinueWriting Capability = "continue-writing"
	RewriteToLength Capability = "rewrite-to-length"
	ChangeStyle     Capability = "change-style"
	Humanize        Capability = "humanize"
	Translate       Capability = "translate"
	FetchReferences Capability = "fetch-references"
)

// Rejections returned by Start. Each is surfaced once as an info notice.
var (
	ErrBusy              = errors.New("an AI request is already running")
	ErrNoSelection       = errors.New("no text selected")
	ErrNothingToContinue = errors.New("document is empty")
	ErrInvalidRequest    = errors.New("invalid request")
)

// DefaultRewriteWords is the rewrite target used when none is given.
const DefaultRewriteWords = 100

// Request asks the dispatcher to run one capability. Words, Style and
// Language are only read by the capabilities that need them.
type Request struct {
	Capability Capability
	Words      int
	Style      llm.Style
	Language   llm.Language
}

// Result is what a successful job produced: ResultText or ResultReferences.
type Result interface {
	isResult()
}

// ResultText is free text returned by every capability except references.
type ResultText struct {
	Text string
}

// ResultReferences is the output of FetchReferences.
type ResultReferences struct {
	List []string
}

func (ResultText) isResult()       {}
func (ResultReferences) isResult() {}

// Completion reports how a job ended. It is handed back to Complete on the
// event loop.
type Completion struct {
	JobID      string
	Capability Capability
	Result     Result
	Err        error
	Duration   time.Duration

	target editor.Selection
}

// NoticeLevel separates informational notices from errors.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a transient user-visible message.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier receives notices as they are raised.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

const failureMessage = "Could not process request."

func successMessage(c Capability) string {
	switch c {
	case RewriteToLength:
		return "Text rewritten."
	case ChangeStyle:
		return "Style changed."
	case Humanize:
		return "Text humanized."
	case Translate:
		return "Text translated."
	case FetchReferences:
		return "References fetched."
	default:
		return ""
	}
}
