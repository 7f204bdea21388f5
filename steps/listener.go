package steps

import (
	"strings"
	"time"

	"github.com/launchdarkly/http-contract-tests/framework"
)

// Attachment is a named piece of text recorded while a step was running, such as the HTTP
// request it sent.
type Attachment struct {
	Name    string
	Content string
}

// StepRecord describes one finished step. It exists only for the duration of the listener
// callback; the recorder does not keep it.
type StepRecord struct {
	Path        []string
	Start       time.Time
	Duration    time.Duration
	Attachments []Attachment
	Err         error
}

func (r StepRecord) Name() string {
	return r.Path[len(r.Path)-1]
}

func (r StepRecord) Failed() bool {
	return r.Err != nil
}

// Listener is the narration boundary of the recorder. Report generators implement it.
type Listener interface {
	StepStarted(path []string)
	StepFinished(record StepRecord)
}

type nullListener struct{}

func (nullListener) StepStarted([]string)    {}
func (nullListener) StepFinished(StepRecord) {}

type multiListener []Listener

func (m multiListener) StepStarted(path []string) {
	for _, l := range m {
		l.StepStarted(path)
	}
}

func (m multiListener) StepFinished(record StepRecord) {
	for _, l := range m {
		l.StepFinished(record)
	}
}

// MultiListener sends every event to each of the listeners in order. Nil entries are ignored.
func MultiListener(listeners ...Listener) Listener {
	var ret multiListener
	for _, l := range listeners {
		if l != nil {
			ret = append(ret, l)
		}
	}
	return ret
}

type loggerListener struct {
	logger framework.Logger
}

// LoggerListener narrates steps to a Logger, indenting nested steps.
func LoggerListener(logger framework.Logger) Listener {
	return loggerListener{logger: logger}
}

func (l loggerListener) StepStarted(path []string) {
	l.logger.Printf("%sSTEP %s", indent(path), path[len(path)-1])
}

func (l loggerListener) StepFinished(record StepRecord) {
	prefix := indent(record.Path)
	for _, a := range record.Attachments {
		l.logger.Printf("%s  [%s]\n%s", prefix, a.Name, a.Content)
	}
	if record.Err != nil {
		l.logger.Printf("%sFAILED %s (%s): %s", prefix, record.Name(), record.Duration, record.Err)
	} else {
		l.logger.Printf("%sdone %s (%s)", prefix, record.Name(), record.Duration)
	}
}

func indent(path []string) string {
	return strings.Repeat("  ", len(path)-1)
}
