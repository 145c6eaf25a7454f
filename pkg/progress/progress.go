package progress

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink receives human-readable progress messages in emission order. Delivery is best-effort: nothing is buffered for absent listeners
type Sink interface {
	Report(message string)
}

// SinkFunc adapts a plain function to a Sink
type SinkFunc func(message string)

func (f SinkFunc) Report(message string) {
	f(message)
}

type nopSink struct{}

func (nopSink) Report(string) {}

// Nop discards every message
var Nop Sink = nopSink{}

// Returns sink, or Nop when sink is nil
func OrNop(sink Sink) Sink {
	if sink == nil {
		return Nop
	}
	return sink
}

// Recorder keeps every reported message in order
type Recorder struct {
	mutex    sync.Mutex
	messages []string
}

func NewRecorder() *Recorder {
	return &Recorder{messages: make([]string, 0)}
}

func (recorder *Recorder) Report(message string) {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	recorder.messages = append(recorder.messages, message)
}

// Returns a copy of the messages recorded so far
func (recorder *Recorder) Messages() []string {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	messages := make([]string, len(recorder.messages))
	copy(messages, recorder.messages)
	return messages
}

func (recorder *Recorder) Reset() {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	recorder.messages = recorder.messages[:0]
}

type logrusSink struct {
	logger logrus.FieldLogger
}

// Forwards every message to logger at info level, tagged with the reporting component
func NewLogrusSink(logger logrus.FieldLogger, component string) Sink {
	return &logrusSink{
		logger: logger.WithField("component", component),
	}
}

func (sink *logrusSink) Report(message string) {
	sink.logger.Info(message)
}

// Sends every message to all sinks
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(message string) {
		for _, sink := range sinks {
			sink.Report(message)
		}
	})
}
