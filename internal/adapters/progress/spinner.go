package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/deploykit/internal/usecase"
)

// SpinnerProgressReporter shows the stages of a command on a spinner line
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	Message   string
}

var stageNames = map[string]string{
	"deploy":  "Deploying",
	"recipe":  "Deploying",
	"export":  "Exporting",
	"flatten": "Flattening",
}

// NewSpinnerProgressReporter creates a spinner writing to stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerProgressReporter{spinner: s, out: out}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.enterStage(event.Stage)
	if len(r.stages) > 0 {
		r.stages[len(r.stages)-1].Message = event.Message
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.display(event)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Stop completes the last stage and clears the spinner
func (r *SpinnerProgressReporter) Stop() {
	r.completeCurrentStage()
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.withSpinnerPaused(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.withSpinnerPaused(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

func (r *SpinnerProgressReporter) withSpinnerPaused(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

// enterStage starts stage unless it is already the current one
func (r *SpinnerProgressReporter) enterStage(stage string) {
	if n := len(r.stages); n > 0 && stageNames[r.stages[n-1].Stage] == stageNames[stage] {
		return
	}
	r.completeCurrentStage()
	r.stages = append(r.stages, stageInfo{Stage: stage, StartTime: time.Now()})
}

func (r *SpinnerProgressReporter) completeCurrentStage() {
	if n := len(r.stages); n > 0 && r.stages[n-1].EndTime.IsZero() {
		r.stages[n-1].EndTime = time.Now()
	}
}

// display renders the stage trail, e.g. "✓ Deploying (1.2s) → ● Exporting"
func (r *SpinnerProgressReporter) display(event usecase.ProgressEvent) string {
	parts := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		name, ok := stageNames[stage.Stage]
		if !ok {
			name = stage.Stage
		}
		if stage.EndTime.IsZero() {
			parts = append(parts, fmt.Sprintf("● %s", color.New(color.FgYellow).Sprint(name)))
			continue
		}
		duration := stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond)
		parts = append(parts, fmt.Sprintf("✓ %s (%s)", color.New(color.FgGreen).Sprint(name), duration))
	}

	line := strings.Join(parts, " → ")
	if event.Total > 0 {
		line += fmt.Sprintf(" [%d/%d]", event.Current, event.Total)
	}
	if event.Message != "" {
		line += " " + color.New(color.Faint).Sprint(event.Message)
	}
	return line
}

// NewSink picks the spinner for interactive terminals and a no-op sink
// otherwise.
func NewSink(nonInteractive bool) usecase.ProgressSink {
	if nonInteractive {
		return usecase.NopProgress{}
	}
	return NewSpinnerProgressReporter()
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
