//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigrsa/internal/format"
	"github.com/agbru/bigrsa/internal/orchestration"
)

const (
	// TruncationLimit is the digit count above which a value is truncated
	// in standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a truncated
	// value.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar generates a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := range length {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// progressSuffix renders the text shown after the spinner.
func progressSuffix(fraction float64, eta time.Duration, done, total, failed int) string {
	s := fmt.Sprintf(" %s %5.1f%% %d/%d  ETA %s", progressBar(fraction, ProgressBarWidth), fraction*100, done, total, format.FormatETA(eta))
	if failed > 0 {
		s += fmt.Sprintf("  (%d failed)", failed)
	}
	return s
}

// DisplayProgress draws a spinner with a progress bar and ETA until
// progressChan is closed, then prints a final summary line. It returns
// immediately, after draining the channel, when numTasks is not positive.
//
// Parameters:
//   - wg: Marked done when the display finishes.
//   - progressChan: One update per finished task.
//   - numTasks: The number of tasks in the batch.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numTasks int, out io.Writer) {
	defer wg.Done()
	if numTasks <= 0 {
		drainProgress(progressChan)
		return
	}

	state := format.NewProgressWithETA(numTasks)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(0, 0, 0, numTasks, 0))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	done, failed := 0, 0
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fraction, _ := state.Snapshot()
				fmt.Fprintf(out, "%s\n", progressSuffix(fraction, 0, done, numTasks, failed))
				return
			}
			done++
			if update.Failed {
				failed++
			}
			fraction, eta := state.Advance()
			s.UpdateSuffix(progressSuffix(fraction, eta, done, numTasks, failed))
		case <-ticker.C:
			fraction, eta := state.Snapshot()
			s.UpdateSuffix(progressSuffix(fraction, eta, done, numTasks, failed))
		}
	}
}

func drainProgress(progressChan <-chan orchestration.ProgressUpdate) {
	for range progressChan {
	}
}
