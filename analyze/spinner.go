package analyze

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// spinner renders an indeterminate progress indicator while the one
// in-flight statement runs. It only draws, it never touches the engine.
type spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
}

func newSpinner(description string) *spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
	)
	s := &spinner{
		bar:  bar,
		done: make(chan struct{}),
	}
	go s.tick()
	return s
}

func (s *spinner) tick() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			_ = s.bar.Add(1)
		}
	}
}

func (s *spinner) stop() {
	close(s.done)
	_ = s.bar.Clear()
	fmt.Print("\r\033[K")
}
