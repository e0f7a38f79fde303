package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/orthogram/orthogram/pkg/observability"
)

// stageMsg reports that the pipeline has entered a new named stage.
type stageMsg string

// tickMsg advances the spinner animation.
type tickMsg time.Time

// doneMsg carries the outcome of the work the progress model is
// tracking.
type doneMsg struct{ err error }

var progressFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// progressModel is a bubbletea program that animates a spinner next to
// the currently running pipeline stage, fed by stage-change events
// from pkg/observability's hooks.
type progressModel struct {
	stage   string
	frame   int
	done    bool
	err     error
	updates <-chan string
	result  <-chan error
}

func newProgressModel(updates <-chan string, result <-chan error) progressModel {
	return progressModel{stage: "starting", updates: updates, result: result}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(waitForStage(m.updates), waitForResult(m.result), tickProgress())
}

func waitForStage(c <-chan string) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-c
		if !ok {
			return nil
		}
		return stageMsg(s)
	}
}

func waitForResult(c <-chan error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: <-c}
	}
}

func tickProgress() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stageMsg:
		m.stage = string(msg)
		return m, waitForStage(m.updates)
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(progressFrames)
		return m, tickProgress()
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", styleIconSpinner.Render(progressFrames[m.frame]), StyleDim.Render(m.stage))
}

// stageProgressHooks forwards pipeline stage-start events to a
// bubbletea progress model over a channel. It implements
// observability.StageHooks; completion events are ignored since the
// next stage's start (or the final doneMsg) already advances the
// display.
type stageProgressHooks struct {
	updates chan<- string
}

func (h stageProgressHooks) send(stage string) {
	select {
	case h.updates <- stage:
	default:
	}
}

func (h stageProgressHooks) OnGridBuildStart(context.Context, int, int)  { h.send("building grid") }
func (h stageProgressHooks) OnRefineStart(context.Context, int)          { h.send("refining lattice") }
func (h stageProgressHooks) OnRouteStart(context.Context, int, string, string) {
	h.send("routing connections")
}
func (h stageProgressHooks) OnOptimizeStart(context.Context, int) { h.send("optimizing segments") }
func (h stageProgressHooks) OnSizeStart(context.Context, int)     { h.send("sizing diagram") }
func (h stageProgressHooks) OnRenderStart(context.Context, string) { h.send("rendering artifact") }

func (h stageProgressHooks) OnGridBuildComplete(context.Context, int, time.Duration, error)      {}
func (h stageProgressHooks) OnRefineComplete(context.Context, int, int, time.Duration, error)     {}
func (h stageProgressHooks) OnRouteComplete(context.Context, int, int, time.Duration, error)      {}
func (h stageProgressHooks) OnOptimizeComplete(context.Context, int, time.Duration, error)        {}
func (h stageProgressHooks) OnSizeComplete(context.Context, bool, time.Duration, error)            {}
func (h stageProgressHooks) OnRenderComplete(context.Context, string, time.Duration, error)        {}

// withProgress runs fn, showing an interactive bubbletea spinner while
// stderr is a terminal and installing stageProgressHooks to relabel it
// on each stage-start event (pkg/diagram's Build emits none, so the
// label does not change during a Build); on a
// non-interactive stderr (piped output, CI) it runs fn directly and
// lets the logger's own Info lines report progress instead.
func withProgress(fn func() error) error {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}

	updates := make(chan string, 8)
	result := make(chan error, 1)

	observability.SetStageHooks(stageProgressHooks{updates: updates})
	defer observability.SetStageHooks(observability.NoopStageHooks{})

	go func() {
		result <- fn()
		close(updates)
	}()

	p := tea.NewProgram(newProgressModel(updates, result), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	return finalModel.(progressModel).err
}
