// Package workflow implements the analytics submit cycle as an explicit state
// machine. It has no rendering or transport dependency: callers execute the
// Request it hands out and report back through Complete.
package workflow

import (
	"errors"

	"github.com/google/uuid"

	"github.com/jask/customerdesk/internal/analytics"
)

// Messages shown inline on the screen.
const (
	MsgNoFile = "Please choose a CSV file first"
	MsgFailed = "Failed to run analytics. See console for details."
)

// ErrBusy is returned by Submit while a request is in flight.
var ErrBusy = errors.New("analytics request already in flight")

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseSuccess:
		return "success"
	}
	return "unknown"
}

// Request is the single upload issued for a submit cycle.
type Request struct {
	ID   string
	File analytics.File
}

// Workflow owns the staged file, the current phase and the displayed result.
type Workflow struct {
	phase    Phase
	message  string
	selected *analytics.File
	result   *analytics.Result
	inFlight string
	newID    func() string
}

func New() *Workflow {
	return &Workflow{newID: uuid.NewString}
}

// SelectFile stages f, replacing any earlier selection. Outside Loading the
// phase returns to Idle; a previously displayed result stays visible until the
// next cycle completes.
func (w *Workflow) SelectFile(f analytics.File) {
	staged := f
	w.selected = &staged
	if w.phase == PhaseLoading {
		return
	}
	w.phase = PhaseIdle
	w.message = ""
}

// Submit starts a cycle. With nothing staged it moves to Error without a
// request; while Loading it refuses with ErrBusy and changes nothing.
func (w *Workflow) Submit() (Request, error) {
	if w.phase == PhaseLoading {
		return Request{}, ErrBusy
	}
	if w.selected == nil {
		w.phase = PhaseError
		w.message = MsgNoFile
		w.result = nil
		return Request{}, analytics.ErrNoFile
	}
	w.phase = PhaseLoading
	w.message = ""
	w.inFlight = w.newID()
	return Request{ID: w.inFlight, File: *w.selected}, nil
}

// Complete finishes the in-flight cycle identified by id. It reports false and
// changes nothing when id is not the in-flight cycle.
func (w *Workflow) Complete(id string, res analytics.Result, err error) bool {
	if w.phase != PhaseLoading || id == "" || id != w.inFlight {
		return false
	}
	w.inFlight = ""
	if err != nil {
		w.phase = PhaseError
		w.message = MsgFailed
		w.result = nil
		return true
	}
	stored := res
	w.phase = PhaseSuccess
	w.message = ""
	w.result = &stored
	return true
}

func (w *Workflow) Phase() Phase { return w.phase }

// Message is the inline error text, empty unless in Error.
func (w *Workflow) Message() string { return w.message }

// Result returns the result to display, which may be stale while Idle or
// Loading.
func (w *Workflow) Result() (analytics.Result, bool) {
	if w.result == nil {
		return analytics.Result{}, false
	}
	return *w.result, true
}

func (w *Workflow) Selected() (analytics.File, bool) {
	if w.selected == nil {
		return analytics.File{}, false
	}
	return *w.selected, true
}

// CanSubmit reports whether the submit trigger should be enabled.
func (w *Workflow) CanSubmit() bool {
	return w.selected != nil && w.phase != PhaseLoading
}

// InFlight returns the id of the running cycle, if any.
func (w *Workflow) InFlight() string { return w.inFlight }
