package tasklist

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/tasklist/internal/task"
)

// tasksFetchedMsg carries one settled fetch back into the event loop.
type tasksFetchedMsg struct {
	mountID string
	seq     int
	result  task.Result
}

// ViewModel owns the list screen state: the current collection and whether a
// fetch is in flight. It lives exactly as long as the screen is mounted.
//
// Overlapping refreshes are neither merged nor cancelled. Results are applied
// in arrival order, so the response that lands last wins, and every arrival
// clears the loading flag.
type ViewModel struct {
	ctx     context.Context
	src     task.Source
	timeout time.Duration
	log     logrus.FieldLogger

	mountID string
	tasks   []task.Task
	loading bool
	seq     int
}

func NewViewModel(ctx context.Context, src task.Source, timeout time.Duration, log logrus.FieldLogger) *ViewModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &ViewModel{ctx: ctx, src: src, timeout: timeout, log: log}
}

// Mount starts a fresh, empty collection under a new mount ID.
func (vm *ViewModel) Mount() {
	vm.mountID = uuid.NewString()
	vm.tasks = []task.Task{}
	vm.loading = false
	vm.log = vm.log.WithField("mount", vm.mountID)
}

// Unmount drops the collection. Fetches still in flight are discarded when
// they land.
func (vm *ViewModel) Unmount() {
	vm.mountID = ""
	vm.tasks = nil
	vm.loading = false
}

func (vm *ViewModel) Mounted() bool { return vm.mountID != "" }

// Refresh marks the view-model as loading and returns the command that
// performs exactly one ListTasks call.
func (vm *ViewModel) Refresh() tea.Cmd {
	vm.loading = true
	vm.seq++
	msg := tasksFetchedMsg{mountID: vm.mountID, seq: vm.seq}
	ctx, src, timeout := vm.ctx, vm.src, vm.timeout
	vm.log.WithField("seq", msg.seq).Debug("task refresh started")
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		msg.result = task.Fetch(ctx, src)
		return msg
	}
}

// Apply settles a fetch. It reports false when the message belongs to
// another mount and was dropped.
func (vm *ViewModel) Apply(msg tasksFetchedMsg) bool {
	if msg.mountID == "" || msg.mountID != vm.mountID {
		vm.log.WithFields(logrus.Fields{"seq": msg.seq, "stale_mount": msg.mountID}).Debug("dropping task result for another mount")
		return false
	}
	defer func() { vm.loading = false }()

	if !msg.result.OK() {
		vm.log.WithFields(logrus.Fields{
			"event": "refresh_failed",
			"seq":   msg.seq,
			"error": msg.result.Err,
			"kept":  len(vm.tasks),
		}).Error("task refresh failed")
		return true
	}
	vm.tasks = msg.result.Tasks
	vm.log.WithFields(logrus.Fields{"seq": msg.seq, "tasks": len(vm.tasks)}).Debug("task refresh applied")
	return true
}

func (vm *ViewModel) Tasks() []task.Task { return vm.tasks }

func (vm *ViewModel) Loading() bool { return vm.loading }

// Requests is how many fetches this view-model has started.
func (vm *ViewModel) Requests() int { return vm.seq }
