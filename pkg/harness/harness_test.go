package harness

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/robostack/rigcheck/pkg/check"
)

// fakeCheck records its execution into a shared ordered log.
type fakeCheck struct {
	name   string
	status check.Status
	log    *[]string
	hook   func() // runs inside Run, before returning
}

func (f *fakeCheck) Run(ctx context.Context) check.Result {
	if f.log != nil {
		*f.log = append(*f.log, "run "+f.name)
	}
	if f.hook != nil {
		f.hook()
	}
	return check.Result{Name: f.name, Status: f.status}
}

// fakeManager records service-control calls into the same ordered log.
type fakeManager struct {
	log         *[]string
	stopErr     error
	restartErr  error
	active      map[string]bool
	isActiveErr error
}

func (f *fakeManager) IsActive(ctx context.Context, unit string) (bool, error) {
	if f.log != nil {
		*f.log = append(*f.log, "is-active "+unit)
	}
	return f.active[unit], f.isActiveErr
}

func (f *fakeManager) Stop(ctx context.Context, unit string) error {
	if f.log != nil {
		*f.log = append(*f.log, "stop "+unit)
	}
	return f.stopErr
}

func (f *fakeManager) Start(ctx context.Context, unit string) error {
	if f.log != nil {
		*f.log = append(*f.log, "start "+unit)
	}
	return nil
}

func (f *fakeManager) Restart(ctx context.Context, unit string) error {
	if f.log != nil {
		*f.log = append(*f.log, "restart "+unit)
	}
	return f.restartErr
}

func newHarness(steps []Step, services []string, mgr *fakeManager, buf *bytes.Buffer) *Harness {
	return &Harness{
		Steps:    steps,
		Services: services,
		Manager:  mgr,
		Out:      buf,
		Settle:   time.Millisecond,
	}
}

func TestRun_AllPass(t *testing.T) {
	var buf bytes.Buffer
	h := newHarness([]Step{
		{Name: "camera: ego", Check: &fakeCheck{name: "camera: ego", status: check.StatusOK}},
		{Name: "hand: left", Check: &fakeCheck{name: "hand: left", status: check.StatusOK}},
	}, nil, &fakeManager{}, &buf)

	tally, verdict := h.Run(context.Background())

	if tally.Passed != 2 || tally.Failed != 0 {
		t.Errorf("tally = %+v, want 2 passed, 0 failed", tally)
	}
	if verdict != AllPassed {
		t.Errorf("verdict = %v, want AllPassed", verdict)
	}
	if verdict.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", verdict.ExitCode())
	}
	if !strings.Contains(buf.String(), "2 passed, 0 failed") {
		t.Errorf("output = %q, want summary line", buf.String())
	}
}

func TestRun_FailureDoesNotAbort(t *testing.T) {
	var log []string
	var buf bytes.Buffer
	h := newHarness([]Step{
		{Name: "camera: ego", Check: &fakeCheck{name: "camera: ego", status: check.StatusFail, log: &log}},
		{Name: "hand: left", Check: &fakeCheck{name: "hand: left", status: check.StatusOK, log: &log}},
	}, nil, &fakeManager{}, &buf)

	tally, verdict := h.Run(context.Background())

	if tally.Passed != 1 || tally.Failed != 1 {
		t.Errorf("tally = %+v, want 1 passed, 1 failed", tally)
	}
	if verdict != SomeFailed || verdict.ExitCode() != 1 {
		t.Errorf("verdict = %v (exit %d), want SomeFailed (exit 1)", verdict, verdict.ExitCode())
	}
	if len(log) != 2 {
		t.Errorf("executed checks = %v, want both despite first failure", log)
	}

	out := buf.String()
	failIdx := strings.Index(out, "[FAIL] camera: ego")
	okIdx := strings.Index(out, "[OK] hand: left")
	if failIdx == -1 || okIdx == -1 || failIdx > okIdx {
		t.Errorf("output = %q, want per-check lines in step order", out)
	}
	if !strings.Contains(out, "1 passed, 1 failed") {
		t.Errorf("output = %q, want summary line", out)
	}
}

func TestRun_TallyInvariant(t *testing.T) {
	var buf bytes.Buffer
	steps := []Step{
		{Name: "a", Check: &fakeCheck{name: "a", status: check.StatusOK}},
		{Name: "b", Check: &fakeCheck{name: "b", status: check.StatusFail}},
		{Name: "c", Check: &fakeCheck{name: "c", status: check.StatusOK}},
	}
	h := newHarness(steps, []string{"camera-server.service"}, &fakeManager{}, &buf)

	tally, _ := h.Run(context.Background())

	if tally.Total() != len(steps) {
		t.Errorf("Total() = %d, want %d (service queries excluded)", tally.Total(), len(steps))
	}
}

func TestRun_ExclusiveServiceOrdering(t *testing.T) {
	var log []string
	var buf bytes.Buffer
	mgr := &fakeManager{log: &log}
	h := newHarness([]Step{
		{
			Name:             "camera: ego",
			Check:            &fakeCheck{name: "camera: ego", status: check.StatusOK, log: &log},
			ExclusiveService: "camera-server.service",
		},
	}, nil, mgr, &buf)

	h.Run(context.Background())

	want := []string{"stop camera-server.service", "run camera: ego", "restart camera-server.service"}
	if len(log) != len(want) {
		t.Fatalf("call log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("call log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestRun_RestartHappensAfterFailedCheck(t *testing.T) {
	var log []string
	var buf bytes.Buffer
	mgr := &fakeManager{log: &log}
	h := newHarness([]Step{
		{
			Name:             "camera: ego",
			Check:            &fakeCheck{name: "camera: ego", status: check.StatusFail, log: &log},
			ExclusiveService: "camera-server.service",
		},
	}, nil, mgr, &buf)

	h.Run(context.Background())

	if len(log) == 0 || log[len(log)-1] != "restart camera-server.service" {
		t.Errorf("call log = %v, want restart after the failed check", log)
	}
}

func TestRun_ServiceControlFailuresAreSwallowed(t *testing.T) {
	var buf bytes.Buffer
	mgr := &fakeManager{
		stopErr:    errors.New("stop failed"),
		restartErr: errors.New("restart failed"),
	}
	h := newHarness([]Step{
		{
			Name:             "camera: ego",
			Check:            &fakeCheck{name: "camera: ego", status: check.StatusOK},
			ExclusiveService: "camera-server.service",
		},
	}, nil, mgr, &buf)

	tally, verdict := h.Run(context.Background())

	if tally.Passed != 1 || tally.Failed != 0 {
		t.Errorf("tally = %+v, want check unaffected by service control failures", tally)
	}
	if verdict != AllPassed {
		t.Errorf("verdict = %v, want AllPassed", verdict)
	}
}

func TestRun_ServiceStatusInformational(t *testing.T) {
	var buf bytes.Buffer
	mgr := &fakeManager{
		active: map[string]bool{
			"camera-server.service": true,
			"hand-control.service":  false,
		},
	}
	h := newHarness([]Step{
		{Name: "camera: ego", Check: &fakeCheck{name: "camera: ego", status: check.StatusOK}},
	}, []string{"camera-server.service", "hand-control.service"}, mgr, &buf)

	tally, verdict := h.Run(context.Background())

	out := buf.String()
	if !strings.Contains(out, "service camera-server.service: active") {
		t.Errorf("output = %q, want active service line", out)
	}
	if !strings.Contains(out, "service hand-control.service: inactive") {
		t.Errorf("output = %q, want inactive service line", out)
	}
	// An inactive service never counts as a failure.
	if tally.Total() != 1 || verdict != AllPassed {
		t.Errorf("tally = %+v, verdict = %v; service status must not affect counts", tally, verdict)
	}
}

func TestRun_InterruptedBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newHarness([]Step{
		{Name: "camera: ego", Check: &fakeCheck{name: "camera: ego", status: check.StatusOK}},
		{Name: "hand: left", Check: &fakeCheck{name: "hand: left", status: check.StatusOK}},
	}, nil, &fakeManager{}, &buf)

	tally, verdict := h.Run(ctx)

	if tally.Total() != 0 {
		t.Errorf("tally = %+v, want nothing counted", tally)
	}
	if verdict != Interrupted || verdict.ExitCode() != 2 {
		t.Errorf("verdict = %v (exit %d), want Interrupted (exit 2)", verdict, verdict.ExitCode())
	}
	if strings.Count(buf.String(), "[SKIP]") != 2 {
		t.Errorf("output = %q, want both steps skipped", buf.String())
	}
}

func TestRun_InterruptedMidRun(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newHarness([]Step{
		{Name: "a", Check: &fakeCheck{name: "a", status: check.StatusOK}},
		{Name: "b", Check: &fakeCheck{name: "b", status: check.StatusOK, hook: cancel}},
		{Name: "c", Check: &fakeCheck{name: "c", status: check.StatusOK}},
	}, nil, &fakeManager{}, &buf)

	tally, verdict := h.Run(ctx)

	if tally.Passed != 1 || tally.Failed != 0 {
		t.Errorf("tally = %+v, want only the completed check counted", tally)
	}
	if verdict != Interrupted {
		t.Errorf("verdict = %v, want Interrupted", verdict)
	}

	out := buf.String()
	if !strings.Contains(out, "[OK] a") {
		t.Errorf("output = %q, want completed check reported", out)
	}
	if strings.Count(out, "[SKIP]") != 2 {
		t.Errorf("output = %q, want in-flight and remaining checks skipped", out)
	}
	if !strings.Contains(out, "1 passed, 0 failed") {
		t.Errorf("output = %q, want accumulated counts in summary", out)
	}
}

func TestRun_InterruptRestoresStoppedService(t *testing.T) {
	var log []string
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := &fakeManager{log: &log}
	h := newHarness([]Step{
		{
			Name:             "camera: ego",
			Check:            &fakeCheck{name: "camera: ego", status: check.StatusOK, log: &log, hook: cancel},
			ExclusiveService: "camera-server.service",
		},
	}, nil, mgr, &buf)

	_, verdict := h.Run(ctx)

	if verdict != Interrupted {
		t.Errorf("verdict = %v, want Interrupted", verdict)
	}
	found := false
	for _, call := range log {
		if call == "restart camera-server.service" {
			found = true
		}
	}
	if !found {
		t.Errorf("call log = %v, want restart despite interruption", log)
	}
}

func TestRun_ProgressStreamed(t *testing.T) {
	var buf bytes.Buffer
	h := newHarness([]Step{
		{Name: "camera: ego", Check: &fakeCheck{name: "camera: ego", status: check.StatusOK}},
	}, nil, &fakeManager{}, &buf)

	h.Run(context.Background())

	out := buf.String()
	startIdx := strings.Index(out, "---> camera: ego")
	okIdx := strings.Index(out, "[OK] camera: ego")
	if startIdx == -1 || okIdx == -1 || startIdx > okIdx {
		t.Errorf("output = %q, want start line before result line", out)
	}
}
