package adb_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adityaksh/sakha/internal/automation"
	"github.com/adityaksh/sakha/internal/automation/adb"
)

// fakeRunner records invocations and plays back canned output per command
// prefix.
type fakeRunner struct {
	calls  []string
	output map[string]string
	err    error
}

func (f *fakeRunner) run(_ context.Context, args ...string) ([]byte, error) {
	call := strings.Join(args, " ")
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}
	for prefix, out := range f.output {
		if strings.HasPrefix(call, prefix) {
			return []byte(out), nil
		}
	}
	return nil, nil
}

func newCapability(f *fakeRunner, opts ...adb.Option) *adb.Capability {
	return adb.New(append([]adb.Option{adb.WithRunner(f.run)}, opts...)...)
}

func TestDial_BuildsDialIntent(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{}
	c := newCapability(f)

	if err := c.Dial(context.Background(), "+919876543210"); err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	want := "shell am start -a android.intent.action.DIAL -d tel:+919876543210"
	if len(f.calls) != 1 || f.calls[0] != want {
		t.Errorf("calls = %v, want [%s]", f.calls, want)
	}
}

func TestSerial_IsPassedToEveryInvocation(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{}
	c := newCapability(f, adb.WithSerial("emulator-5554"))

	if err := c.PressBack(context.Background()); err != nil {
		t.Fatalf("PressBack() error = %v", err)
	}
	if !strings.HasPrefix(f.calls[0], "-s emulator-5554 shell ") {
		t.Errorf("call = %q, want the -s serial prefix", f.calls[0])
	}
}

func TestOpenApp_MissingPackageIsUnavailable(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{output: map[string]string{
		"shell monkey": "** No activities found to run, monkey aborted.",
	}}
	c := newCapability(f)

	err := c.OpenApp(context.Background(), "com.missing.app")
	if !errors.Is(err, automation.ErrUnavailable) {
		t.Errorf("OpenApp() error = %v, want ErrUnavailable", err)
	}
}

func TestSetAlarm_SkipsUI(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{}
	c := newCapability(f)

	if err := c.SetAlarm(context.Background(), 19, 0); err != nil {
		t.Fatalf("SetAlarm() error = %v", err)
	}
	call := f.calls[0]
	for _, part := range []string{
		"android.intent.action.SET_ALARM",
		"android.intent.extra.alarm.HOUR 19",
		"android.intent.extra.alarm.MINUTES 0",
		"android.intent.extra.alarm.SKIP_UI true",
	} {
		if !strings.Contains(call, part) {
			t.Errorf("call %q missing %q", call, part)
		}
	}
}

func TestSetTimer_ConvertsToSeconds(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{}
	c := newCapability(f)

	if err := c.SetTimer(context.Background(), 5*time.Minute); err != nil {
		t.Fatalf("SetTimer() error = %v", err)
	}
	if !strings.Contains(f.calls[0], "android.intent.extra.alarm.LENGTH 300") {
		t.Errorf("call %q missing the 300 second length", f.calls[0])
	}
}

func TestAdjustVolume_RepeatsKeyEvents(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{}
	c := newCapability(f)

	if err := c.AdjustVolume(context.Background(), -3); err != nil {
		t.Fatalf("AdjustVolume() error = %v", err)
	}
	if len(f.calls) != 3 {
		t.Fatalf("got %d invocations, want 3", len(f.calls))
	}
	for _, call := range f.calls {
		if call != "shell input keyevent 25" {
			t.Errorf("call = %q, want volume-down keyevent", call)
		}
	}
}

func TestSetTorch_Unavailable(t *testing.T) {
	t.Parallel()
	c := newCapability(&fakeRunner{})
	if err := c.SetTorch(context.Background(), true); !errors.Is(err, automation.ErrUnavailable) {
		t.Errorf("SetTorch() error = %v, want ErrUnavailable", err)
	}
}

const sampleDump = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<hierarchy rotation="0">
  <node index="0" text="" class="android.widget.FrameLayout" bounds="[0,0][1080,2400]">
    <node index="1" text="Settings" class="android.widget.TextView" bounds="[100,200][400,300]"/>
    <node index="2" text="Network and internet" class="android.widget.TextView" bounds="[100,400][900,500]"/>
  </node>
</hierarchy>`

func TestClickText_TapsElementCentre(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{output: map[string]string{
		"shell cat": sampleDump,
	}}
	c := newCapability(f)

	if err := c.ClickText(context.Background(), "network"); err != nil {
		t.Fatalf("ClickText() error = %v", err)
	}
	last := f.calls[len(f.calls)-1]
	if last != "shell input tap 500 450" {
		t.Errorf("tap call = %q, want centre of the matched element", last)
	}
}

func TestClickText_NoMatchIsUnavailable(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{output: map[string]string{
		"shell cat": sampleDump,
	}}
	c := newCapability(f)

	err := c.ClickText(context.Background(), "bluetooth")
	if !errors.Is(err, automation.ErrUnavailable) {
		t.Errorf("ClickText() error = %v, want ErrUnavailable", err)
	}
}

func TestScreenshot_ReturnsDevicePath(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{}
	c := newCapability(f)

	path, err := c.Screenshot(context.Background())
	if err != nil {
		t.Fatalf("Screenshot() error = %v", err)
	}
	if !strings.HasPrefix(path, "/sdcard/Pictures/sakha_") || !strings.HasSuffix(path, ".png") {
		t.Errorf("path = %q, want a timestamped png under /sdcard/Pictures", path)
	}
	if !strings.HasPrefix(f.calls[0], "shell screencap -p /sdcard/Pictures/sakha_") {
		t.Errorf("call = %q, want screencap", f.calls[0])
	}
}

func TestRunnerError_Propagates(t *testing.T) {
	t.Parallel()
	f := &fakeRunner{err: errors.New("device offline")}
	c := newCapability(f)

	if err := c.PressHome(context.Background()); err == nil {
		t.Error("PressHome() = nil, want the runner error")
	}
}
