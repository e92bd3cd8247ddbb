// Package adb implements the automation capability against an Android device
// reachable through the adb command line tool.
//
// Every operation maps to one or two `adb shell` invocations. The package
// never fails hard: a missing adb binary or an unreachable device surfaces as
// an error on the individual operation, which the action layer turns into a
// spoken apology.
package adb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adityaksh/sakha/internal/automation"
)

// Runner executes one adb invocation and returns its combined output. It is
// a seam for tests; the default runner shells out to the adb binary.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

// Capability drives an Android device over adb.
type Capability struct {
	serial string
	run    Runner
	log    *slog.Logger

	// screenshotDir is the on-device directory screenshots are written to.
	screenshotDir string

	now func() time.Time
}

// Compile-time assertion.
var _ automation.Capability = (*Capability)(nil)

// Option configures a Capability.
type Option func(*Capability)

// WithSerial targets a specific device when several are attached.
func WithSerial(serial string) Option {
	return func(c *Capability) { c.serial = serial }
}

// WithRunner replaces the adb invocation. Used by tests.
func WithRunner(run Runner) Option {
	return func(c *Capability) { c.run = run }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Capability) { c.log = log }
}

// New returns a Capability talking to the device through the adb binary on
// PATH.
func New(opts ...Option) *Capability {
	c := &Capability{
		log:           slog.Default(),
		screenshotDir: "/sdcard/Pictures",
		now:           time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	if c.run == nil {
		c.run = func(ctx context.Context, args ...string) ([]byte, error) {
			out, err := exec.CommandContext(ctx, "adb", args...).CombinedOutput()
			if errors.Is(err, exec.ErrNotFound) {
				return nil, automation.ErrUnavailable
			}
			if err != nil {
				return nil, fmt.Errorf("adb %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
			}
			return out, nil
		}
	}
	return c
}

// shell runs one `adb [-s serial] shell ...` invocation.
func (c *Capability) shell(ctx context.Context, args ...string) ([]byte, error) {
	full := make([]string, 0, len(args)+3)
	if c.serial != "" {
		full = append(full, "-s", c.serial)
	}
	full = append(full, "shell")
	full = append(full, args...)
	return c.run(ctx, full...)
}

func (c *Capability) shellErr(ctx context.Context, args ...string) error {
	_, err := c.shell(ctx, args...)
	return err
}

// Dial opens the dialer with number prefilled.
func (c *Capability) Dial(ctx context.Context, number string) error {
	return c.shellErr(ctx, "am", "start", "-a", "android.intent.action.DIAL", "-d", "tel:"+number)
}

// OpenApp launches pkg via its launcher intent.
func (c *Capability) OpenApp(ctx context.Context, pkg string) error {
	out, err := c.shell(ctx, "monkey", "-p", pkg, "-c", "android.intent.category.LAUNCHER", "1")
	if err != nil {
		return err
	}
	// monkey exits zero even when the package does not resolve.
	if strings.Contains(string(out), "No activities found") {
		return fmt.Errorf("adb: package %q not installed: %w", pkg, automation.ErrUnavailable)
	}
	return nil
}

// OpenCamera opens the capture UI, in video mode when video is true.
func (c *Capability) OpenCamera(ctx context.Context, video bool) error {
	action := "android.media.action.STILL_IMAGE_CAMERA"
	if video {
		action = "android.media.action.VIDEO_CAMERA"
	}
	return c.shellErr(ctx, "am", "start", "-a", action)
}

// OpenURL opens url in the default browser.
func (c *Capability) OpenURL(ctx context.Context, url string) error {
	return c.shellErr(ctx, "am", "start", "-a", "android.intent.action.VIEW", "-d", url)
}

// WebSearch performs a web search for query.
func (c *Capability) WebSearch(ctx context.Context, query string) error {
	return c.shellErr(ctx, "am", "start", "-a", "android.intent.action.WEB_SEARCH", "-e", "query", query)
}

// screenActions maps each system screen to its launch intent action.
var screenActions = map[automation.Screen]string{
	automation.ScreenSettings:  "android.settings.SETTINGS",
	automation.ScreenWiFi:      "android.settings.WIFI_SETTINGS",
	automation.ScreenBluetooth: "android.settings.BLUETOOTH_SETTINGS",
	automation.ScreenDND:       "android.settings.ZEN_MODE_SETTINGS",
	automation.ScreenBattery:   "android.intent.action.POWER_USAGE_SUMMARY",
	automation.ScreenAlarms:    "android.intent.action.SHOW_ALARMS",
	automation.ScreenTimers:    "android.intent.action.SHOW_TIMERS",
}

// OpenScreen opens a system screen.
func (c *Capability) OpenScreen(ctx context.Context, screen automation.Screen) error {
	if screen == automation.ScreenMessages {
		return c.shellErr(ctx, "am", "start", "-a", "android.intent.action.MAIN", "-c", "android.intent.category.APP_MESSAGING")
	}
	action, ok := screenActions[screen]
	if !ok {
		return fmt.Errorf("adb: unknown screen %q: %w", screen, automation.ErrUnavailable)
	}
	return c.shellErr(ctx, "am", "start", "-a", action)
}

// SetAlarm schedules an alarm without opening the clock UI.
func (c *Capability) SetAlarm(ctx context.Context, hour, minute int) error {
	return c.shellErr(ctx, "am", "start",
		"-a", "android.intent.action.SET_ALARM",
		"--ei", "android.intent.extra.alarm.HOUR", strconv.Itoa(hour),
		"--ei", "android.intent.extra.alarm.MINUTES", strconv.Itoa(minute),
		"--ez", "android.intent.extra.alarm.SKIP_UI", "true")
}

// SetTimer starts a countdown timer without opening the clock UI.
func (c *Capability) SetTimer(ctx context.Context, d time.Duration) error {
	return c.shellErr(ctx, "am", "start",
		"-a", "android.intent.action.SET_TIMER",
		"--ei", "android.intent.extra.alarm.LENGTH", strconv.Itoa(int(d.Seconds())),
		"--ez", "android.intent.extra.alarm.SKIP_UI", "true")
}

// AdjustVolume raises or lowers media volume by |delta| key presses.
func (c *Capability) AdjustVolume(ctx context.Context, delta int) error {
	key := "24" // KEYCODE_VOLUME_UP
	steps := delta
	if delta < 0 {
		key = "25" // KEYCODE_VOLUME_DOWN
		steps = -delta
	}
	for i := 0; i < steps; i++ {
		if err := c.shellErr(ctx, "input", "keyevent", key); err != nil {
			return err
		}
	}
	return nil
}

// SetRinger switches the ringer mode.
func (c *Capability) SetRinger(ctx context.Context, mode automation.RingerMode) error {
	name := "NORMAL"
	if mode == automation.RingerSilent {
		name = "SILENT"
	}
	return c.shellErr(ctx, "cmd", "audio", "set-ringer-mode", name)
}

// SetTorch is not reachable through a stable adb shell command; the action
// layer apologises instead.
func (c *Capability) SetTorch(_ context.Context, _ bool) error {
	return automation.ErrUnavailable
}

func (c *Capability) PressBack(ctx context.Context) error {
	return c.shellErr(ctx, "input", "keyevent", "4")
}

func (c *Capability) PressHome(ctx context.Context) error {
	return c.shellErr(ctx, "input", "keyevent", "3")
}

func (c *Capability) PressRecents(ctx context.Context) error {
	return c.shellErr(ctx, "input", "keyevent", "187")
}

func (c *Capability) OpenNotifications(ctx context.Context) error {
	return c.shellErr(ctx, "cmd", "statusbar", "expand-notifications")
}

func (c *Capability) OpenQuickSettings(ctx context.Context) error {
	return c.shellErr(ctx, "cmd", "statusbar", "expand-settings")
}

// ScrollUp swipes downwards so the content scrolls up.
func (c *Capability) ScrollUp(ctx context.Context) error {
	return c.shellErr(ctx, "input", "swipe", "500", "500", "500", "1200", "300")
}

// ScrollDown swipes upwards so the content scrolls down.
func (c *Capability) ScrollDown(ctx context.Context) error {
	return c.shellErr(ctx, "input", "swipe", "500", "1200", "500", "500", "300")
}

// nodeRe matches one node element of a uiautomator dump. Attribute order is
// fixed in the dump format: text precedes bounds.
var nodeRe = regexp.MustCompile(`<node[^>]*text="([^"]*)"[^>]*bounds="\[(\d+),(\d+)\]\[(\d+),(\d+)\]"`)

// ClickText dumps the view hierarchy, finds the first element whose text
// contains text (case-insensitive), and taps its centre.
func (c *Capability) ClickText(ctx context.Context, text string) error {
	if _, err := c.shell(ctx, "uiautomator", "dump", "/sdcard/window_dump.xml"); err != nil {
		return err
	}
	dump, err := c.shell(ctx, "cat", "/sdcard/window_dump.xml")
	if err != nil {
		return err
	}

	want := strings.ToLower(text)
	for _, m := range nodeRe.FindAllStringSubmatch(string(dump), -1) {
		if !strings.Contains(strings.ToLower(m[1]), want) || m[1] == "" {
			continue
		}
		x1, _ := strconv.Atoi(m[2])
		y1, _ := strconv.Atoi(m[3])
		x2, _ := strconv.Atoi(m[4])
		y2, _ := strconv.Atoi(m[5])
		cx := (x1 + x2) / 2
		cy := (y1 + y2) / 2
		c.log.Debug("clicking element", "text", m[1], "x", cx, "y", cy)
		return c.shellErr(ctx, "input", "tap", strconv.Itoa(cx), strconv.Itoa(cy))
	}
	return fmt.Errorf("adb: no on-screen element contains %q: %w", text, automation.ErrUnavailable)
}

// Screenshot captures the screen to the on-device screenshot directory and
// returns that path.
func (c *Capability) Screenshot(ctx context.Context) (string, error) {
	path := fmt.Sprintf("%s/sakha_%s.png", c.screenshotDir, c.now().Format("20060102_150405"))
	if err := c.shellErr(ctx, "screencap", "-p", path); err != nil {
		return "", err
	}
	return path, nil
}
