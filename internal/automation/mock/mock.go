// Package mock provides a recording test double for automation.Capability.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adityaksh/sakha/internal/automation"
)

// Capability records every invocation as a formatted string and returns the
// injected error, if any. The zero value is ready to use.
type Capability struct {
	mu sync.Mutex

	// Err, if non-nil, is returned by every operation.
	Err error

	// ScreenshotPath is returned by Screenshot on success.
	ScreenshotPath string

	calls []string
}

// Compile-time assertion.
var _ automation.Capability = (*Capability)(nil)

// Calls returns a copy of the recorded invocations in order.
func (c *Capability) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

func (c *Capability) record(format string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
	return c.Err
}

func (c *Capability) Dial(_ context.Context, number string) error {
	return c.record("dial %s", number)
}

func (c *Capability) OpenApp(_ context.Context, pkg string) error {
	return c.record("open_app %s", pkg)
}

func (c *Capability) OpenCamera(_ context.Context, video bool) error {
	return c.record("open_camera video=%t", video)
}

func (c *Capability) OpenURL(_ context.Context, url string) error {
	return c.record("open_url %s", url)
}

func (c *Capability) WebSearch(_ context.Context, query string) error {
	return c.record("web_search %s", query)
}

func (c *Capability) OpenScreen(_ context.Context, screen automation.Screen) error {
	return c.record("open_screen %s", screen)
}

func (c *Capability) SetAlarm(_ context.Context, hour, minute int) error {
	return c.record("set_alarm %02d:%02d", hour, minute)
}

func (c *Capability) SetTimer(_ context.Context, d time.Duration) error {
	return c.record("set_timer %s", d)
}

func (c *Capability) AdjustVolume(_ context.Context, delta int) error {
	return c.record("adjust_volume %+d", delta)
}

func (c *Capability) SetRinger(_ context.Context, mode automation.RingerMode) error {
	return c.record("set_ringer %d", mode)
}

func (c *Capability) SetTorch(_ context.Context, on bool) error {
	return c.record("set_torch %t", on)
}

func (c *Capability) PressBack(context.Context) error      { return c.record("press_back") }
func (c *Capability) PressHome(context.Context) error      { return c.record("press_home") }
func (c *Capability) PressRecents(context.Context) error   { return c.record("press_recents") }
func (c *Capability) OpenNotifications(context.Context) error {
	return c.record("open_notifications")
}
func (c *Capability) OpenQuickSettings(context.Context) error {
	return c.record("open_quick_settings")
}
func (c *Capability) ScrollUp(context.Context) error   { return c.record("scroll_up") }
func (c *Capability) ScrollDown(context.Context) error { return c.record("scroll_down") }

func (c *Capability) ClickText(_ context.Context, text string) error {
	return c.record("click_text %s", text)
}

func (c *Capability) Screenshot(context.Context) (string, error) {
	if err := c.record("screenshot"); err != nil {
		return "", err
	}
	return c.ScreenshotPath, nil
}
