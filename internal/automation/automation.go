// Package automation defines the platform capability boundary.
//
// Every operation is discrete and best-effort: a missing or failing
// capability returns an error (commonly [ErrUnavailable]) which the action
// layer converts into a spoken apology. Nothing here may panic or terminate
// the process.
package automation

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable signals that the platform does not provide the requested
// capability. Callers treat it as "not performed", never as fatal.
var ErrUnavailable = errors.New("automation: capability unavailable")

// RingerMode selects the device ringer behaviour.
type RingerMode int

const (
	RingerNormal RingerMode = iota
	RingerSilent
)

// Screen names a platform settings or system screen that can be opened.
type Screen string

const (
	ScreenSettings  Screen = "settings"
	ScreenWiFi      Screen = "wifi"
	ScreenBluetooth Screen = "bluetooth"
	ScreenDND       Screen = "dnd"
	ScreenBattery   Screen = "battery"
	ScreenMessages  Screen = "messages"
	ScreenAlarms    Screen = "alarms"
	ScreenTimers    Screen = "timers"
)

// Capability is the set of platform primitives the agent can drive. All
// operations are synchronous and return once the platform has accepted or
// rejected the request.
type Capability interface {
	// Dial opens the dialer with number prefilled.
	Dial(ctx context.Context, number string) error

	// OpenApp launches the app identified by pkg.
	OpenApp(ctx context.Context, pkg string) error

	// OpenCamera opens the capture UI, in video mode when video is true.
	OpenCamera(ctx context.Context, video bool) error

	// OpenURL opens url in the default browser.
	OpenURL(ctx context.Context, url string) error

	// WebSearch performs a web search for query.
	WebSearch(ctx context.Context, query string) error

	// OpenScreen opens a system screen.
	OpenScreen(ctx context.Context, screen Screen) error

	// SetAlarm schedules an alarm at the given wall-clock time.
	SetAlarm(ctx context.Context, hour, minute int) error

	// SetTimer starts a countdown timer.
	SetTimer(ctx context.Context, d time.Duration) error

	// AdjustVolume raises (+) or lowers (-) media volume by delta steps.
	AdjustVolume(ctx context.Context, delta int) error

	// SetRinger switches the ringer mode.
	SetRinger(ctx context.Context, mode RingerMode) error

	// SetTorch toggles the flashlight.
	SetTorch(ctx context.Context, on bool) error

	PressBack(ctx context.Context) error
	PressHome(ctx context.Context) error
	PressRecents(ctx context.Context) error
	OpenNotifications(ctx context.Context) error
	OpenQuickSettings(ctx context.Context) error
	ScrollUp(ctx context.Context) error
	ScrollDown(ctx context.Context) error

	// ClickText finds an on-screen element containing text and clicks it.
	ClickText(ctx context.Context, text string) error

	// Screenshot captures the screen and returns the stored file path.
	Screenshot(ctx context.Context) (string, error)
}
