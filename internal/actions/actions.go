// Package actions executes device-action intents against the platform
// capability boundary and produces the spoken confirmation for each.
//
// Failures never propagate: a missing app or unavailable capability turns
// into a spoken apology and a Performed=false result.
package actions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adityaksh/sakha/internal/automation"
	"github.com/adityaksh/sakha/internal/contacts"
	"github.com/adityaksh/sakha/internal/intent"
)

const apology = "Maaf karna Boss, ye kaam nahi kar paya."

// Result is the outcome of executing one device-action intent.
type Result struct {
	// Phrase is the text to speak for this action.
	Phrase string

	// Performed reports whether the platform accepted the action. Pure
	// speech results (arithmetic, clarifications) count as performed.
	Performed bool
}

// Table executes device-action intents.
type Table struct {
	capability automation.Capability
	directory  *contacts.Directory
	now        func() time.Time
	log        *slog.Logger
}

// Option is a functional option for a Table.
type Option func(*Table)

// WithNow overrides the clock. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(t *Table) { t.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(t *Table) { t.log = log }
}

// New returns a Table driving capability, resolving call targets against
// directory.
func New(capability automation.Capability, directory *contacts.Directory, opts ...Option) *Table {
	t := &Table{
		capability: capability,
		directory:  directory,
		now:        time.Now,
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Execute performs in and returns the spoken confirmation. in must have
// Kind KindDeviceAction; any other intent yields an apology.
func (t *Table) Execute(ctx context.Context, in intent.Intent) Result {
	res := t.execute(ctx, in)
	if !res.Performed {
		t.log.Warn("device action not performed", "action", in.Action, "rule", in.Rule)
	}
	return res
}

func (t *Table) execute(ctx context.Context, in intent.Intent) Result {
	switch in.Action {
	case intent.ActionCall:
		return t.call(ctx, in.Target)
	case intent.ActionCallChooser:
		return t.confirm(t.capability.Dial(ctx, ""), in.Reply)
	case intent.ActionOpenMessages:
		return t.confirm(t.capability.OpenScreen(ctx, automation.ScreenMessages), "Message app khol raha hun")
	case intent.ActionWiFiSettings:
		return t.confirm(t.capability.OpenScreen(ctx, automation.ScreenWiFi), "WiFi settings khol raha hun")
	case intent.ActionVolumeUp:
		return t.confirm(t.capability.AdjustVolume(ctx, +1), "Volume badha diya")
	case intent.ActionVolumeDown:
		return t.confirm(t.capability.AdjustVolume(ctx, -1), "Volume ghata diya")
	case intent.ActionMute:
		return t.confirm(t.capability.SetRinger(ctx, automation.RingerSilent), "Phone silent kar diya")
	case intent.ActionUnmute:
		return t.confirm(t.capability.SetRinger(ctx, automation.RingerNormal), "Phone unmute kar diya")
	case intent.ActionTorch:
		return t.confirm(t.capability.SetTorch(ctx, true), "Torch on kar raha hun")
	case intent.ActionSetAlarm:
		return t.confirm(
			t.capability.SetAlarm(ctx, in.Hour, in.Minute),
			fmt.Sprintf("%d baje ka alarm lagaa raha hun", in.Hour),
		)
	case intent.ActionShowAlarms:
		return t.confirm(t.capability.OpenScreen(ctx, automation.ScreenAlarms), in.Reply)
	case intent.ActionSetTimer:
		return t.setTimer(ctx, in.Seconds)
	case intent.ActionShowTimers:
		return t.confirm(t.capability.OpenScreen(ctx, automation.ScreenTimers), in.Reply)
	case intent.ActionRecordVideo:
		return t.confirm(t.capability.OpenCamera(ctx, true), "Video record karne ke liye camera khol raha hun")
	case intent.ActionOpenCamera:
		return t.confirm(t.capability.OpenCamera(ctx, false), "Camera khol raha hun")
	case intent.ActionOpenApp:
		return t.openApp(ctx, in.AppName, in.Package)
	case intent.ActionOpenSettings:
		return t.confirm(t.capability.OpenScreen(ctx, automation.ScreenSettings), "Settings khol raha hun")
	case intent.ActionWebSearch:
		return t.confirm(
			t.capability.WebSearch(ctx, in.Query),
			fmt.Sprintf("%s search kar raha hun", in.Query),
		)
	case intent.ActionOpenWebsite:
		return t.openWebsite(ctx, in.Query)
	case intent.ActionWeather:
		return t.weather(ctx, in.Query)
	case intent.ActionClarify:
		return Result{Phrase: in.Reply, Performed: true}
	case intent.ActionPressBack:
		return t.confirm(t.capability.PressBack(ctx), "Peeche ja raha hun")
	case intent.ActionPressHome:
		return t.confirm(t.capability.PressHome(ctx), "Home ja raha hun")
	case intent.ActionRecents:
		return t.confirm(t.capability.PressRecents(ctx), "Recent apps khol raha hun")
	case intent.ActionNotifications:
		return t.confirm(t.capability.OpenNotifications(ctx), "Notifications khol raha hun")
	case intent.ActionQuickSettings:
		return t.confirm(t.capability.OpenQuickSettings(ctx), "Quick settings khol raha hun")
	case intent.ActionScrollUp:
		return t.confirm(t.capability.ScrollUp(ctx), "Upar scroll kar raha hun")
	case intent.ActionScrollDown:
		return t.confirm(t.capability.ScrollDown(ctx), "Neeche scroll kar raha hun")
	case intent.ActionClickText:
		return t.confirm(
			t.capability.ClickText(ctx, in.Target),
			fmt.Sprintf("%s pe click kar raha hun", in.Target),
		)
	case intent.ActionScreenshot:
		return t.screenshot(ctx)
	case intent.ActionTellTime:
		now := t.now()
		return Result{
			Phrase:    fmt.Sprintf("Abhi %d baj ke %d minute hue hain", now.Hour(), now.Minute()),
			Performed: true,
		}
	case intent.ActionTellDate:
		return Result{
			Phrase:    fmt.Sprintf("Aaj %d tarikh hai", t.now().Day()),
			Performed: true,
		}
	case intent.ActionBattery:
		return t.confirm(t.capability.OpenScreen(ctx, automation.ScreenBattery), "Battery settings khol raha hun")
	case intent.ActionBluetooth:
		return t.confirm(t.capability.OpenScreen(ctx, automation.ScreenBluetooth), "Bluetooth settings khol raha hun")
	case intent.ActionDND:
		return t.confirm(t.capability.OpenScreen(ctx, automation.ScreenDND), "DND settings khol raha hun")
	case intent.ActionQuiet, intent.ActionArithmetic:
		return Result{Phrase: in.Reply, Performed: true}
	}
	return Result{Phrase: apology}
}

// confirm maps a capability outcome to its confirmation or the apology.
func (t *Table) confirm(err error, phrase string) Result {
	if err != nil {
		return Result{Phrase: apology}
	}
	return Result{Phrase: phrase, Performed: true}
}

func (t *Table) call(ctx context.Context, target string) Result {
	c, ok := t.directory.Resolve(target)
	if !ok {
		return t.confirm(
			t.capability.Dial(ctx, ""),
			fmt.Sprintf("%s contacts mein nahi mila, dialer khol raha hun", target),
		)
	}
	return t.confirm(
		t.capability.Dial(ctx, c.Number),
		fmt.Sprintf("%s ko call karta hun", c.Name),
	)
}

func (t *Table) setTimer(ctx context.Context, seconds int) Result {
	d := time.Duration(seconds) * time.Second
	var phrase string
	if seconds%60 == 0 {
		phrase = fmt.Sprintf("%d minute ka timer lagaa raha hun", seconds/60)
	} else {
		phrase = fmt.Sprintf("%d second ka timer lagaa raha hun", seconds)
	}
	return t.confirm(t.capability.SetTimer(ctx, d), phrase)
}

func (t *Table) openApp(ctx context.Context, name, pkg string) Result {
	if err := t.capability.OpenApp(ctx, pkg); err != nil {
		return Result{Phrase: fmt.Sprintf("%s install nahi hai", name)}
	}
	return Result{Phrase: fmt.Sprintf("%s khol raha hun", name), Performed: true}
}

func (t *Table) openWebsite(ctx context.Context, site string) Result {
	url := site
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	return t.confirm(
		t.capability.OpenURL(ctx, url),
		fmt.Sprintf("%s khol raha hun", site),
	)
}

func (t *Table) weather(ctx context.Context, place string) Result {
	query := "weather"
	phrase := "Mausam ka haal dekh raha hun"
	if place != "" {
		query = "weather " + place
		phrase = fmt.Sprintf("%s ka mausam dekh raha hun", place)
	}
	return t.confirm(t.capability.WebSearch(ctx, query), phrase)
}

func (t *Table) screenshot(ctx context.Context) Result {
	if _, err := t.capability.Screenshot(ctx); err != nil {
		return Result{Phrase: apology}
	}
	return Result{Phrase: "Screenshot le liya", Performed: true}
}
