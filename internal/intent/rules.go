package intent

import (
	"strings"

	"github.com/adityaksh/sakha/internal/knowledge"
)

// rule is one entry of the device-action table.
type rule struct {
	name     string
	triggers []string
	// match overrides trigger matching when set (used by the arithmetic
	// rule, which matches on expression shape rather than substrings).
	match func(q string) bool
	build func(q string) Intent
}

// matches reports whether any trigger appears in q.
func (r rule) matches(q string) bool {
	if r.match != nil {
		return r.match(q)
	}
	for _, t := range r.triggers {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// action returns a builder producing a bare Intent for id.
func action(id ActionID) func(string) Intent {
	return func(string) Intent { return Intent{Action: id} }
}

// app returns a builder producing an app-launch Intent.
func app(name, pkg string) func(string) Intent {
	return func(string) Intent {
		return Intent{Action: ActionOpenApp, AppName: name, Package: pkg}
	}
}

// rules is the ordered device-action table. Declaration order is load
// bearing: the first matching rule wins, so overlapping triggers must keep
// the more specific rule first ("timer" before "time", "video record"
// before "camera", "wifi band" before "band"). Tests pin the known
// overlaps; reorder only with a matching test change.
var rules = []rule{
	{
		name:     "call",
		triggers: []string{"call karo", "call", "phone karo", "bulao"},
		build: func(q string) Intent {
			target := extractTarget(q, []string{"call karo", "call", "phone karo", "bulao"})
			if target == "" {
				return Intent{Action: ActionCallChooser, Reply: "Kisko call karun? Naam batao"}
			}
			return Intent{Action: ActionCall, Target: target}
		},
	},
	{
		name:     "messages",
		triggers: []string{"message", "sms", "whatsapp"},
		build:    action(ActionOpenMessages),
	},
	{
		name:     "wifi_on",
		triggers: []string{"wifi on", "wifi chalu"},
		build:    action(ActionWiFiSettings),
	},
	{
		name:     "wifi_off",
		triggers: []string{"wifi off", "wifi band"},
		build:    action(ActionWiFiSettings),
	},
	{
		name:     "volume_up",
		triggers: []string{"volume badha", "volume up", "aawaz badha"},
		build:    action(ActionVolumeUp),
	},
	{
		name:     "volume_down",
		triggers: []string{"volume kam", "volume down", "aawaz kam"},
		build:    action(ActionVolumeDown),
	},
	{
		name:     "mute",
		triggers: []string{"mute", "silent", "chup"},
		build:    action(ActionMute),
	},
	{
		name:     "unmute",
		triggers: []string{"unmute", "ringer on"},
		build:    action(ActionUnmute),
	},
	{
		name:     "torch",
		triggers: []string{"torch", "flashlight", "light on"},
		build:    action(ActionTorch),
	},
	{
		name:     "alarm",
		triggers: []string{"alarm", "jagana"},
		build: func(q string) Intent {
			hour, minute, ok := extractAlarmTime(q)
			if !ok {
				return Intent{
					Action: ActionShowAlarms,
					Reply:  "Alarm set karne ke liye time batao, jaise: alarm lagao 7 baje",
				}
			}
			return Intent{Action: ActionSetAlarm, Hour: hour, Minute: minute}
		},
	},
	{
		name:     "timer",
		triggers: []string{"timer", "countdown"},
		build: func(q string) Intent {
			secs, ok := extractDuration(q)
			if !ok {
				return Intent{
					Action: ActionShowTimers,
					Reply:  "Timer ke liye duration batao, jaise: 5 minute ka timer lagao",
				}
			}
			return Intent{Action: ActionSetTimer, Seconds: secs}
		},
	},

	// "video record" must stay ahead of the camera rule; both match a
	// recording request and the camera rule's trigger is the shorter one.
	{
		name:     "video_record",
		triggers: []string{"video record", "video banao", "record karo"},
		build:    action(ActionRecordVideo),
	},

	{
		name:     "youtube",
		triggers: []string{"youtube"},
		build:    app("YouTube", "com.google.android.youtube"),
	},
	{
		name:     "instagram",
		triggers: []string{"instagram"},
		build:    app("Instagram", "com.instagram.android"),
	},
	{
		name:     "maps",
		triggers: []string{"maps", "navigation"},
		build:    app("Google Maps", "com.google.android.apps.maps"),
	},
	{
		name:     "browser",
		triggers: []string{"chrome", "browser"},
		build:    app("Chrome", "com.android.chrome"),
	},
	{
		name:     "camera",
		triggers: []string{"camera", "photo khicho"},
		build:    action(ActionOpenCamera),
	},
	{
		name:     "calculator",
		triggers: []string{"calculator"},
		build:    app("Calculator", "com.google.android.calculator"),
	},
	{
		name:     "settings",
		triggers: []string{"settings kholo", "setting kholo", "settings"},
		build:    action(ActionOpenSettings),
	},
	{
		name:     "gallery",
		triggers: []string{"gallery", "photos"},
		build:    app("Photos", "com.google.android.apps.photos"),
	},
	{
		name:     "play_store",
		triggers: []string{"play store"},
		build:    app("Play Store", "com.android.vending"),
	},

	{
		name:     "website",
		triggers: []string{"website kholo", ".com", ".in", ".org"},
		build: func(q string) Intent {
			site := extractQuery(q, "website kholo", "kholo", "open")
			if site == "" {
				return Intent{Action: ActionClarify, Reply: "Kaunsi website kholun?"}
			}
			return Intent{Action: ActionOpenWebsite, Query: site}
		},
	},
	{
		name:     "weather",
		triggers: []string{"weather", "mausam"},
		build: func(q string) Intent {
			place := extractQuery(q, "weather", "mausam", "kaisa hai", "batao")
			return Intent{Action: ActionWeather, Query: place}
		},
	},
	{
		name:     "search",
		triggers: []string{"search", "dhundo", "google"},
		build: func(q string) Intent {
			query := extractQuery(q, "search karo", "google karo", "dhundo", "search", "google")
			if query == "" {
				return Intent{Action: ActionClarify, Reply: "Kya search karun?"}
			}
			return Intent{Action: ActionWebSearch, Query: query}
		},
	},

	// Screen automation. "scroll down"/"scroll up" are checked before the
	// bare "scroll" fallback to down.
	{
		name:     "scroll_up",
		triggers: []string{"scroll up", "upar scroll", "upar karo"},
		build:    action(ActionScrollUp),
	},
	{
		name:     "scroll_down",
		triggers: []string{"scroll down", "neeche scroll", "neeche karo", "scroll"},
		build:    action(ActionScrollDown),
	},
	{
		name:     "back",
		triggers: []string{"press back", "back karo", "peeche jao", "wapas jao"},
		build:    action(ActionPressBack),
	},
	{
		name:     "home",
		triggers: []string{"press home", "home jao", "home screen"},
		build:    action(ActionPressHome),
	},
	{
		name:     "recents",
		triggers: []string{"recent apps", "recents"},
		build:    action(ActionRecents),
	},
	{
		name:     "notifications",
		triggers: []string{"notification"},
		build:    action(ActionNotifications),
	},
	{
		name:     "quick_settings",
		triggers: []string{"quick settings"},
		build:    action(ActionQuickSettings),
	},
	{
		name:     "screenshot",
		triggers: []string{"screenshot", "screen shot"},
		build:    action(ActionScreenshot),
	},
	{
		name:     "click",
		triggers: []string{"click karo", "dabao", "click"},
		build: func(q string) Intent {
			target := extractTarget(q, []string{"click karo", "dabao", "click"})
			if target == "" {
				return Intent{Action: ActionClarify, Reply: "Kispe click karun?"}
			}
			return Intent{Action: ActionClickText, Target: target}
		},
	},

	{
		name:     "time",
		triggers: []string{"time", "samay", "baj"},
		build:    action(ActionTellTime),
	},
	{
		name:     "date",
		triggers: []string{"date", "aaj", "din"},
		build:    action(ActionTellDate),
	},
	{
		name:     "battery",
		triggers: []string{"battery", "charge"},
		build:    action(ActionBattery),
	},
	{
		name:     "bluetooth",
		triggers: []string{"bluetooth"},
		build:    action(ActionBluetooth),
	},
	{
		name:     "dnd",
		triggers: []string{"do not disturb", "disturb mat", "dnd"},
		build:    action(ActionDND),
	},
	{
		name:     "quiet",
		triggers: []string{"band karo", "stop", "rukja", "chup ho"},
		build: func(string) Intent {
			return Intent{
				Action: ActionQuiet,
				Reply:  "Theek hai, main chup ho jata hun. Zaroorat ho to bulaana.",
			}
		},
	},

	{
		name:  "arithmetic",
		match: knowledge.MatchesSpokenArithmetic,
		build: func(q string) Intent {
			reply, _ := knowledge.EvalSpokenArithmetic(q)
			return Intent{Action: ActionArithmetic, Reply: reply}
		},
	},
}
