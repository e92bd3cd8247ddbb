// Package intent classifies transcripts into exactly one handler decision.
//
// Classification walks four tiers in fixed priority order: the device-action
// rule table, the offline knowledge base, the hosted model, and the local
// model. The rule table is checked in declaration order and the first rule
// whose trigger set matches wins, so more specific multi-word triggers must
// be declared before shorter substrings they contain ("video record" before
// "camera"). Trigger matching is substring containment on the normalised
// text, not word matching; triggers can match inside unrelated words and
// callers must treat that as accepted behaviour.
package intent

// Kind names the handler tier an Intent is dispatched to.
type Kind int

const (
	// KindDeviceAction is a matched rule from the device-action table.
	KindDeviceAction Kind = iota

	// KindKnowledge is an offline knowledge-base reply carried in Reply.
	KindKnowledge

	// KindRemoteQuery sends the transcript to the hosted model.
	KindRemoteQuery

	// KindLocalQuery sends the transcript to the loaded on-device model.
	KindLocalQuery

	// KindUnrecognized means no tier could handle the transcript.
	KindUnrecognized
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindDeviceAction:
		return "device_action"
	case KindKnowledge:
		return "knowledge"
	case KindRemoteQuery:
		return "remote_query"
	case KindLocalQuery:
		return "local_query"
	case KindUnrecognized:
		return "unrecognized"
	}
	return "unknown"
}

// ActionID identifies one entry of the device-action table.
type ActionID string

const (
	ActionCall          ActionID = "call"
	ActionCallChooser   ActionID = "call_chooser"
	ActionOpenMessages  ActionID = "open_messages"
	ActionWiFiSettings  ActionID = "wifi_settings"
	ActionVolumeUp      ActionID = "volume_up"
	ActionVolumeDown    ActionID = "volume_down"
	ActionMute          ActionID = "mute"
	ActionUnmute        ActionID = "unmute"
	ActionTorch         ActionID = "torch"
	ActionSetAlarm      ActionID = "set_alarm"
	ActionShowAlarms    ActionID = "show_alarms"
	ActionSetTimer      ActionID = "set_timer"
	ActionShowTimers    ActionID = "show_timers"
	ActionRecordVideo   ActionID = "record_video"
	ActionOpenCamera    ActionID = "open_camera"
	ActionOpenApp       ActionID = "open_app"
	ActionOpenSettings  ActionID = "open_settings"
	ActionWebSearch     ActionID = "web_search"
	ActionOpenWebsite   ActionID = "open_website"
	ActionWeather       ActionID = "weather"
	ActionClarify       ActionID = "clarify"
	ActionPressBack     ActionID = "press_back"
	ActionPressHome     ActionID = "press_home"
	ActionRecents       ActionID = "recents"
	ActionNotifications ActionID = "notifications"
	ActionQuickSettings ActionID = "quick_settings"
	ActionScrollUp      ActionID = "scroll_up"
	ActionScrollDown    ActionID = "scroll_down"
	ActionClickText     ActionID = "click_text"
	ActionScreenshot    ActionID = "screenshot"
	ActionTellTime      ActionID = "tell_time"
	ActionTellDate      ActionID = "tell_date"
	ActionBattery       ActionID = "battery"
	ActionBluetooth     ActionID = "bluetooth"
	ActionDND           ActionID = "dnd"
	ActionQuiet         ActionID = "quiet"
	ActionArithmetic    ActionID = "arithmetic"
)

// Intent is the classified, parameterised decision for one transcript.
// Fields beyond Kind and Action are populated per action: Target for calls
// and clicks, Hour/Minute for alarms, Seconds for timers, Query for
// free-text actions, AppName/Package for app launches, and Reply for
// responses already resolved at classification time (knowledge-base hits,
// arithmetic results, clarification prompts).
type Intent struct {
	Kind   Kind
	Action ActionID

	Target  string
	Hour    int
	Minute  int
	Seconds int
	Query   string
	AppName string
	Package string
	Reply   string

	// Rule is the name of the matched device-action rule, for logs.
	Rule string
}

// Flags is the external state classification depends on. Together with the
// transcript it fully determines the resulting Intent, except for the random
// pick within a matched knowledge-base response set.
type Flags struct {
	// CloudConfigured reports whether a hosted-model credential is set.
	CloudConfigured bool

	// LocalModelReady reports whether the on-device model is loaded.
	LocalModelReady bool
}
