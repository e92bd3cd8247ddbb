package actions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adityaksh/sakha/internal/actions"
	"github.com/adityaksh/sakha/internal/automation"
	automock "github.com/adityaksh/sakha/internal/automation/mock"
	"github.com/adityaksh/sakha/internal/contacts"
	"github.com/adityaksh/sakha/internal/intent"
)

func newTable(capability *automock.Capability) *actions.Table {
	dir := contacts.NewDirectory([]contacts.Contact{
		{Name: "Mummy", Number: "+911111111111"},
	})
	return actions.New(capability, dir,
		actions.WithNow(func() time.Time {
			return time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
		}),
	)
}

func TestExecute_CallResolvedContact(t *testing.T) {
	t.Parallel()
	capability := &automock.Capability{}
	tbl := newTable(capability)

	res := tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionCall, Target: "mummy",
	})
	if !res.Performed {
		t.Fatal("call should be performed")
	}
	if res.Phrase != "Mummy ko call karta hun" {
		t.Errorf("Phrase = %q, want call confirmation", res.Phrase)
	}
	calls := capability.Calls()
	if len(calls) != 1 || calls[0] != "dial +911111111111" {
		t.Errorf("Calls = %v, want single dial of Mummy's number", calls)
	}
}

func TestExecute_CallUnknownTargetOpensDialer(t *testing.T) {
	t.Parallel()
	capability := &automock.Capability{}
	tbl := newTable(capability)

	res := tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionCall, Target: "xyzzy",
	})
	if !res.Performed {
		t.Fatal("dialer fallback should count as performed")
	}
	calls := capability.Calls()
	if len(calls) != 1 || calls[0] != "dial " {
		t.Errorf("Calls = %v, want bare dialer open", calls)
	}
}

func TestExecute_SetAlarm(t *testing.T) {
	t.Parallel()
	capability := &automock.Capability{}
	tbl := newTable(capability)

	res := tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionSetAlarm, Hour: 7,
	})
	if res.Phrase != "7 baje ka alarm lagaa raha hun" {
		t.Errorf("Phrase = %q, want alarm confirmation", res.Phrase)
	}
	calls := capability.Calls()
	if len(calls) != 1 || calls[0] != "set_alarm 07:00" {
		t.Errorf("Calls = %v, want set_alarm 07:00", calls)
	}
}

func TestExecute_SetTimerPhrasing(t *testing.T) {
	t.Parallel()
	capability := &automock.Capability{}
	tbl := newTable(capability)

	res := tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionSetTimer, Seconds: 300,
	})
	if res.Phrase != "5 minute ka timer lagaa raha hun" {
		t.Errorf("Phrase = %q, want minute phrasing", res.Phrase)
	}

	res = tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionSetTimer, Seconds: 45,
	})
	if res.Phrase != "45 second ka timer lagaa raha hun" {
		t.Errorf("Phrase = %q, want second phrasing", res.Phrase)
	}
}

func TestExecute_OpenAppFailureSpeaksNotInstalled(t *testing.T) {
	t.Parallel()
	capability := &automock.Capability{Err: automation.ErrUnavailable}
	tbl := newTable(capability)

	res := tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionOpenApp,
		AppName: "YouTube", Package: "com.google.android.youtube",
	})
	if res.Performed {
		t.Fatal("failed app launch must not be performed")
	}
	if res.Phrase != "YouTube install nahi hai" {
		t.Errorf("Phrase = %q, want not-installed apology", res.Phrase)
	}
}

func TestExecute_CapabilityErrorYieldsApology(t *testing.T) {
	t.Parallel()
	capability := &automock.Capability{Err: errors.New("boom")}
	tbl := newTable(capability)

	res := tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionScrollDown,
	})
	if res.Performed {
		t.Fatal("failed scroll must not be performed")
	}
	if res.Phrase == "" {
		t.Error("failure should still produce a spoken apology")
	}
}

func TestExecute_TellTimeUsesClock(t *testing.T) {
	t.Parallel()
	tbl := newTable(&automock.Capability{})

	res := tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionTellTime,
	})
	if res.Phrase != "Abhi 14 baj ke 30 minute hue hain" {
		t.Errorf("Phrase = %q, want pinned clock reading", res.Phrase)
	}
}

func TestExecute_ArithmeticSpeaksPrecomputedReply(t *testing.T) {
	t.Parallel()
	tbl := newTable(&automock.Capability{})

	res := tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionArithmetic,
		Reply: "Jawab hai: 8 Boss!",
	})
	if !res.Performed || res.Phrase != "Jawab hai: 8 Boss!" {
		t.Errorf("Result = %+v, want performed arithmetic reply", res)
	}
}

func TestExecute_WebsiteGetsScheme(t *testing.T) {
	t.Parallel()
	capability := &automock.Capability{}
	tbl := newTable(capability)

	tbl.Execute(context.Background(), intent.Intent{
		Kind: intent.KindDeviceAction, Action: intent.ActionOpenWebsite, Query: "flipkart.com",
	})
	calls := capability.Calls()
	if len(calls) != 1 || calls[0] != "open_url https://flipkart.com" {
		t.Errorf("Calls = %v, want https scheme added", calls)
	}
}
