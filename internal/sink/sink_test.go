package sink_test

import (
	"testing"
	"time"

	"github.com/adityaksh/sakha/internal/sink"
	synthmock "github.com/adityaksh/sakha/pkg/synth/mock"
)

func waitForSpoken(t *testing.T, sy *synthmock.Synthesizer, want int) []string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if got := sy.Spoken(); len(got) >= want {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("synthesizer spoke %d phrases, want %d", len(sy.Spoken()), want)
	return nil
}

func TestEnqueue_SpeaksInOrder(t *testing.T) {
	t.Parallel()
	sy := synthmock.New()
	s := sink.New(sy)
	defer s.Stop()

	s.Enqueue("pehla")
	s.Enqueue("doosra")
	s.Enqueue("teesra")

	got := waitForSpoken(t, sy, 3)
	want := []string{"pehla", "doosra", "teesra"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Spoken[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnqueue_BuffersUntilSynthReady(t *testing.T) {
	t.Parallel()
	sy := synthmock.NewNotReady()
	s := sink.New(sy)
	defer s.Stop()

	s.Enqueue("ruko zara")
	time.Sleep(50 * time.Millisecond)
	if got := sy.Spoken(); len(got) != 0 {
		t.Fatalf("spoke %v before synthesizer was ready", got)
	}

	sy.SetReady()
	got := waitForSpoken(t, sy, 1)
	if got[0] != "ruko zara" {
		t.Errorf("Spoken[0] = %q, want the buffered phrase", got[0])
	}
}

func TestStop_DiscardsQueueAndIgnoresLateEnqueues(t *testing.T) {
	t.Parallel()
	sy := synthmock.NewNotReady()
	s := sink.New(sy)

	s.Enqueue("kabhi nahi bolna")
	s.Stop()
	s.Enqueue("ye bhi nahi")

	time.Sleep(50 * time.Millisecond)
	if got := sy.Spoken(); len(got) != 0 {
		t.Errorf("spoke %v after Stop", got)
	}
}

func TestStop_IsIdempotent(t *testing.T) {
	t.Parallel()
	s := sink.New(synthmock.New())
	s.Stop()
	s.Stop()
}

func TestEnqueue_EmptyStringIgnored(t *testing.T) {
	t.Parallel()
	sy := synthmock.New()
	s := sink.New(sy)
	defer s.Stop()

	s.Enqueue("")
	s.Enqueue("bolo")
	got := waitForSpoken(t, sy, 1)
	if got[0] != "bolo" {
		t.Errorf("Spoken[0] = %q, want bolo", got[0])
	}
}
