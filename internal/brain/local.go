package brain

import (
	"context"
	"log/slog"
	"strings"

	"github.com/adityaksh/sakha/internal/infer"
)

// localPreamble primes the instruction-tuned local model with the assistant
// persona using its turn markers.
const localPreamble = `<start_of_turn>user
Tu Sakha hai, ek Hinglish voice assistant.
- Short jawab do (max 2-3 sentences)
- Hinglish mein bolo (Hindi + English)
- Friendly tone rakho
- "Boss" se address karo user ko
<end_of_turn>
<start_of_turn>model
Samjha! Main Sakha hun, Boss ka personal assistant!
<end_of_turn>
`

// LocalClient answers questions with the loaded on-device model. Unlike the
// RemoteClient it is stateless per question; the small local model gets no
// rolling history.
type LocalClient struct {
	engine infer.Engine
	log    *slog.Logger
}

// NewLocalClient returns a client over engine. engine must already be
// loaded before Ask is called; an unloaded engine produces an error Answer.
func NewLocalClient(engine infer.Engine, log *slog.Logger) *LocalClient {
	if log == nil {
		log = slog.Default()
	}
	return &LocalClient{engine: engine, log: log}
}

// Ask generates a reply for userMessage on the local model.
func (c *LocalClient) Ask(ctx context.Context, userMessage string) Answer {
	out, err := c.engine.Generate(ctx, buildLocalPrompt(userMessage))
	if err != nil {
		c.log.Warn("local model generation failed", "error", err)
		return Answer{
			Text:    "Local model se jawab nahi mila Boss. Model load check karo.",
			IsError: true,
		}
	}

	reply := cleanLocalReply(out)
	if reply == "" {
		reply = "Kuch samjha nahi Boss, phir se puchho!"
	}
	return Answer{Text: reply}
}

// buildLocalPrompt wraps the question in the model's turn markers after the
// persona preamble.
func buildLocalPrompt(query string) string {
	var b strings.Builder
	b.WriteString(localPreamble)
	b.WriteString("<start_of_turn>user\n")
	b.WriteString(query)
	b.WriteString("\n<end_of_turn>\n<start_of_turn>model\n")
	return b.String()
}

// cleanLocalReply strips stray turn markers the model sometimes echoes.
func cleanLocalReply(out string) string {
	s := strings.TrimSpace(out)
	s = strings.TrimPrefix(s, "<start_of_turn>model")
	s = strings.TrimPrefix(s, "model")
	s = strings.TrimSuffix(s, "<end_of_turn>")
	return strings.TrimSpace(s)
}
