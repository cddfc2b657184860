package chat

import (
	"regexp"
	"strings"
)

// Mode selects the system prompt used for a message.
type Mode string

const (
	ModeGoals    Mode = "goals"
	ModeFeedback Mode = "feedback"
	ModeSelf     Mode = "self"
)

var modeTag = regexp.MustCompile(`(?is)^\[(GOALS|FEEDBACK|SELF)\] (.*)$`)

// ParseMode strips a leading "[GOALS] ", "[FEEDBACK] " or "[SELF] " tag
// (any case) from message. Untagged messages are goals questions and are
// returned whole.
func ParseMode(message string) (Mode, string) {
	trimmed := strings.TrimSpace(message)

	m := modeTag.FindStringSubmatch(trimmed)
	if m == nil {
		return ModeGoals, message
	}
	return Mode(strings.ToLower(m[1])), m[2]
}

const defaultModel = "llama-3.3-70b-instruct"

type profile struct {
	systemPrompt string
	model        string
}

var profiles = map[Mode]profile{
	ModeGoals: {
		systemPrompt: "You are Perform Assistant, a helpful AI assistant focused on helping users " +
			"write and achieve their work goals. Help them turn intentions into specific, " +
			"measurable, achievable, relevant and time-bound goals, and suggest concrete next steps.",
		model: defaultModel,
	},
	ModeFeedback: {
		systemPrompt: "You are Perform Assistant, an expert in giving and receiving professional feedback. " +
			"Help users phrase feedback that is specific, balanced and actionable, and help them " +
			"reflect constructively on feedback they have received.",
		model: defaultModel,
	},
	ModeSelf: {
		systemPrompt: "You are Perform Assistant, an expert in self-assessment and reflection. " +
			"Help users describe their accomplishments, impact and growth areas honestly and " +
			"with supporting evidence.",
		model: defaultModel,
	},
}

var fallbackProfile = profile{
	systemPrompt: "You are Perform Assistant, a helpful AI assistant for professional development.",
	model:        defaultModel,
}

func profileFor(m Mode) profile {
	if p, ok := profiles[m]; ok {
		return p
	}
	return fallbackProfile
}
