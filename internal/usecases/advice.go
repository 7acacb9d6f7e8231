package usecases

import (
	"regexp"
	"strings"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

var (
	advicePrefixes = []string{"Advice:", "Coach:", "Answer:", "Response:"}
	blankLines     = regexp.MustCompile(`\n{3,}`)
	markdownBold   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// CleanAdvice strips the decoration models like to add around plain text.
func CleanAdvice(response string) string {
	advice := strings.TrimSpace(response)

	for _, prefix := range advicePrefixes {
		if len(advice) >= len(prefix) && strings.EqualFold(advice[:len(prefix)], prefix) {
			advice = strings.TrimSpace(advice[len(prefix):])
			break
		}
	}

	if len(advice) >= 2 && advice[0] == '"' && advice[len(advice)-1] == '"' {
		advice = strings.TrimSpace(advice[1 : len(advice)-1])
	}

	advice = markdownBold.ReplaceAllString(advice, "$1")
	advice = blankLines.ReplaceAllString(advice, "\n\n")
	return advice
}

var fallbackAdvice = map[string][]string{
	"low": {
		"Thanks for checking in on a hard day. Pick the smallest possible thing, like a glass of water or opening a window, and let that count.",
		"Rough days happen and they pass. Put one task out of sight for today and give yourself five quiet minutes first.",
		"You showed up, and that matters. Text someone you trust or step outside for two minutes before anything else.",
	},
	"mid": {
		"A steady day is a good base. Choose one task, set a 15 minute timer, and start only that.",
		"You're in the middle of the range. Clear one small thing off your list to build a bit of momentum.",
		"Check what is draining you right now and remove one distraction before your next task.",
	},
	"high": {
		"Great energy today. Use it on the task you've been avoiding, but set a stop time so you don't burn out.",
		"You're feeling good. Write down what helped today so you can repeat it on a harder day.",
		"Ride the momentum: finish one focus task, then take a real break to celebrate it.",
	},
}

func moodBand(score int) string {
	switch {
	case score <= 3:
		return "low"
	case score <= 6:
		return "mid"
	default:
		return "high"
	}
}

// FallbackAdvice picks a canned message for the mood band; seed rotates
// through the set so repeated failures do not repeat the same line.
func FallbackAdvice(score, seed int) string {
	options := fallbackAdvice[moodBand(score)]
	if seed < 0 {
		seed = -seed
	}
	return options[seed%len(options)]
}
