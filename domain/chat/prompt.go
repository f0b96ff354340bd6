package chat

import (
	"fmt"
	"strings"
	"time"
)

// In-band markers the assistant may embed in a reply. The UI strips them;
// the middle tier only inspects them to derive status codes and events.
const (
	// IssueMarker prefixes replies that describe a middle-tier or
	// assistant-side failure instead of a normal answer.
	IssueMarker = "*ISSUE*"

	// EndOfConversationMarker signals that the assistant considers the
	// conversation finished and the UI should stop accepting input.
	EndOfConversationMarker = "#END_OF_CONVERSATION#"
)

// PromptTimeFormat is the timestamp layout embedded in the prompt preamble.
const PromptTimeFormat = "2006-01-02 15:04:05"

// ComposePrompt builds the augmented prompt relayed to the assistant:
// the user's display name and the server time are prepended so the
// assistant can address the user and reason about "now".
func ComposePrompt(name, prompt string, now time.Time) string {
	return fmt.Sprintf("My name: %s\nDate and time: %s\nMy prompt: %s",
		name, now.Format(PromptTimeFormat), prompt)
}

// IssueReply formats a failure as an in-band reply.
func IssueReply(detail string) string {
	return fmt.Sprintf("%s **%s**", IssueMarker, detail)
}

// IsIssue reports whether a reply is an in-band failure.
func IsIssue(reply string) bool {
	return strings.HasPrefix(reply, IssueMarker)
}

// EndsConversation reports whether a reply carries the end-of-conversation
// sentinel anywhere in its body.
func EndsConversation(reply string) bool {
	return strings.Contains(reply, EndOfConversationMarker)
}
