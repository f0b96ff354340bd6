package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComposePrompt(t *testing.T) {
	now := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

	prompt := ComposePrompt("Ada", "What is the weather?", now)

	assert.Equal(t, "My name: Ada\nDate and time: 2024-05-17 09:30:00\nMy prompt: What is the weather?", prompt)
}

func TestIssueReply(t *testing.T) {
	reply := IssueReply("Run Status: failed")

	assert.Equal(t, "*ISSUE* **Run Status: failed**", reply)
	assert.True(t, IsIssue(reply))
}

func TestIsIssue(t *testing.T) {
	assert.False(t, IsIssue("a normal answer"))
	assert.False(t, IsIssue("mid-sentence *ISSUE* marker does not count"))
	assert.True(t, IsIssue(IssueReply("boom")))
}

func TestEndsConversation(t *testing.T) {
	assert.False(t, EndsConversation("see you tomorrow"))
	assert.True(t, EndsConversation("Goodbye! "+EndOfConversationMarker))
	assert.True(t, EndsConversation(EndOfConversationMarker+" trailing text"))
}
