package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLogMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		leaked   string
		expected string
	}{
		{
			"password assignment",
			"login failed password=hunter2 for account",
			"hunter2",
			"password=[REDACTED]",
		},
		{
			"bearer token",
			"user-info request failed token=eyJhbGciOiJSUzI1NiJ9.abc.def",
			"eyJhbGciOiJSUzI1NiJ9",
			"token=[REDACTED]",
		},
		{
			"authorization code",
			"exchange failed code=4/0AbCdEf state=xyz",
			"4/0AbCdEf",
			"code=[REDACTED]",
		},
		{
			"client secret",
			"bad config secret=sk-12345",
			"sk-12345",
			"secret=[REDACTED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := SanitizeLogMessage(tt.input)
			assert.NotContains(t, out, tt.leaked)
			assert.Contains(t, out, tt.expected)
		})
	}
}

func TestSanitizeLogMessage_LeavesPlainMessagesAlone(t *testing.T) {
	msg := "user not found for provider kakao"
	assert.Equal(t, msg, SanitizeLogMessage(msg))
}

func TestSanitizeLogMessage_CaseInsensitive(t *testing.T) {
	out := SanitizeLogMessage("PASSWORD=topsecret")
	assert.False(t, strings.Contains(out, "topsecret"))
}
