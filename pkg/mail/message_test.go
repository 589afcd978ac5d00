package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportance(t *testing.T) {
	tests := []struct {
		in      string
		want    Importance
		wantErr bool
	}{
		{in: "", want: Normal},
		{in: "normal", want: Normal},
		{in: "Low", want: Low},
		{in: " HIGH ", want: High},
		{in: "urgent", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseImportance(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Low, Normal, High")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportanceHeaders(t *testing.T) {
	assert.Equal(t, "Normal", Normal.String())
	assert.Equal(t, "Low", Low.String())
	assert.Equal(t, "High", High.String())
	assert.Equal(t, "5 (Lowest)", Low.xPriority())
	assert.Equal(t, "3 (Normal)", Normal.xPriority())
	assert.Equal(t, "1 (Highest)", High.xPriority())
}

func TestRecipients(t *testing.T) {
	msg := &Message{
		From: "me@corp.example",
		To:   []string{"a@x"},
		Cc:   []string{"b@x"},
		Bcc:  []string{"c@x"},
	}
	assert.Equal(t, []string{"a@x", "b@x", "c@x"}, msg.Recipients())

	msg.SaveCopy = true
	assert.Equal(t, []string{"a@x", "b@x", "c@x", "me@corp.example"}, msg.Recipients())
}
