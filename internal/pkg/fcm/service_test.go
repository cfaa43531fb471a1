package fcm

import (
	"testing"

	"github.com/marikeiske/datekeeper-plus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	n := &model.Notification{
		Subject:  "Reminder: Standup",
		Title:    "Standup",
		Date:     "10 March 2025",
		Time:     "09:00",
		LeadTime: "15 minutes",
	}

	_, err := buildMessage(model.Recipient{UserID: "u1", Email: "ann@example.com"}, n)
	require.ErrorIs(t, err, model.ErrNoRecipient)

	m, err := buildMessage(model.Recipient{UserID: "u1", PushToken: "token-1"}, n)
	require.NoError(t, err)
	assert.Equal(t, "token-1", m.Token)
	assert.Equal(t, "Reminder: Standup", m.Notification.Title)
	assert.Equal(t, n.Body(), m.Notification.Body)
	assert.Equal(t, "15 minutes", m.Data["lead_time"])
	assert.NotContains(t, m.Data, "description")
}
