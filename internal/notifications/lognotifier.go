package notifications

import (
	"context"

	"github.com/marikeiske/datekeeper-plus/internal/model"
	"go.uber.org/zap"
)

// LogNotifier writes notifications to the log instead of delivering them.
type LogNotifier struct {
	logger *zap.SugaredLogger
}

func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Send(_ context.Context, to model.Recipient, n *model.Notification) error {
	if to.Email == "" && to.PushToken == "" {
		return model.ErrNoRecipient
	}

	l.logger.Infow(n.Subject, "user", to.UserID, "email", to.Email, "body", n.Body())
	return nil
}
