package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/marikeiske/datekeeper-plus/internal/model"
	"google.golang.org/api/option"
)

// Service delivers notifications as Firebase Cloud Messaging pushes.
type Service struct {
	client *messaging.Client
}

func NewService(ctx context.Context, credentialsPath string) (*Service, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining messaging client: %w", err)
	}

	return &Service{client: client}, nil
}

func (s *Service) Send(ctx context.Context, to model.Recipient, n *model.Notification) error {
	message, err := buildMessage(to, n)
	if err != nil {
		return err
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func buildMessage(to model.Recipient, n *model.Notification) (*messaging.Message, error) {
	if to.PushToken == "" {
		return nil, fmt.Errorf("user %v: %w", to.UserID, model.ErrNoRecipient)
	}

	return &messaging.Message{
		Token: to.PushToken,
		Data:  n.Data(),
		Notification: &messaging.Notification{
			Title: n.Subject,
			Body:  n.Body(),
		},
	}, nil
}
