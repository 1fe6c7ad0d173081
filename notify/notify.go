package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"farmstand-backend/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Sender pushes order events to the user's device over Firebase Cloud
// Messaging. Every send is detached and best-effort: checkout never waits on
// or fails because of a notification.
type Sender struct {
	client *messaging.Client
}

// Init builds the FCM client from the same credentials the store uses.
func Init(ctx context.Context) (*Sender, error) {
	credJSON := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	var opts []option.ClientOption
	if credJSON != "" {
		if strings.HasPrefix(credJSON, "{") {
			opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
		} else {
			// It's a file path
			opts = append(opts, option.WithCredentialsFile(credJSON))
		}
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("messaging init failed: %w", err)
	}

	return &Sender{client: client}, nil
}

// OrderPlaced notifies the user that their order was created.
func (s *Sender) OrderPlaced(user models.User, order models.Order) {
	s.send(user, "Order Placed", fmt.Sprintf("Order #%s placed successfully!", shortID(order.ID)))
}

// OrderStatusChanged notifies the user about a fulfillment update.
func (s *Sender) OrderStatusChanged(user models.User, order models.Order) {
	s.send(user, "Order Update", fmt.Sprintf("Order #%s is now %s", shortID(order.ID), order.Status))
}

func (s *Sender) send(user models.User, title, body string) {
	if s == nil || s.client == nil || user.FCMToken == "" {
		return
	}

	go func() {
		msg := &messaging.Message{
			Token: user.FCMToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		}
		if _, err := s.client.Send(context.Background(), msg); err != nil {
			log.Printf("Error sending push to user %s: %v", user.ID, err)
		}
	}()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
