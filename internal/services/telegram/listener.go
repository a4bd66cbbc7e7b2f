package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/drivegate/drivegate/internal/services/intake"
)

const updateTimeoutSeconds = 30

// Listener consumes bot API updates and routes them to the intake flow or
// the admin surface.
type Listener struct {
	client *Client
	flow   *intake.Flow
	admin  *intake.Admin
}

// NewListener wires a connected client to the conversation handlers.
func NewListener(client *Client, flow *intake.Flow, admin *intake.Admin) (*Listener, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if flow == nil {
		return nil, fmt.Errorf("flow is required")
	}
	if admin == nil {
		return nil, fmt.Errorf("admin is required")
	}
	return &Listener{client: client, flow: flow, admin: admin}, nil
}

// Run polls for updates until ctx is canceled. Each update is handled on
// its own goroutine; per-user ordering comes from the session locks.
func (l *Listener) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeoutSeconds
	updates := l.client.api.GetUpdatesChan(cfg)

	log.Printf("telegram: listening as @%s", l.client.Username())

	for {
		select {
		case <-ctx.Done():
			l.client.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go l.handle(ctx, update)
		}
	}
}

func (l *Listener) handle(ctx context.Context, update tgbotapi.Update) {
	event, ok := eventFromUpdate(update)
	if !ok {
		return
	}

	if update.CallbackQuery != nil {
		// Acknowledge right away so the button stops spinning.
		if _, err := l.client.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			log.Printf("telegram: answer callback: %v", err)
		}
	}

	replies, err := l.dispatch(ctx, event)
	if err != nil {
		log.Printf("telegram: handle update from %d: %v", event.UserID, err)
		return
	}
	l.deliver(event, replies)
}

// dispatch routes admin commands and the admin roster callback; everything
// else goes through the intake flow.
func (l *Listener) dispatch(ctx context.Context, event intake.Event) ([]intake.Reply, error) {
	if event.Kind == intake.EventCallback &&
		strings.HasPrefix(event.Callback, intake.CallbackAdminTeamPrefix) {
		team := strings.TrimPrefix(event.Callback, intake.CallbackAdminTeamPrefix)
		return l.admin.Roster(ctx, event, team)
	}

	switch event.Command {
	case "admin":
		return l.admin.Summary(ctx, event)
	case "admin_users":
		return l.admin.Users(ctx, event)
	case "broadcast_start":
		return l.admin.Broadcast(ctx, event, l.client.Send)
	}

	return l.flow.Handle(ctx, event)
}

func (l *Listener) deliver(event intake.Event, replies []intake.Reply) {
	for _, reply := range replies {
		if reply.ChatID == 0 {
			reply.ChatID = event.ChatID
		}
		if err := l.client.Send(reply); err != nil {
			log.Printf("telegram: %v", err)
		}
	}
}

// eventFromUpdate converts one bot API update into an intake event. The
// second return is false for update kinds the bot does not react to.
func eventFromUpdate(update tgbotapi.Update) (intake.Event, bool) {
	if callback := update.CallbackQuery; callback != nil && callback.From != nil {
		event := intake.Event{
			Kind:      intake.EventCallback,
			UserID:    callback.From.ID,
			ChatID:    callback.From.ID,
			FirstName: callback.From.FirstName,
			LastName:  callback.From.LastName,
			Username:  callback.From.UserName,
			Callback:  callback.Data,
		}
		if callback.Message != nil && callback.Message.Chat != nil {
			event.ChatID = callback.Message.Chat.ID
		}
		return event, true
	}

	message := update.Message
	if message == nil || message.From == nil || message.Chat == nil {
		return intake.Event{}, false
	}

	event := intake.Event{
		Kind:      intake.EventText,
		UserID:    message.From.ID,
		ChatID:    message.Chat.ID,
		FirstName: message.From.FirstName,
		LastName:  message.From.LastName,
		Username:  message.From.UserName,
		Text:      message.Text,
	}
	if message.IsCommand() {
		event.Command = message.Command()
	}
	if message.Contact != nil {
		event.Kind = intake.EventContactShare
		event.Contact = intake.Contact{
			PhoneNumber: message.Contact.PhoneNumber,
			UserID:      message.Contact.UserID,
		}
	}
	return event, true
}
