// Package telegram carries the intake conversation over the Telegram Bot
// API. It translates inbound updates into intake events and replies back
// into Telegram messages with the matching keyboards.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/drivegate/drivegate/internal/services/intake"
	"github.com/drivegate/drivegate/internal/services/intake/render"
)

// Client wraps a bot API connection and knows how to send intake replies.
type Client struct {
	api      *tgbotapi.BotAPI
	renderer *render.Renderer
}

// NewClient authenticates against the bot API with the given token.
func NewClient(token string, renderer *render.Renderer) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect bot api: %w", err)
	}
	return &Client{api: api, renderer: renderer}, nil
}

// Username reports the authenticated bot account name.
func (c *Client) Username() string {
	if c == nil || c.api == nil {
		return ""
	}
	return c.api.Self.UserName
}

// Send delivers one reply to its chat.
func (c *Client) Send(reply intake.Reply) error {
	if c == nil || c.api == nil {
		return fmt.Errorf("client is not connected")
	}
	if reply.ChatID == 0 {
		return fmt.Errorf("reply chat id is required")
	}

	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	if markup := buildMarkup(c.renderer, reply.Keyboard); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send message to %d: %w", reply.ChatID, err)
	}
	return nil
}

// buildMarkup maps a reply keyboard onto the bot API markup types. A nil
// return means the message carries no markup at all.
func buildMarkup(renderer *render.Renderer, keyboard intake.Keyboard) interface{} {
	switch keyboard.Kind {
	case intake.KeyboardRemove:
		return tgbotapi.NewRemoveKeyboard(true)

	case intake.KeyboardContactRequest:
		markup := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButtonContact(renderer.T("keyboard.share_phone")),
			),
		)
		markup.ResizeKeyboard = true
		markup.OneTimeKeyboard = true
		return markup

	case intake.KeyboardTeamPicker:
		return inlineTeamRows(keyboard.Teams, intake.CallbackTeamPrefix)

	case intake.KeyboardAdminTeamPicker:
		return inlineTeamRows(keyboard.Teams, intake.CallbackAdminTeamPrefix)

	case intake.KeyboardFolderActions:
		row := []tgbotapi.InlineKeyboardButton{}
		if keyboard.FolderURL != "" {
			row = append(row, tgbotapi.NewInlineKeyboardButtonURL(
				renderer.T("keyboard.open_folder"), keyboard.FolderURL))
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			renderer.T("keyboard.file_panel"), intake.CallbackFilesPrefix+keyboard.Team))
		return tgbotapi.NewInlineKeyboardMarkup(row)

	case intake.KeyboardFileLinks:
		var rows [][]tgbotapi.InlineKeyboardButton
		for _, file := range keyboard.Files {
			if file.ViewLink == "" {
				continue
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL(file.Name, file.ViewLink),
			))
		}
		if len(rows) == 0 {
			return nil
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)

	default:
		return nil
	}
}

// inlineTeamRows renders one callback button per team, one team per row so
// long team names stay readable.
func inlineTeamRows(teams []string, prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, team := range teams {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(team, prefix+team),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
