package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/drivegate/drivegate/internal/services/granter"
	"github.com/drivegate/drivegate/internal/services/intake"
	"github.com/drivegate/drivegate/internal/services/intake/render"
)

func TestEventFromUpdateText(t *testing.T) {
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 5, FirstName: "Lina", UserName: "lina"},
		Chat: &tgbotapi.Chat{ID: 5},
		Text: "hello",
	}}

	event, ok := eventFromUpdate(update)
	if !ok {
		t.Fatal("expected event for text message")
	}
	if event.Kind != intake.EventText || event.UserID != 5 || event.Text != "hello" {
		t.Fatalf("event = %+v", event)
	}
	if event.Command != "" {
		t.Fatalf("command = %q, want empty", event.Command)
	}
}

func TestEventFromUpdateCommand(t *testing.T) {
	text := "/start"
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: 5},
		Chat:     &tgbotapi.Chat{ID: 5},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}

	event, ok := eventFromUpdate(update)
	if !ok {
		t.Fatal("expected event for command message")
	}
	if event.Command != "start" {
		t.Fatalf("command = %q, want %q", event.Command, "start")
	}
}

func TestEventFromUpdateContact(t *testing.T) {
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From:    &tgbotapi.User{ID: 5},
		Chat:    &tgbotapi.Chat{ID: 5},
		Contact: &tgbotapi.Contact{PhoneNumber: "+15550001", UserID: 5},
	}}

	event, ok := eventFromUpdate(update)
	if !ok {
		t.Fatal("expected event for contact message")
	}
	if event.Kind != intake.EventContactShare {
		t.Fatalf("kind = %q, want contact share", event.Kind)
	}
	if event.Contact.PhoneNumber != "+15550001" || event.Contact.UserID != 5 {
		t.Fatalf("contact = %+v", event.Contact)
	}
}

func TestEventFromUpdateCallback(t *testing.T) {
	update := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: 5},
		Data:    intake.CallbackTeamPrefix + "Team A",
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}},
	}}

	event, ok := eventFromUpdate(update)
	if !ok {
		t.Fatal("expected event for callback")
	}
	if event.Kind != intake.EventCallback || event.Callback != intake.CallbackTeamPrefix+"Team A" {
		t.Fatalf("event = %+v", event)
	}
	if event.ChatID != 42 {
		t.Fatalf("chat id = %d, want callback message chat", event.ChatID)
	}
}

func TestEventFromUpdateIgnoresOtherKinds(t *testing.T) {
	if _, ok := eventFromUpdate(tgbotapi.Update{}); ok {
		t.Fatal("expected empty update to be ignored")
	}
	if _, ok := eventFromUpdate(tgbotapi.Update{EditedMessage: &tgbotapi.Message{}}); ok {
		t.Fatal("expected edited message to be ignored")
	}
}

func TestBuildMarkupContactRequest(t *testing.T) {
	markup := buildMarkup(render.New("en"), intake.Keyboard{Kind: intake.KeyboardContactRequest})

	reply, ok := markup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("markup = %T, want reply keyboard", markup)
	}
	if len(reply.Keyboard) != 1 || len(reply.Keyboard[0]) != 1 {
		t.Fatalf("keyboard shape = %+v", reply.Keyboard)
	}
	if !reply.Keyboard[0][0].RequestContact {
		t.Fatal("button should request a contact share")
	}
	if !reply.OneTimeKeyboard {
		t.Fatal("contact keyboard should be one-time")
	}
}

func TestBuildMarkupTeamPicker(t *testing.T) {
	markup := buildMarkup(render.New("en"), intake.Keyboard{
		Kind:  intake.KeyboardTeamPicker,
		Teams: []string{"Team A", "Team B"},
	})

	inline, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("markup = %T, want inline keyboard", markup)
	}
	if len(inline.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want one per team", len(inline.InlineKeyboard))
	}
	data := inline.InlineKeyboard[0][0].CallbackData
	if data == nil || *data != intake.CallbackTeamPrefix+"Team A" {
		t.Fatalf("callback data = %v", data)
	}
}

func TestBuildMarkupFolderActions(t *testing.T) {
	markup := buildMarkup(render.New("en"), intake.Keyboard{
		Kind:      intake.KeyboardFolderActions,
		Team:      "Team A",
		FolderURL: "https://drive.google.com/drive/folders/F1",
	})

	inline, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("markup = %T, want inline keyboard", markup)
	}
	row := inline.InlineKeyboard[0]
	if len(row) != 2 {
		t.Fatalf("row length = %d, want folder link plus file panel", len(row))
	}
	if row[0].URL == nil || *row[0].URL != "https://drive.google.com/drive/folders/F1" {
		t.Fatalf("folder url = %v", row[0].URL)
	}
	if row[1].CallbackData == nil || *row[1].CallbackData != intake.CallbackFilesPrefix+"Team A" {
		t.Fatalf("file panel data = %v", row[1].CallbackData)
	}
}

func TestBuildMarkupFileLinksSkipsLinklessFiles(t *testing.T) {
	markup := buildMarkup(render.New("en"), intake.Keyboard{
		Kind: intake.KeyboardFileLinks,
		Files: []granter.File{
			{ID: "f1", Name: "Score", ViewLink: "https://x/1"},
			{ID: "f2", Name: "No link"},
		},
	})

	inline, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("markup = %T, want inline keyboard", markup)
	}
	if len(inline.InlineKeyboard) != 1 {
		t.Fatalf("rows = %d, want linkless file dropped", len(inline.InlineKeyboard))
	}
}

func TestBuildMarkupNoneAndRemove(t *testing.T) {
	if markup := buildMarkup(render.New("en"), intake.Keyboard{}); markup != nil {
		t.Fatalf("markup = %v, want nil for plain replies", markup)
	}

	markup := buildMarkup(render.New("en"), intake.Keyboard{Kind: intake.KeyboardRemove})
	remove, ok := markup.(tgbotapi.ReplyKeyboardRemove)
	if !ok {
		t.Fatalf("markup = %T, want keyboard removal", markup)
	}
	if !remove.RemoveKeyboard {
		t.Fatal("removal flag not set")
	}
}
