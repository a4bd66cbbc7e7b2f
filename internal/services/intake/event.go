package intake

import "github.com/drivegate/drivegate/internal/services/granter"

// EventKind tags the inbound event variants the conversation consumes.
type EventKind string

const (
	// EventText is a plain text message, possibly a bot command.
	EventText EventKind = "text"
	// EventContactShare is a shared contact card.
	EventContactShare EventKind = "contact_share"
	// EventCallback is an inline keyboard button tap.
	EventCallback EventKind = "callback"
)

// Contact is the phone contact payload of a contact-share event.
type Contact struct {
	PhoneNumber string
	// UserID is the account the shared contact belongs to. It must match
	// the sender; forwarded third-party contacts are rejected.
	UserID int64
}

// Event is one inbound chat platform event, reduced to what the
// conversation needs: sender identity, variant tag, and payload.
type Event struct {
	Kind      EventKind
	UserID    int64
	ChatID    int64
	FirstName string
	LastName  string
	Username  string

	// Command holds the bot command name without the slash, when the
	// text message was a command.
	Command string
	// Text holds the message text for EventText.
	Text string
	// Contact holds the payload for EventContactShare.
	Contact Contact
	// Callback holds the raw callback data for EventCallback.
	Callback string
}

// KeyboardKind selects the keyboard attached to a reply.
type KeyboardKind string

const (
	// KeyboardNone leaves the current keyboard untouched.
	KeyboardNone KeyboardKind = ""
	// KeyboardRemove clears any custom reply keyboard.
	KeyboardRemove KeyboardKind = "remove"
	// KeyboardContactRequest shows the share-phone reply button.
	KeyboardContactRequest KeyboardKind = "contact_request"
	// KeyboardTeamPicker shows one inline button per configured team.
	KeyboardTeamPicker KeyboardKind = "team_picker"
	// KeyboardAdminTeamPicker shows the admin roster team buttons.
	KeyboardAdminTeamPicker KeyboardKind = "admin_team_picker"
	// KeyboardFolderActions shows open-folder and file-panel buttons.
	KeyboardFolderActions KeyboardKind = "folder_actions"
	// KeyboardFileLinks shows one URL button per folder file.
	KeyboardFileLinks KeyboardKind = "file_links"
)

// Keyboard describes a reply keyboard without transport types.
type Keyboard struct {
	Kind      KeyboardKind
	Teams     []string
	Team      string
	FolderURL string
	Files     []granter.File
}

// Reply is one outbound message produced by the conversation.
type Reply struct {
	// ChatID overrides the destination chat; zero means the chat the
	// triggering event came from.
	ChatID   int64
	Text     string
	Keyboard Keyboard
}
