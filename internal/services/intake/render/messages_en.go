package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "intake.greeting",
		"Hi! ✨ I only need your phone number to get started. You can rerun the whole flow at any time.")
	message.SetString(lang, "intake.welcome_back",
		"Welcome back! 😊 Your phone number is on file, so pick your team and send a new email whenever you like.")
	message.SetString(lang, "intake.phone_required",
		"⚠️ Please share your phone number using the button below so we can continue.")
	message.SetString(lang, "intake.contact_mismatch",
		"⚠️ Please share your own contact from the button, not someone else's.")
	message.SetString(lang, "intake.team_prompt",
		"Great, now choose your team:")
	message.SetString(lang, "intake.team_unknown",
		"⚠️ Unknown team, please pick one from the list.")
	message.SetString(lang, "intake.email_prompt",
		"✅ Excellent! Now send your email address. You can send a new one later to redo this step.")
	message.SetString(lang, "intake.email_invalid",
		"⚠️ That email doesn't look right. Make sure it follows name@example.com.")
	message.SetString(lang, "intake.grant.working",
		"⏳ Adding your email to the team folder... one moment.")
	message.SetString(lang, "intake.grant.success",
		"✅ You've been added to the %s folder! Send another email if you want to redo the access.")
	message.SetString(lang, "intake.grant.invalid_email",
		"That email doesn't exist on Google or isn't active. Send /start and try another one.")
	message.SetString(lang, "intake.grant.permission_denied",
		"That email can't be granted access or the folder is locked. We'll add you manually.")
	message.SetString(lang, "intake.grant.network",
		"The network is flaky right now. Your details are saved; we'll add you manually if access doesn't arrive.")
	message.SetString(lang, "intake.grant.missing_folder",
		"⚠️ There is no folder configured for this team. Your details are saved and you'll be added manually.")
	message.SetString(lang, "intake.grant.unknown",
		"Something unexpected went wrong while sharing the folder. Your details are saved; contact the admin if access doesn't arrive.")
	message.SetString(lang, "intake.storage_error",
		"❌ Something went wrong saving your details. Please send your email again in a bit.")
	message.SetString(lang, "intake.access_instructions",
		"To reach the files once you're added:\n"+
			"1. Open the Google Drive app or drive.google.com with the email you sent.\n"+
			"2. Pick \"Shared with me\" from the side menu.\n"+
			"3. You'll find the shared folder there. Open it to see the content.")
	message.SetString(lang, "intake.file_panel.prompt",
		"You can open the folder or browse the files from here:")
	message.SetString(lang, "intake.file_panel.header",
		"📂 Latest files:")
	message.SetString(lang, "intake.file_panel.empty",
		"📁 The folder has no files yet.")
	message.SetString(lang, "intake.file_panel.error",
		"⚠️ Couldn't fetch the files right now, try again later.")

	message.SetString(lang, "keyboard.share_phone", "Share phone number")
	message.SetString(lang, "keyboard.open_folder", "Open folder")
	message.SetString(lang, "keyboard.file_panel", "File panel")

	message.SetString(lang, "admin.denied",
		"⛔ You are not allowed to use this command.")
	message.SetString(lang, "admin.denied_short", "⛔ Not allowed")
	message.SetString(lang, "admin.stats.header",
		"Team statistics:")
	message.SetString(lang, "admin.stats.line",
		"• %s: %d members total, %d granted access")
	message.SetString(lang, "admin.stats.empty",
		"No data collected yet.")
	message.SetString(lang, "admin.stats.choose",
		"Pick a team to list its emails:")
	message.SetString(lang, "admin.roster.header",
		"Emails for team %s:")
	message.SetString(lang, "admin.roster.hint",
		"Select all and copy to add them in one batch.")
	message.SetString(lang, "admin.roster.empty",
		"No emails recorded for team %s.")
	message.SetString(lang, "admin.users.header",
		"📋 Member records:")
	message.SetString(lang, "admin.users.empty",
		"No member records yet.")
	message.SetString(lang, "admin.users.no_name", "no name")
	message.SetString(lang, "admin.users.no_email", "not provided")
	message.SetString(lang, "admin.users.no_phone", "unavailable")
	message.SetString(lang, "admin.users.no_team", "unassigned")
	message.SetString(lang, "admin.users.granted", "🌟 access granted")
	message.SetString(lang, "admin.users.not_granted", "⚠️ access pending")
	message.SetString(lang, "admin.broadcast.empty",
		"No member records to notify.")
	message.SetString(lang, "admin.broadcast.done",
		"Start notice sent to %d/%d members.")
	message.SetString(lang, "broadcast.start_notice",
		"The bot is live ✨\nSend /start to refresh your access, or pick your team and send your email.")
}
