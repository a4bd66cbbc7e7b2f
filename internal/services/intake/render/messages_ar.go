package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Arabic

	message.SetString(lang, "intake.greeting",
		"مرحباً! ✨ أحتاج رقم هاتفك فقط عشان نبدأ، وتقدر تعيد العملية في أي وقت من جديد.")
	message.SetString(lang, "intake.welcome_back",
		"أهلاً مرة تانية! 😊 رقم تليفونك محفوظ، تقدر تختار فرقتك وتبعت إيميل جديد في أي وقت.")
	message.SetString(lang, "intake.phone_required",
		"⚠️ نحتاج رقم هاتفك من الزر عشان نكمل التسجيل، يرجى إرساله من هناك.")
	message.SetString(lang, "intake.contact_mismatch",
		"⚠️ لازم تشارك رقمك أنت من الزر، مش جهة اتصال لحساب تاني.")
	message.SetString(lang, "intake.team_prompt",
		"رائع، الآن يمكنك اختيار فرقتك:")
	message.SetString(lang, "intake.team_unknown",
		"⚠️ الفرقة غير معروفة، الرجاء المحاولة مرة أخرى.")
	message.SetString(lang, "intake.email_prompt",
		"✅ ممتاز! الآن أرسل بريدك الإلكتروني، ولو احتجت تعيدها ممكن ترسل إيميل جديد.")
	message.SetString(lang, "intake.email_invalid",
		"⚠️ البريد الإلكتروني غير صالح، تأكد إنك كتبت الشكل name@example.com.")
	message.SetString(lang, "intake.grant.working",
		"⏳ جارٍ إضافة بريدك إلى مجلد الفرقة... لحظات.")
	message.SetString(lang, "intake.grant.success",
		"✅ تمت إضافتك إلى مجلد %s! تقدر تبعت بريد تاني لو حبيت تعيد الصلاحية.")
	message.SetString(lang, "intake.grant.invalid_email",
		"الإيميل ده مش موجود أو مش شغال على Google، جرب إيميل تاني بعد ما تبعت /start.")
	message.SetString(lang, "intake.grant.permission_denied",
		"الإيميل ده ما عندهوش صلاحية للوصول أو المجلد مقفل، هنتابع الإضافة يدوياً.")
	message.SetString(lang, "intake.grant.network",
		"النت مش ثابت دلوقتي، بياناتك محفوظة وهنضيفك يدوياً لو ما وصلتكش الصلاحية.")
	message.SetString(lang, "intake.grant.missing_folder",
		"⚠️ مفيش مجلد متسجل للفرقة دي، بياناتك محفوظة وهيتم إضافتك يدوياً.")
	message.SetString(lang, "intake.grant.unknown",
		"حصل خطأ غير متوقع أثناء مشاركة المجلد، بياناتك محفوظة وتواصل مع الأدمن لو الصلاحية ما وصلتش.")
	message.SetString(lang, "intake.storage_error",
		"❌ حصل خطأ أثناء حفظ بياناتك، جرب تبعت الإيميل مرة تانية بعد شوية.")
	message.SetString(lang, "intake.access_instructions",
		"للوصول للملفات بعد ما أضيفك:\n"+
			"1. افتح تطبيق Google Drive أو ادخل على drive.google.com بنفس البريد اللي أرسلته.\n"+
			"2. من القائمة الجانبية اختار \"الملفات المشتركة\" أو \"Shared with me\".\n"+
			"3. هتلاقي المجلد اللي شاركته معاك، افتحه وتشوف المحتوى.")
	message.SetString(lang, "intake.file_panel.prompt",
		"تقدر تفتح المجلد أو تبص على الملفات من هنا:")
	message.SetString(lang, "intake.file_panel.header",
		"📂 أحدث الملفات:")
	message.SetString(lang, "intake.file_panel.empty",
		"📁 مفيش ملفات حالياً في المجلد.")
	message.SetString(lang, "intake.file_panel.error",
		"⚠️ تعذر جلب الملفات دلوقتي، جرب بعد شوية.")

	message.SetString(lang, "keyboard.share_phone", "مشاركة رقم الهاتف")
	message.SetString(lang, "keyboard.open_folder", "افتح المجلد")
	message.SetString(lang, "keyboard.file_panel", "لوحة الملفات")

	message.SetString(lang, "admin.denied",
		"⛔ غير مصرح لك باستخدام هذا الأمر.")
	message.SetString(lang, "admin.denied_short", "⛔ غير مصرح")
	message.SetString(lang, "admin.stats.header",
		"إحصائيات الفرق:")
	message.SetString(lang, "admin.stats.line",
		"• %s: إجمالي أعضاء %d, أعضاء تمت إضافتهم %d")
	message.SetString(lang, "admin.stats.empty",
		"لم تصل أي بيانات بعد.")
	message.SetString(lang, "admin.stats.choose",
		"اختر فرقة لعرض البريد الإلكتروني:")
	message.SetString(lang, "admin.roster.header",
		"بريد الفرقة %s:")
	message.SetString(lang, "admin.roster.hint",
		"استخدم تحديد الكل ونسخ إذا رغبت في إضافتها دفعة واحدة.")
	message.SetString(lang, "admin.roster.empty",
		"لا توجد رسائل بريد مسجلة للفرقة %s.")
	message.SetString(lang, "admin.users.header",
		"📋 بيانات المستخدمين:")
	message.SetString(lang, "admin.users.empty",
		"لا توجد بيانات مستخدمين بعد.")
	message.SetString(lang, "admin.users.no_name", "بدون اسم")
	message.SetString(lang, "admin.users.no_email", "لم يُدخل")
	message.SetString(lang, "admin.users.no_phone", "غير متوفر")
	message.SetString(lang, "admin.users.no_team", "غير محددة")
	message.SetString(lang, "admin.users.granted", "🌟 تمت المشاركة")
	message.SetString(lang, "admin.users.not_granted", "⚠️ لم تتم المشاركة")
	message.SetString(lang, "admin.broadcast.empty",
		"لا توجد بيانات مستخدمين للإرسال.")
	message.SetString(lang, "admin.broadcast.done",
		"تم إرسال إشعار البداية لـ %d/%d مستخدم.")
	message.SetString(lang, "broadcast.start_notice",
		"البوت شغّال ✨\nلو حبيت تجدد الوصول، اكتب /start أو اختار فرقتك وأرسل بريدك.")
}
