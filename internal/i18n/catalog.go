// SPDX-License-Identifier: MIT

package i18n

import "github.com/taxsetu/waflow/internal/session"

// catalog holds the message texts. English is complete; other languages
// cover the high-traffic screens and fall back to English elsewhere.
var catalog = map[Key]map[session.Language]string{
	KeyWelcome: {
		session.LangEnglish: "Welcome to TaxSetu! I can help you with GST and ITR filing.\nSend 'help' anytime to see all commands.",
		session.LangHindi:   "TaxSetu में आपका स्वागत है! मैं GST और ITR फाइलिंग में आपकी मदद कर सकता हूँ।\nसभी कमांड देखने के लिए कभी भी 'help' भेजें।",
	},
	KeyMainMenu: {
		session.LangEnglish: "Main Menu:\n1. GST Filing\n2. ITR Filing\n3. Upload Invoice\n4. My GSTINs\n5. Notifications\n6. Settings\n\nSend 0 anytime to return here.",
		session.LangHindi:   "मुख्य मेनू:\n1. GST फाइलिंग\n2. ITR फाइलिंग\n3. इनवॉइस अपलोड\n4. मेरे GSTIN\n5. सूचनाएँ\n6. सेटिंग्स\n\nयहाँ लौटने के लिए कभी भी 0 भेजें।",
		session.LangGujarati: "મુખ્ય મેનુ:\n1. GST ફાઇલિંગ\n2. ITR ફાઇલિંગ\n3. ઇનવૉઇસ અપલોડ\n4. મારા GSTIN\n5. સૂચનાઓ\n6. સેટિંગ્સ\n\nઅહીં પાછા આવવા માટે 0 મોકલો.",
	},
	KeyLangMenu: {
		session.LangEnglish: "Choose language:\n1. English\n2. हिन्दी\n3. ગુજરાતી\n4. தமிழ்\n5. తెలుగు",
	},
	KeyLangSet: {
		session.LangEnglish: "Language updated.",
		session.LangHindi:   "भाषा बदल दी गई है।",
		session.LangGujarati: "ભાષા બદલાઈ ગઈ છે.",
	},
	KeyHelp: {
		session.LangEnglish: "Commands:\n0 — main menu\n9 — go back\nNIL — file a NIL return\nhelp or ? — this message\nrestart — start over\nca — talk to a CA",
		session.LangHindi:   "कमांड:\n0 — मुख्य मेनू\n9 — वापस जाएँ\nNIL — NIL रिटर्न फाइल करें\nhelp या ? — यह संदेश\nrestart — फिर से शुरू करें\nca — CA से बात करें",
	},
	KeyInvalidChoice: {
		session.LangEnglish: "Invalid choice. Please send one of the shown options.\nYou can send 0 anytime to go back to the main menu.",
		session.LangHindi:   "गलत विकल्प। कृपया दिए गए विकल्पों में से एक भेजें।\nआप कभी भी 0 भेजकर मुख्य मेनू पर जा सकते हैं।",
	},
	KeyDidntUnderstand: {
		session.LangEnglish: "Sorry, I didn't understand that.",
		session.LangHindi:   "माफ़ कीजिए, मैं समझ नहीं पाया।",
	},
	KeyNothingToGoBack: {
		session.LangEnglish: "Nothing to go back to — you are at the main menu.",
		session.LangHindi:   "वापस जाने के लिए कुछ नहीं है — आप मुख्य मेनू पर हैं।",
	},
	KeyStackFull: {
		session.LangEnglish: "You are too deep in nested menus to go further. Send 0 for the main menu.",
	},
	KeyRestartDone: {
		session.LangEnglish: "Your session has been reset. Let's start fresh!",
		session.LangHindi:   "आपका सत्र रीसेट हो गया है। चलिए फिर से शुरू करते हैं!",
	},
	KeyCAHandoff: {
		session.LangEnglish: "Noted! A Chartered Accountant will reach out to you shortly. You can keep using the bot meanwhile.",
		session.LangHindi:   "नोट कर लिया! एक CA जल्द ही आपसे संपर्क करेंगे। इस बीच आप बॉट का उपयोग जारी रख सकते हैं।",
	},
	KeyGenericError: {
		session.LangEnglish: "Sorry, something went wrong on our side. Please try again in a moment.",
		session.LangHindi:   "क्षमा करें, हमारी ओर से कुछ गड़बड़ हो गई। कृपया थोड़ी देर में फिर कोशिश करें।",
	},
	KeySettingsMenu: {
		session.LangEnglish: "Settings:\n1. Change language\n2. Notification preferences\n3. Connect with a CA\n9. Back",
	},
	KeyConnectCAMenu: {
		session.LangEnglish: "Connect with a CA:\n1. Request a callback\n2. Share my filings with my CA\n9. Back",
	},
	KeyTaxQAWelcome: {
		session.LangEnglish: "Ask me any tax question in plain words and I'll do my best to answer.",
	},
	KeyTaxQAAnswer: {
		session.LangEnglish: "Here's what I know about \"%s\": for specific advice a CA should confirm, send 'ca' and we'll connect you. Meanwhile, check the GST or ITR menus for guided filing.",
	},
	KeyRequestLogged: {
		session.LangEnglish: "Request noted ✔ Our team will update you right here.",
	},
	KeyResumePrompt: {
		session.LangEnglish: "Welcome back! You were in the middle of something.\n1. Continue where I left off\n2. Start this flow over\n3. Main menu",
	},
	KeyConfirmExpired: {
		session.LangEnglish: "That confirmation expired for your safety. Please start the step again.\nSend 0 for the main menu.",
	},
	KeyConfirmSwitch: {
		session.LangEnglish: "You are in the middle of another flow. Switch anyway?\n1. Yes, switch\n2. No, stay",
	},
	KeyAskGSTIN: {
		session.LangEnglish: "Please send your 15-character GSTIN (e.g., 27AAPFU0939F1ZV).\nSend 0 to go back to the main menu.",
		session.LangHindi:   "कृपया अपना 15 अक्षरों का GSTIN भेजें (जैसे 27AAPFU0939F1ZV)।\nमुख्य मेनू पर वापस जाने के लिए 0 भेजें।",
	},
	KeyGSTINAccepted: {
		session.LangEnglish: "GSTIN %s registered ✔",
	},
	KeyGSTINInvalid: {
		session.LangEnglish: "That doesn't look like a valid GSTIN. Please check and resend.",
		session.LangHindi:   "यह एक मान्य GSTIN नहीं लगता। कृपया जाँच कर दोबारा भेजें।",
	},
	KeyOnboardFreq: {
		session.LangEnglish: "How do you file GST?\n1. Monthly\n2. Quarterly (QRMP)",
	},
	KeyGSTMenu: {
		session.LangEnglish: "GST Menu:\n1. File GSTR-3B\n2. GSTR-1 Preview\n3. NIL Filing\n4. Upload invoices\n5. Credit check (2B vs books)\n6. Annual return\n9. Back",
		session.LangHindi:   "GST मेनू:\n1. GSTR-3B फाइल करें\n2. GSTR-1 पूर्वावलोकन\n3. NIL फाइलिंग\n4. इनवॉइस अपलोड\n5. क्रेडिट जाँच (2B बनाम बही)\n6. वार्षिक रिटर्न\n9. वापस",
	},
	KeyGSTServices: {
		session.LangEnglish: "GST Services:\n1. Filing\n2. Payments\n3. E-invoice\n4. E-way bill\n9. Back",
	},
	KeyGSTFilingMenu: {
		session.LangEnglish: "GST Filing:\n1. GSTR-3B Summary\n2. GSTR-1 (B2B/B2C) Preview\n9. Back",
	},
	KeyGSTPeriodMenu: {
		session.LangEnglish: "Pick a return period:\n1. Current month\n2. Previous month\n3. Enter another period",
	},
	KeyAskGSTPeriod3B: {
		session.LangEnglish: "Send GST period for GSTR-3B as YYYY-MM (e.g., 2026-07).\nSend 0 to go back to the main menu.",
		session.LangHindi:   "GSTR-3B के लिए अवधि YYYY-MM के रूप में भेजें (जैसे 2026-07)।\nमुख्य मेनू पर वापस जाने के लिए 0 भेजें।",
	},
	KeyAskGSTPeriod1: {
		session.LangEnglish: "Send GST period for GSTR-1 as YYYY-MM (e.g., 2026-07).\nSend 0 to go back to the main menu.",
	},
	KeyInvalidPeriod: {
		session.LangEnglish: "Please send the period as YYYY-MM, for example 2026-07.",
	},
	KeyGSTSummary: {
		session.LangEnglish: "GSTR-3B summary for %s:\nOutward tax: ₹%s\nITC available: ₹%s\nNet payable: ₹%s\n\n1. Confirm and queue for filing\n2. Change period\n9. Back",
	},
	KeyGSTFilingConfirm: {
		session.LangEnglish: "Confirm filing for %s?\n1. Yes, file it\n2. No, go back",
	},
	KeyGSTQueued: {
		session.LangEnglish: "Your return is queued for CA review. We'll notify you once it's filed ✔\nSend 0 for the main menu.",
	},
	KeyGSTFilingError: {
		session.LangEnglish: "We couldn't prepare that return right now. Your data is safe — please try again shortly.",
	},
	KeyGSTPayment: {
		session.LangEnglish: "Net payable is ₹%s. Generate a payment challan?\n1. Yes\n2. Later",
	},
	KeyGSTAnnualMenu: {
		session.LangEnglish: "Annual return:\n1. GSTR-9 status\n2. Turnover summary\n9. Back",
	},
	KeyGSTQRMPMenu: {
		session.LangEnglish: "QRMP:\n1. This quarter's invoices\n2. Switch filing frequency\n9. Back",
	},
	KeyNilFilingMenu: {
		session.LangEnglish: "NIL Filing:\n1. File NIL GSTR-3B for the current period\n2. File NIL GSTR-1\n9. Back",
		session.LangHindi:   "NIL फाइलिंग:\n1. चालू अवधि के लिए NIL GSTR-3B फाइल करें\n2. NIL GSTR-1 फाइल करें\n9. वापस",
	},
	KeyNilFilingConfirm: {
		session.LangEnglish: "File a NIL return for the current period? This declares zero sales and zero tax.\n1. Yes, file NIL\n2. Cancel",
	},
	KeyNilFilingDone: {
		session.LangEnglish: "NIL return queued ✔ You'll get a confirmation once it's filed.",
	},
	KeyNilFilingNoGSTIN: {
		session.LangEnglish: "You need a registered GSTIN before filing NIL. Send it now or 0 for the main menu.",
	},
	KeyUploadInvoice: {
		session.LangEnglish: "Upload your invoice as a photo or PDF and I'll read it for you.\nSend 0 to go back.",
		session.LangHindi:   "अपना इनवॉइस फोटो या PDF के रूप में अपलोड करें, मैं उसे पढ़ लूँगा।\nवापस जाने के लिए 0 भेजें।",
	},
	KeyUploadMenu: {
		session.LangEnglish: "Invoice upload:\n1. Sales invoice\n2. Purchase invoice\n3. Smart upload (auto-detect)\n9. Back",
	},
	KeyUploadPurchase: {
		session.LangEnglish: "Send the purchase invoice as a photo or PDF.",
	},
	KeySmartUpload: {
		session.LangEnglish: "Send any tax document and I'll figure out what it is.",
	},
	KeyUploadParsed: {
		session.LangEnglish: "Got it! Invoice %s from %s for ₹%s recorded ✔\nUpload another, or send 9 to go back.",
	},
	KeyUploadFailed: {
		session.LangEnglish: "I couldn't read that document. Try a clearer photo, or send 9 to go back.",
	},
	KeyExpectingMedia: {
		session.LangEnglish: "Please upload the document as a photo or PDF attachment.",
	},
	KeyCreditCheckMenu: {
		session.LangEnglish: "Credit check:\n1. Compare GSTR-2B with my books\n2. Pending ITC\n9. Back",
	},
	KeyCreditCheckRun: {
		session.LangEnglish: "Checking your input tax credit… I'll send the mismatches in a moment.",
	},
	KeyMultiGSTINMenu: {
		session.LangEnglish: "My GSTINs:\n1. List registered GSTINs\n2. Add a GSTIN\n3. Switch active GSTIN\n9. Back",
	},
	KeyMultiGSTINAdd: {
		session.LangEnglish: "Send the GSTIN you want to add.",
	},
	KeyMultiGSTINAdded: {
		session.LangEnglish: "GSTIN %s added to your profile ✔",
	},
	KeyMultiGSTINSummary: {
		session.LangEnglish: "Registered GSTINs:\n%s\nSend 9 to go back.",
	},
	KeyITRMenu: {
		session.LangEnglish: "ITR Menu:\n1. Start ITR filing\n2. Upload Form 16 / documents\n3. My drafts\n9. Back",
		session.LangHindi:   "ITR मेनू:\n1. ITR फाइलिंग शुरू करें\n2. Form 16 / दस्तावेज़ अपलोड करें\n3. मेरे ड्राफ्ट\n9. वापस",
	},
	KeyITRFilingOptions: {
		session.LangEnglish: "How would you like to file?\n1. Guided questions\n2. Upload documents and let us fill it\n9. Back",
	},
	KeyITRAskPAN: {
		session.LangEnglish: "Please send your 10-character PAN (e.g., ABCDE1234F).",
		session.LangHindi:   "कृपया अपना 10 अक्षरों का PAN भेजें (जैसे ABCDE1234F)।",
	},
	KeyITRInvalidPAN: {
		session.LangEnglish: "That doesn't look like a valid PAN. Format: AAAAA9999A.",
	},
	KeyITRAskName: {
		session.LangEnglish: "Your full name as per PAN?",
	},
	KeyITRAskDOB: {
		session.LangEnglish: "Date of birth as DD-MM-YYYY?",
	},
	KeyITRAskSalary: {
		session.LangEnglish: "Total salary income for the year (₹)?",
	},
	KeyITRAskOtherInc: {
		session.LangEnglish: "Income from other sources, e.g. interest (₹)? Send 'none' if not applicable.",
	},
	KeyITRAsk80C: {
		session.LangEnglish: "Section 80C investments (₹)? Send 'none' if not applicable.",
	},
	KeyITRAsk80D: {
		session.LangEnglish: "Section 80D medical insurance premium (₹)? Send 'none' if not applicable.",
	},
	KeyITRAskTDS: {
		session.LangEnglish: "TDS already deducted as per Form 16 (₹)? Send 'none' if not applicable.",
	},
	KeyITRInvalidNumber: {
		session.LangEnglish: "Please send a plain number, e.g. 250000.",
		session.LangHindi:   "कृपया केवल संख्या भेजें, जैसे 250000।",
	},
	KeyITRComputing: {
		session.LangEnglish: "Computing your tax… one moment.",
	},
	KeyITRResult: {
		session.LangEnglish: "Your tax computation:\nTaxable income: ₹%s\nTax payable: ₹%s\nRefund due: ₹%s\n\n1. Queue for CA review\n2. Edit answers\n9. Back",
	},
	KeyITRQueued: {
		session.LangEnglish: "Your ITR draft is queued for CA review ✔ We'll notify you when it's ready to e-verify.",
	},
	KeyDocUploadPrompt: {
		session.LangEnglish: "Upload your Form 16 or other tax documents as photos or PDFs.",
	},
	KeyDocTypeMenu: {
		session.LangEnglish: "What did you upload?\n1. Form 16\n2. Interest certificate\n3. Capital gains statement\n4. Other",
	},
	KeyDocDetected: {
		session.LangEnglish: "Looks like a %s. I've extracted the details — send 1 to confirm or 2 to correct.",
	},
	KeyNotificationSettings: {
		session.LangEnglish: "Notifications:\n1. Filing deadline reminders\n2. CA status updates\n3. Mute all\n9. Back",
	},
	KeyNotifyFrequency: {
		session.LangEnglish: "How often should I remind you?\n1. A week before\n2. Three days before\n3. On the due date",
	},
	KeyNotifySaved: {
		session.LangEnglish: "Notification preferences saved ✔",
	},
	KeyRefundMenu: {
		session.LangEnglish: "Refunds:\n1. Track refund status\n2. Raise a refund query\n9. Back",
	},
	KeyNoticeMenu: {
		session.LangEnglish: "Notices:\n1. View open notices\n2. Upload a notice for review\n9. Back",
	},
	KeyEInvoiceMenu: {
		session.LangEnglish: "E-invoice:\n1. Generate IRN\n2. Cancel IRN\n9. Back",
	},
	KeyEWayBillMenu: {
		session.LangEnglish: "E-way bill:\n1. Generate\n2. Extend validity\n9. Back",
	},
}
