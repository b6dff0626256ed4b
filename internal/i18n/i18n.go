// SPDX-License-Identifier: MIT

// Package i18n holds the user-facing message catalog. English is the
// reference language; missing translations fall back to it.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/taxsetu/waflow/internal/session"
)

// Key identifies a catalog message.
type Key string

// Screen and notice keys. Screens render a state's prompt; notices are
// one-off messages appended before or instead of a screen.
const (
	KeyWelcome          Key = "WELCOME"
	KeyMainMenu         Key = "MAIN_MENU"
	KeyLangMenu         Key = "LANG_MENU"
	KeyLangSet          Key = "LANG_SET"
	KeyHelp             Key = "HELP"
	KeyInvalidChoice    Key = "INVALID_CHOICE"
	KeyDidntUnderstand  Key = "DIDNT_UNDERSTAND"
	KeyNothingToGoBack  Key = "NOTHING_TO_GO_BACK"
	KeyStackFull        Key = "STACK_FULL"
	KeyRestartDone      Key = "RESTART_DONE"
	KeyCAHandoff        Key = "CA_HANDOFF"
	KeyGenericError     Key = "GENERIC_ERROR"
	KeySettingsMenu     Key = "SETTINGS_MENU"
	KeyConnectCAMenu    Key = "CONNECT_CA_MENU"
	KeyTaxQAWelcome     Key = "TAX_QA_WELCOME"
	KeyTaxQAAnswer      Key = "TAX_QA_ANSWER"
	KeyRequestLogged    Key = "REQUEST_LOGGED"
	KeyResumePrompt     Key = "SESSION_RESUME_PROMPT"
	KeyConfirmExpired   Key = "SENSITIVE_CONFIRM_EXPIRED"
	KeyConfirmSwitch    Key = "CONFIRM_SWITCH_MODULE"

	KeyAskGSTIN      Key = "ASK_GSTIN"
	KeyGSTINAccepted Key = "GSTIN_ACCEPTED"
	KeyGSTINInvalid  Key = "INVALID_GSTIN"
	KeyOnboardFreq   Key = "GST_ONBOARD_FREQUENCY"

	KeyGSTMenu          Key = "GST_MENU"
	KeyGSTServices      Key = "GST_SERVICES"
	KeyGSTFilingMenu    Key = "GST_FILING_MENU"
	KeyGSTPeriodMenu    Key = "GST_PERIOD_MENU"
	KeyAskGSTPeriod3B   Key = "ASK_GST_PERIOD_3B"
	KeyAskGSTPeriod1    Key = "ASK_GST_PERIOD_1"
	KeyInvalidPeriod    Key = "INVALID_PERIOD"
	KeyGSTSummary       Key = "GST_SUMMARY"
	KeyGSTFilingConfirm Key = "GST_FILING_CONFIRM"
	KeyGSTQueued        Key = "GST_QUEUED_FOR_REVIEW"
	KeyGSTFilingError   Key = "GST_FILING_ERROR"
	KeyGSTPayment       Key = "GST_PAYMENT_PROMPT"
	KeyGSTAnnualMenu    Key = "GST_ANNUAL_MENU"
	KeyGSTQRMPMenu      Key = "GST_QRMP_MENU"

	KeyNilFilingMenu    Key = "NIL_FILING_MENU"
	KeyNilFilingConfirm Key = "NIL_FILING_CONFIRM"
	KeyNilFilingDone    Key = "NIL_FILING_DONE"
	KeyNilFilingNoGSTIN Key = "NIL_FILING_NO_GSTIN"

	KeyUploadInvoice   Key = "UPLOAD_INVOICE"
	KeyUploadMenu      Key = "GST_UPLOAD_MENU"
	KeyUploadPurchase  Key = "GST_UPLOAD_PURCHASE_PROMPT"
	KeySmartUpload     Key = "SMART_UPLOAD"
	KeyUploadParsed    Key = "UPLOAD_PARSED"
	KeyUploadFailed    Key = "UPLOAD_FAILED"
	KeyExpectingMedia  Key = "EXPECTING_MEDIA"

	KeyCreditCheckMenu Key = "GST_CREDIT_CHECK_MENU"
	KeyCreditCheckRun  Key = "GST_CREDIT_CHECK_RUN"

	KeyMultiGSTINMenu    Key = "MULTI_GSTIN_MENU"
	KeyMultiGSTINAdd     Key = "MULTI_GSTIN_ADD"
	KeyMultiGSTINAdded   Key = "MULTI_GSTIN_ADDED"
	KeyMultiGSTINSummary Key = "MULTI_GSTIN_SUMMARY"

	KeyITRMenu          Key = "ITR_MENU"
	KeyITRFilingOptions Key = "ITR_FILING_OPTIONS"
	KeyITRAskPAN        Key = "ITR_ASK_PAN"
	KeyITRInvalidPAN    Key = "ITR_INVALID_PAN"
	KeyITRAskName       Key = "ITR_ASK_NAME"
	KeyITRAskDOB        Key = "ITR_ASK_DOB"
	KeyITRAskSalary     Key = "ITR_ASK_SALARY"
	KeyITRAskOtherInc   Key = "ITR_ASK_OTHER_INCOME"
	KeyITRAsk80C        Key = "ITR_ASK_80C"
	KeyITRAsk80D        Key = "ITR_ASK_80D"
	KeyITRAskTDS        Key = "ITR_ASK_TDS"
	KeyITRInvalidNumber Key = "ITR_INVALID_NUMBER"
	KeyITRComputing     Key = "ITR_COMPUTING"
	KeyITRResult        Key = "ITR_RESULT"
	KeyITRQueued        Key = "ITR_QUEUED_FOR_REVIEW"

	KeyDocUploadPrompt Key = "ITR_DOC_UPLOAD_PROMPT"
	KeyDocTypeMenu     Key = "ITR_DOC_TYPE_MENU"
	KeyDocDetected     Key = "ITR_DOC_FORM_DETECTED"

	KeyNotificationSettings Key = "NOTIFICATION_SETTINGS"
	KeyNotifyFrequency      Key = "NOTIFY_FREQUENCY"
	KeyNotifySaved          Key = "NOTIFY_SAVED"

	KeyRefundMenu   Key = "REFUND_MENU"
	KeyNoticeMenu   Key = "NOTICE_MENU"
	KeyEInvoiceMenu Key = "EINVOICE_MENU"
	KeyEWayBillMenu Key = "EWAYBILL_MENU"
)

// T returns the message for key in lang, falling back to English, then to
// the key itself so a missing entry is visible rather than silent.
func T(lang session.Language, key Key) string {
	byLang, ok := catalog[key]
	if !ok {
		return string(key)
	}
	if msg, ok := byLang[lang]; ok {
		return msg
	}
	if msg, ok := byLang[session.LangEnglish]; ok {
		return msg
	}
	return string(key)
}

// Tf is T with fmt.Sprintf arguments.
func Tf(lang session.Language, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first entry is the fallback
	language.Hindi,
	language.Gujarati,
	language.Tamil,
	language.Telugu,
})

var tagToLang = map[language.Tag]session.Language{
	language.English:  session.LangEnglish,
	language.Hindi:    session.LangHindi,
	language.Gujarati: session.LangGujarati,
	language.Tamil:    session.LangTamil,
	language.Telugu:   session.LangTelugu,
}

// MatchTag maps a BCP 47 tag (e.g. from a gateway contact profile) to the
// closest supported language. Unknown tags map to English.
func MatchTag(tag string) session.Language {
	parsed, err := language.Parse(tag)
	if err != nil {
		return session.LangEnglish
	}
	_, idx, _ := matcher.Match(parsed)
	supported := []session.Language{
		session.LangEnglish, session.LangHindi, session.LangGujarati,
		session.LangTamil, session.LangTelugu,
	}
	if idx < 0 || idx >= len(supported) {
		return session.LangEnglish
	}
	return supported[idx]
}

// ScreenKey maps a state to the catalog key for its prompt.
func ScreenKey(st session.State) Key {
	if k, ok := screenKeys[st]; ok {
		return k
	}
	return KeyMainMenu
}

var screenKeys = map[session.State]Key{
	session.StateMainMenu:         KeyMainMenu,
	session.StateLangMenu:         KeyLangMenu,
	session.StateSettingsMenu:     KeySettingsMenu,
	session.StateConfirmSwitch:    KeyConfirmSwitch,
	session.StateResumePrompt:     KeyResumePrompt,
	session.StateConfirmExpired:   KeyConfirmExpired,
	session.StateConnectCAMenu:    KeyConnectCAMenu,
	session.StateTaxQA:            KeyTaxQAWelcome,
	session.StateAskGSTIN:         KeyAskGSTIN,
	session.StateWaitGSTIN:        KeyAskGSTIN,
	session.StateGSTOnboardFreq:   KeyOnboardFreq,
	session.StateGSTMenu:          KeyGSTMenu,
	session.StateGSTServices:      KeyGSTServices,
	session.StateGSTFilingMenu:    KeyGSTFilingMenu,
	session.StateGSTPeriodMenu:    KeyGSTPeriodMenu,
	session.StateAskGSTPeriod3B:   KeyAskGSTPeriod3B,
	session.StateAskGSTPeriod1:    KeyAskGSTPeriod1,
	session.StateGSTFilingConfirm: KeyGSTFilingConfirm,
	session.StateGSTQueuedReview:  KeyGSTQueued,
	session.StateGSTFilingError:   KeyGSTFilingError,
	session.StateGSTPaymentPrompt: KeyGSTPayment,
	session.StateGSTAnnualMenu:    KeyGSTAnnualMenu,
	session.StateGSTQRMPMenu:      KeyGSTQRMPMenu,
	session.StateNilFilingMenu:    KeyNilFilingMenu,
	session.StateNilFilingConfirm: KeyNilFilingConfirm,
	session.StateNilFilingNoGSTIN: KeyNilFilingNoGSTIN,
	session.StateWaitInvoiceUpload: KeyUploadInvoice,
	session.StateGSTUploadMenu:     KeyUploadMenu,
	session.StateUploadPurchase:    KeyUploadPurchase,
	session.StateSmartUpload:       KeySmartUpload,
	session.StateCreditCheckMenu:   KeyCreditCheckMenu,
	session.StateCreditCheckRun:    KeyCreditCheckRun,
	session.StateMultiGSTINMenu:    KeyMultiGSTINMenu,
	session.StateMultiGSTINAdd:     KeyMultiGSTINAdd,
	session.StateMultiGSTINSummary: KeyMultiGSTINSummary,
	session.StateITRMenu:           KeyITRMenu,
	session.StateITRFilingOptions:  KeyITRFilingOptions,
	session.StateITRAskPAN:         KeyITRAskPAN,
	session.StateITRAskName:        KeyITRAskName,
	session.StateITRAskDOB:         KeyITRAskDOB,
	session.StateITRAskSalary:      KeyITRAskSalary,
	session.StateITRAskOtherInc:    KeyITRAskOtherInc,
	session.StateITRAsk80C:         KeyITRAsk80C,
	session.StateITRAsk80D:         KeyITRAsk80D,
	session.StateITRAskTDS:         KeyITRAskTDS,
	session.StateITRComputing:      KeyITRComputing,
	session.StateITRResult:         KeyITRResult,
	session.StateITRQueuedReview:   KeyITRQueued,
	session.StateITRDocUploadPrompt: KeyDocUploadPrompt,
	session.StateITRDocTypeMenu:     KeyDocTypeMenu,
	session.StateITRDocDetected:     KeyDocDetected,
	session.StateNotificationSettings: KeyNotificationSettings,
	session.StateNotifyFrequency:      KeyNotifyFrequency,
	session.StateRefundMenu:           KeyRefundMenu,
	session.StateNoticeMenu:           KeyNoticeMenu,
	session.StateEInvoiceMenu:         KeyEInvoiceMenu,
	session.StateEWayBillMenu:         KeyEWayBillMenu,
}
