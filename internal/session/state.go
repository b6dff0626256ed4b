// SPDX-License-Identifier: MIT

package session

// State identifies a single screen or step in the conversation.
type State string

const (
	// Root and session-level states
	StateMainMenu         State = "MAIN_MENU"
	StateLangMenu         State = "LANG_MENU"
	StateSettingsMenu     State = "SETTINGS_MENU"
	StateConfirmSwitch    State = "CONFIRM_SWITCH_MODULE"
	StateResumePrompt     State = "SESSION_RESUME_PROMPT"
	StateConfirmExpired   State = "SENSITIVE_CONFIRM_EXPIRED"
	StateConnectCAMenu    State = "CONNECT_CA_MENU"
	StateTaxQA            State = "TAX_QA"

	// GST onboarding
	StateAskGSTIN         State = "ASK_GSTIN"
	StateWaitGSTIN        State = "WAIT_GSTIN"
	StateGSTOnboardFreq   State = "GST_ONBOARD_FREQUENCY"

	// GST filing
	StateGSTMenu          State = "GST_MENU"
	StateGSTServices      State = "GST_SERVICES"
	StateGSTFilingMenu    State = "GST_FILING_MENU"
	StateGSTPeriodMenu    State = "GST_PERIOD_MENU"
	StateAskGSTPeriod3B   State = "ASK_GST_PERIOD_3B"
	StateAskGSTPeriod1    State = "ASK_GST_PERIOD_1"
	StateGSTFilingConfirm State = "GST_FILING_CONFIRM"
	StateGSTQueuedReview  State = "GST_QUEUED_FOR_REVIEW"
	StateGSTFilingError   State = "GST_FILING_ERROR"
	StateGSTPaymentPrompt State = "GST_PAYMENT_PROMPT"
	StateGSTAnnualMenu    State = "GST_ANNUAL_MENU"
	StateGSTQRMPMenu      State = "GST_QRMP_MENU"

	// NIL filing
	StateNilFilingMenu    State = "NIL_FILING_MENU"
	StateNilFilingConfirm State = "NIL_FILING_CONFIRM"
	StateNilFilingNoGSTIN State = "NIL_FILING_NO_GSTIN"

	// Invoice / document upload
	StateWaitInvoiceUpload State = "WAIT_INVOICE_UPLOAD"
	StateGSTUploadMenu     State = "GST_UPLOAD_MENU"
	StateUploadPurchase    State = "GST_UPLOAD_PURCHASE_PROMPT"
	StateSmartUpload       State = "SMART_UPLOAD"

	// GST credit check
	StateCreditCheckMenu State = "GST_CREDIT_CHECK_MENU"
	StateCreditCheckRun  State = "GST_CREDIT_CHECK_RUN"

	// Multi-GSTIN management
	StateMultiGSTINMenu    State = "MULTI_GSTIN_MENU"
	StateMultiGSTINAdd     State = "MULTI_GSTIN_ADD"
	StateMultiGSTINSummary State = "MULTI_GSTIN_SUMMARY"

	// ITR filing
	StateITRMenu          State = "ITR_MENU"
	StateITRFilingOptions State = "ITR_FILING_OPTIONS"
	StateITRAskPAN        State = "ITR_ASK_PAN"
	StateITRAskName       State = "ITR_ASK_NAME"
	StateITRAskDOB        State = "ITR_ASK_DOB"
	StateITRAskSalary     State = "ITR_ASK_SALARY"
	StateITRAskOtherInc   State = "ITR_ASK_OTHER_INCOME"
	StateITRAsk80C        State = "ITR_ASK_80C"
	StateITRAsk80D        State = "ITR_ASK_80D"
	StateITRAskTDS        State = "ITR_ASK_TDS"
	StateITRComputing     State = "ITR_COMPUTING"
	StateITRResult        State = "ITR_RESULT"
	StateITRQueuedReview  State = "ITR_QUEUED_FOR_REVIEW"

	// ITR document upload
	StateITRDocUploadPrompt State = "ITR_DOC_UPLOAD_PROMPT"
	StateITRDocTypeMenu     State = "ITR_DOC_TYPE_MENU"
	StateITRDocDetected     State = "ITR_DOC_FORM_DETECTED"

	// Notifications and misc verticals
	StateNotificationSettings State = "NOTIFICATION_SETTINGS"
	StateNotifyFrequency      State = "NOTIFY_FREQUENCY"
	StateRefundMenu           State = "REFUND_MENU"
	StateNoticeMenu           State = "NOTICE_MENU"
	StateEInvoiceMenu         State = "EINVOICE_MENU"
	StateEWayBillMenu         State = "EWAYBILL_MENU"
)

var knownStates = map[State]struct{}{
	StateMainMenu: {}, StateLangMenu: {}, StateSettingsMenu: {},
	StateConfirmSwitch: {}, StateResumePrompt: {}, StateConfirmExpired: {},
	StateConnectCAMenu: {}, StateTaxQA: {},
	StateAskGSTIN: {}, StateWaitGSTIN: {}, StateGSTOnboardFreq: {},
	StateGSTMenu: {}, StateGSTServices: {}, StateGSTFilingMenu: {},
	StateGSTPeriodMenu: {}, StateAskGSTPeriod3B: {}, StateAskGSTPeriod1: {},
	StateGSTFilingConfirm: {}, StateGSTQueuedReview: {}, StateGSTFilingError: {},
	StateGSTPaymentPrompt: {}, StateGSTAnnualMenu: {}, StateGSTQRMPMenu: {},
	StateNilFilingMenu: {}, StateNilFilingConfirm: {}, StateNilFilingNoGSTIN: {},
	StateWaitInvoiceUpload: {}, StateGSTUploadMenu: {}, StateUploadPurchase: {},
	StateSmartUpload: {},
	StateCreditCheckMenu: {}, StateCreditCheckRun: {},
	StateMultiGSTINMenu: {}, StateMultiGSTINAdd: {}, StateMultiGSTINSummary: {},
	StateITRMenu: {}, StateITRFilingOptions: {}, StateITRAskPAN: {},
	StateITRAskName: {}, StateITRAskDOB: {}, StateITRAskSalary: {},
	StateITRAskOtherInc: {}, StateITRAsk80C: {}, StateITRAsk80D: {},
	StateITRAskTDS: {}, StateITRComputing: {}, StateITRResult: {},
	StateITRQueuedReview: {},
	StateITRDocUploadPrompt: {}, StateITRDocTypeMenu: {}, StateITRDocDetected: {},
	StateNotificationSettings: {}, StateNotifyFrequency: {},
	StateRefundMenu: {}, StateNoticeMenu: {},
	StateEInvoiceMenu: {}, StateEWayBillMenu: {},
}

// Known reports whether s is a member of the state set.
func (s State) Known() bool {
	_, ok := knownStates[s]
	return ok
}

// KnownStates returns the full state set. The returned slice is a copy.
func KnownStates() []State {
	out := make([]State, 0, len(knownStates))
	for s := range knownStates {
		out = append(out, s)
	}
	return out
}
