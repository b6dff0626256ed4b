// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/facade"
	"github.com/taxsetu/waflow/internal/session"
)

const validGSTIN = "27AAPFU0939F1ZV"

func text(t string) engine.Event {
	return engine.Event{Type: engine.EventText, Text: t}
}

func media(ref string) engine.Event {
	return engine.Event{Type: engine.EventImage, MediaRef: ref}
}

func joined(resp *engine.Response) string {
	var out string
	for _, m := range resp.Messages {
		out += m.Text + "\n"
	}
	return out
}

func TestChainOrderIsStable(t *testing.T) {
	chain := Chain(facade.Static{}, facade.Static{}, facade.Static{}, facade.Static{})

	var names []string
	for _, h := range chain {
		names = append(names, h.Name())
	}
	require.Equal(t, []string{"resume", "gst", "itr", "upload", "multi_gstin", "notify"}, names)
}

func TestGSTOnboardingFlow(t *testing.T) {
	h := &GSTHandler{Validator: facade.Static{}, Tax: facade.Static{}}
	ctx := context.Background()

	s := session.New("u1")
	s.State = session.StateAskGSTIN

	resp, err := h.Handle(ctx, s, text("not-a-gstin"))
	require.NoError(t, err)
	require.Contains(t, joined(resp), "valid GSTIN")
	require.Equal(t, session.StateAskGSTIN, s.State, "rejection re-prompts without a state change")

	resp, err = h.Handle(ctx, s, text(validGSTIN))
	require.NoError(t, err)
	require.Contains(t, joined(resp), validGSTIN)
	require.Equal(t, session.StateGSTOnboardFreq, s.State)
	require.Equal(t, validGSTIN, s.Data[dataGSTIN])

	resp, err = h.Handle(ctx, s, text("1"))
	require.NoError(t, err)
	require.Equal(t, session.StateGSTMenu, s.State)
	require.Equal(t, "monthly", s.Data[dataFilingFreq])
	require.Contains(t, joined(resp), "GST Menu")
}

func TestGSTFilingToQueued(t *testing.T) {
	h := &GSTHandler{Validator: facade.Static{}, Tax: facade.Static{}}
	ctx := context.Background()

	s := session.New("u1")
	s.State = session.StateAskGSTPeriod3B
	s.Data[dataGSTIN] = validGSTIN

	resp, err := h.Handle(ctx, s, text("07-2026"))
	require.NoError(t, err)
	require.Contains(t, joined(resp), "YYYY-MM")
	require.Equal(t, session.StateAskGSTPeriod3B, s.State)

	resp, err = h.Handle(ctx, s, text("2026-07"))
	require.NoError(t, err)
	require.Equal(t, session.StateGSTFilingConfirm, s.State)
	require.Equal(t, "2026-07", s.Data[dataGSTPeriod])
	require.Contains(t, joined(resp), "Net payable")

	resp, err = h.Handle(ctx, s, text("1"))
	require.NoError(t, err)
	require.Equal(t, session.StateGSTQueuedReview, s.State)
	require.Contains(t, joined(resp), "queued for CA review")
}

func TestNilFilingConfirm(t *testing.T) {
	h := &GSTHandler{Validator: facade.Static{}, Tax: facade.Static{}}
	ctx := context.Background()

	s := session.New("u1")
	s.State = session.StateNilFilingMenu
	s.Data[dataGSTIN] = validGSTIN
	s.Stack = []session.State{session.StateGSTMenu}

	resp, err := h.Handle(ctx, s, text("1"))
	require.NoError(t, err)
	require.Equal(t, session.StateNilFilingConfirm, s.State)
	require.Contains(t, joined(resp), "zero sales")

	resp, err = h.Handle(ctx, s, text("yes"))
	require.NoError(t, err)
	require.Contains(t, joined(resp), "NIL return queued")
	require.Equal(t, session.StateGSTMenu, s.State, "completion unwinds to where the flow began")
	require.Empty(t, s.Stack)
}

func TestGSTMenuUnknownChoicePasses(t *testing.T) {
	h := &GSTHandler{Validator: facade.Static{}, Tax: facade.Static{}}

	s := session.New("u1")
	s.State = session.StateGSTMenu

	resp, err := h.Handle(context.Background(), s, text("99"))
	require.NoError(t, err)
	require.Nil(t, resp, "unknown input passes to the fallback table")
	require.Equal(t, session.StateGSTMenu, s.State)
}

func TestITRGuidedFlow(t *testing.T) {
	h := &ITRHandler{Validator: facade.Static{}, Tax: facade.Static{}}
	ctx := context.Background()

	s := session.New("u1")
	s.State = session.StateITRAskPAN

	resp, err := h.Handle(ctx, s, text("bogus"))
	require.NoError(t, err)
	require.Contains(t, joined(resp), "valid PAN")
	require.Equal(t, session.StateITRAskPAN, s.State)

	steps := []struct {
		input string
		next  session.State
	}{
		{"ABCDE1234F", session.StateITRAskName},
		{"Asha Mehta", session.StateITRAskDOB},
		{"14-08-1990", session.StateITRAskSalary},
		{"9,60,000", session.StateITRAskOtherInc},
		{"none", session.StateITRAsk80C},
		{"150000", session.StateITRAsk80D},
		{"25000", session.StateITRAskTDS},
	}
	for _, step := range steps {
		resp, err = h.Handle(ctx, s, text(step.input))
		require.NoError(t, err)
		require.Equal(t, step.next, s.State, "after input %q", step.input)
	}

	resp, err = h.Handle(ctx, s, text("80000"))
	require.NoError(t, err)
	require.Equal(t, session.StateITRResult, s.State)
	require.Contains(t, joined(resp), "Taxable income")

	resp, err = h.Handle(ctx, s, text("1"))
	require.NoError(t, err)
	require.Equal(t, session.StateITRQueuedReview, s.State)
	require.Contains(t, joined(resp), "queued for CA review")
}

func TestITRRejectsNonNumericAmount(t *testing.T) {
	h := &ITRHandler{Validator: facade.Static{}, Tax: facade.Static{}}

	s := session.New("u1")
	s.State = session.StateITRAskSalary

	resp, err := h.Handle(context.Background(), s, text("a lot"))
	require.NoError(t, err)
	require.Contains(t, joined(resp), "plain number")
	require.Equal(t, session.StateITRAskSalary, s.State)
}

func TestUploadFlow(t *testing.T) {
	h := &UploadHandler{Parser: facade.Static{}}
	ctx := context.Background()

	s := session.New("u1")
	s.State = session.StateWaitInvoiceUpload

	resp, err := h.Handle(ctx, s, text("here you go"))
	require.NoError(t, err)
	require.Contains(t, joined(resp), "photo or PDF")
	require.Equal(t, session.StateWaitInvoiceUpload, s.State)

	resp, err = h.Handle(ctx, s, media("wa-media-123"))
	require.NoError(t, err)
	require.Contains(t, joined(resp), "recorded")
	require.Equal(t, session.StateWaitInvoiceUpload, s.State, "stays put for the next upload")
}

func TestITRDocUpload(t *testing.T) {
	h := &UploadHandler{Parser: facade.Static{}}
	ctx := context.Background()

	s := session.New("u1")
	s.State = session.StateITRDocUploadPrompt

	resp, err := h.Handle(ctx, s, media("wa-media-9"))
	require.NoError(t, err)
	require.Equal(t, session.StateITRDocTypeMenu, s.State)

	resp, err = h.Handle(ctx, s, text("1"))
	require.NoError(t, err)
	require.Equal(t, session.StateITRDocDetected, s.State)
	require.Contains(t, joined(resp), "Form 16")

	resp, err = h.Handle(ctx, s, text("1"))
	require.NoError(t, err)
	require.Equal(t, session.StateITRMenu, s.State)
}

func TestMultiGSTINAddAndList(t *testing.T) {
	h := &MultiGSTINHandler{Validator: facade.Static{}}
	ctx := context.Background()

	s := session.New("u1")
	s.State = session.StateMultiGSTINMenu

	resp, err := h.Handle(ctx, s, text("2"))
	require.NoError(t, err)
	require.Equal(t, session.StateMultiGSTINAdd, s.State)

	resp, err = h.Handle(ctx, s, text(validGSTIN))
	require.NoError(t, err)
	require.Equal(t, session.StateMultiGSTINMenu, s.State)
	require.Contains(t, joined(resp), "added")
	require.Equal(t, validGSTIN, s.Data[engine.DataKeyGSTIN], "first GSTIN becomes active")

	resp, err = h.Handle(ctx, s, text("1"))
	require.NoError(t, err)
	require.Equal(t, session.StateMultiGSTINSummary, s.State)
	require.Contains(t, joined(resp), validGSTIN)
	require.Contains(t, joined(resp), "(active)")
}

func TestNotifyFrequency(t *testing.T) {
	h := &NotifyHandler{Notifier: facade.Static{}}
	ctx := context.Background()

	s := session.New("u1")
	s.State = session.StateNotificationSettings
	s.Stack = []session.State{session.StateSettingsMenu}

	resp, err := h.Handle(ctx, s, text("1"))
	require.NoError(t, err)
	require.Equal(t, session.StateNotifyFrequency, s.State)

	resp, err = h.Handle(ctx, s, text("2"))
	require.NoError(t, err)
	require.Contains(t, joined(resp), "saved")
	require.Equal(t, session.StateSettingsMenu, s.State, "saving unwinds to the settings menu")
}

func TestResumeChoices(t *testing.T) {
	h := &ResumeHandler{}
	ctx := context.Background()

	t.Run("continue", func(t *testing.T) {
		s := session.New("u1")
		s.State = session.StateResumePrompt
		s.Data[engine.DataKeyResumeState] = string(session.StateITRAskSalary)

		_, err := h.Handle(ctx, s, text("1"))
		require.NoError(t, err)
		require.Equal(t, session.StateITRAskSalary, s.State)
		require.NotContains(t, s.Data, engine.DataKeyResumeState)
	})

	t.Run("start over", func(t *testing.T) {
		s := session.New("u1")
		s.State = session.StateResumePrompt
		s.Data[engine.DataKeyResumeState] = string(session.StateITRAskSalary)

		_, err := h.Handle(ctx, s, text("2"))
		require.NoError(t, err)
		require.Equal(t, session.StateITRMenu, s.State, "restarting lands on the vertical's entry screen")
	})

	t.Run("main menu", func(t *testing.T) {
		s := session.New("u1")
		s.State = session.StateResumePrompt
		s.Data[engine.DataKeyResumeState] = string(session.StateGSTFilingMenu)

		_, err := h.Handle(ctx, s, text("3"))
		require.NoError(t, err)
		require.Equal(t, session.StateMainMenu, s.State)
	})
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"250000", 250000, true},
		{"2,50,000", 250000, true},
		{"₹5000", 5000, true},
		{"none", 0, true},
		{"na", 0, true},
		{"-5", 0, false},
		{"lots", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseAmount(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
