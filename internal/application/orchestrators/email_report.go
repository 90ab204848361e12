package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/domain/report"
)

// EmailReportInput carries the recipient and the already-built report.
type EmailReportInput struct {
	To       string
	Document report.Document
}

// EmailReportDeps holds dependencies for EmailReport.
type EmailReportDeps struct {
	Sender email.Sender
	From   string
}

// ExecuteEmailReport renders the report to HTML and sends it to one
// recipient.
// PRE: input.Document was built from a fresh dashboard snapshot
// POST: on success the provider has accepted the message
func ExecuteEmailReport(ctx context.Context, input EmailReportInput, deps EmailReportDeps) error {
	if input.To == "" {
		return errors.New("recipient address is required")
	}

	html, err := input.Document.HTML()
	if err != nil {
		return err
	}

	result, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{input.To},
		From:    deps.From,
		Subject: input.Document.Title,
		HTML:    html,
	})
	if err != nil {
		slog.Warn("report_event", "event", "report_email_failed", "to", input.To, "error", err)
		return err
	}

	slog.Info("report_event", "event", "report_emailed", "to", input.To, "message_id", result.MessageID)
	return nil
}
