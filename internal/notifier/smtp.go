package notifier

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"go.uber.org/zap"

	"github.com/QASchoolUSA/QAXP-Booking/internal/config"
	"github.com/QASchoolUSA/QAXP-Booking/internal/ics"
	"github.com/QASchoolUSA/QAXP-Booking/internal/logger"
	"github.com/QASchoolUSA/QAXP-Booking/internal/queue"
)

// SMTPNotifier sends two messages per confirmed booking: a confirmation
// to the customer and an alert to the operator.  Each message carries the
// calendar invite as an attachment.  The two sends are independent; one
// failing does not stop the other, and the joined error is reported back
// to the consumer for logging only.
type SMTPNotifier struct {
	smtp          config.SMTPConfig
	operatorName  string
	operatorEmail string
	baseURL       string
	log           *zap.Logger
}

// NewSMTP builds a notifier from the application config.  The SMTP host
// must be set; callers choose the console notifier otherwise.
func NewSMTP(cfg config.Config) *SMTPNotifier {
	return &SMTPNotifier{
		smtp:          cfg.SMTP,
		operatorName:  cfg.OperatorName,
		operatorEmail: cfg.OperatorEmail,
		baseURL:       cfg.BaseURL,
		log:           logger.Get(),
	}
}

// NotifyBookingConfirmed sends the customer and operator messages.
func (n *SMTPNotifier) NotifyBookingConfirmed(ev queue.BookingConfirmedEvent) error {
	invite, err := ics.Invite(ics.EventData{
		ID:       ev.BookingID,
		Name:     ev.Name,
		Email:    ev.Email,
		Date:     ev.Date,
		Time:     ev.Time,
		Duration: ev.Duration,
		Notes:    ev.Notes,
	}, n.baseURL)
	if err != nil {
		// The mail is still worth sending without the attachment.
		n.log.Warn("failed to build calendar invite", zap.Error(err))
		invite = ""
	}

	var errs []error
	if err := n.send(ev.Email, "Booking Confirmed - "+n.operatorName, customerBody(ev), invite); err != nil {
		n.log.Warn("customer confirmation failed",
			zap.String("to", ev.Email), zap.Error(err))
		errs = append(errs, fmt.Errorf("customer: %w", err))
	}
	subject := fmt.Sprintf("New Booking: %s on %s at %s", ev.Name, ev.Date, ev.Time)
	if err := n.send(n.operatorEmail, subject, operatorBody(ev), invite); err != nil {
		n.log.Warn("operator alert failed",
			zap.String("to", n.operatorEmail), zap.Error(err))
		errs = append(errs, fmt.Errorf("operator: %w", err))
	}
	return errors.Join(errs...)
}

func (n *SMTPNotifier) send(to, subject, body, invite string) error {
	msg, err := buildMessage(n.smtp.From, to, subject, body, invite)
	if err != nil {
		return err
	}
	addr := n.smtp.Host + ":" + n.smtp.Port
	var auth smtp.Auth
	if n.smtp.Username != "" {
		auth = smtp.PlainAuth("", n.smtp.Username, n.smtp.Password, n.smtp.Host)
	}
	return smtp.SendMail(addr, auth, n.smtp.From, []string{to}, msg)
}

// buildMessage assembles a multipart/mixed MIME message with a plain-text
// body and, when provided, the invite as a text/calendar attachment.
func buildMessage(from, to, subject, body, invite string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	text, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := text.Write([]byte(body)); err != nil {
		return nil, err
	}

	if invite != "" {
		att, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"text/calendar; charset=utf-8; method=REQUEST"},
			"Content-Disposition":       {`attachment; filename="invite.ics"`},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, err
		}
		enc := base64.StdEncoding.EncodeToString([]byte(invite))
		if _, err := att.Write([]byte(enc)); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func customerBody(ev queue.BookingConfirmedEvent) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Dear %s,\n\n", ev.Name)
	b.WriteString("Your consultation has been successfully booked. Here are the details:\n\n")
	fmt.Fprintf(&b, "  Date:     %s\n", ev.Date)
	fmt.Fprintf(&b, "  Time:     %s\n", ev.Time)
	fmt.Fprintf(&b, "  Duration: %d minutes\n", ev.Duration)
	if ev.Notes != "" {
		fmt.Fprintf(&b, "  Notes:    %s\n", ev.Notes)
	}
	b.WriteString("\nA calendar invite is attached. We look forward to speaking with you.\n")
	return b.String()
}

func operatorBody(ev queue.BookingConfirmedEvent) string {
	var b bytes.Buffer
	b.WriteString("A new consultation has been booked.\n\n")
	fmt.Fprintf(&b, "  Customer: %s <%s>\n", ev.Name, ev.Email)
	fmt.Fprintf(&b, "  Date:     %s\n", ev.Date)
	fmt.Fprintf(&b, "  Time:     %s\n", ev.Time)
	fmt.Fprintf(&b, "  Duration: %d minutes\n", ev.Duration)
	if ev.Notes != "" {
		fmt.Fprintf(&b, "  Notes:    %s\n", ev.Notes)
	}
	fmt.Fprintf(&b, "  Booking:  %s\n", ev.BookingID)
	return b.String()
}
