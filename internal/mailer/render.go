// internal/mailer/render.go
package mailer

import (
	"fmt"

	"github.com/campusops/admissions-backend/internal/event"
)

const statusChangedSubject = "Your Application Status Has Changed"

// RenderStatusChanged builds the subject and HTML body for a status-change
// email. Pure function of the event, so a redelivered event renders the
// identical message.
func RenderStatusChanged(evt event.StatusChangedEvent) (subject, body string) {
	body = fmt.Sprintf(`<html>
<body>
<h2>Dear %s,</h2>
<p>Your application status has been updated.</p>
<p><strong>Previous Status:</strong> %s</p>
<p><strong>New Status:</strong> %s</p>
<p><strong>Updated At:</strong> %s UTC</p>
<p>Please log in to your account for more details.</p>
<br/>
<p>Best regards,<br/>University Admissions Team</p>
</body>
</html>`,
		evt.ApplicantName,
		evt.OldStatus,
		evt.NewStatus,
		evt.OccurredAt.UTC().Format("2006-01-02 15:04:05"),
	)
	return statusChangedSubject, body
}
