// Package email: envío de la notificación por entry creada. El dispatch es
// best-effort y fire-and-forget; un fallo aquí nunca afecta la respuesta HTTP
// de la petición que lo disparó.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/timesheet"
	"github.com/jhoicas/timesheet-api/pkg/config"
)

// Notifier puerto de notificaciones de entries creadas.
type Notifier interface {
	EntryCreated(ctx context.Context, entry *entity.TimesheetEntry, company *entity.Company) error
}

// NewNotifier devuelve el notifier SMTP si hay host configurado; si no, uno
// que solo escribe al log (entornos de desarrollo sin credenciales).
func NewNotifier(cfg config.SMTPConfig, log zerolog.Logger) Notifier {
	if cfg.Host == "" {
		return &LogNotifier{log: log}
	}
	return &SMTPNotifier{cfg: cfg, log: log}
}

// SMTPNotifier envía el resumen de la entry por SMTP (gomail).
type SMTPNotifier struct {
	cfg config.SMTPConfig
	log zerolog.Logger
}

// EntryCreated envía el email a la company si tiene notificaciones habilitadas
// y un destinatario configurado; si no, lo omite en silencio.
func (n *SMTPNotifier) EntryCreated(ctx context.Context, entry *entity.TimesheetEntry, company *entity.Company) error {
	if !company.NotificationsEnabled || company.NotificationEmail == "" {
		n.log.Debug().Str("company", company.Name).Msg("notificaciones deshabilitadas para la company")
		return nil
	}

	from := n.cfg.From
	if from == "" {
		from = n.cfg.User
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", company.NotificationEmail)
	m.SetHeader("Subject", fmt.Sprintf("New Timesheet Entry - %s - %s",
		entry.JobID, entry.EntryDate.Format("2006-01-02")))
	m.SetBody("text/plain", buildBody(entry, company))

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar email a %s: %w", company.NotificationEmail, err)
	}
	n.log.Info().
		Str("to", company.NotificationEmail).
		Str("unique_id", entry.UniqueID).
		Msg("email de timesheet enviado")
	return nil
}

func buildBody(entry *entity.TimesheetEntry, company *entity.Company) string {
	var lines []string
	for i, iv := range entry.Intervals {
		lines = append(lines, fmt.Sprintf("    %d. Time In: %s | Time Out: %s", i+1, iv.TimeIn, iv.TimeOut))
	}
	total := timesheet.FormatHours(timesheet.TotalMinutes(entry.Intervals))

	return strings.TrimSpace(fmt.Sprintf(`
New Timesheet Entry Submitted
==============================

Entry ID: %s
Job ID: %s
Date: %s

Crew Chief: %s
Company: %s

Time Entries:
%s

Total Hours: %s

---
This is an automated notification from the Timesheet Management System.
`,
		entry.UniqueID,
		entry.JobID,
		entry.EntryDate.Format("2006-01-02"),
		entry.CrewChiefName,
		company.Name,
		strings.Join(lines, "\n"),
		total,
	))
}

// LogNotifier registra la notificación en el log sin enviarla.
type LogNotifier struct {
	log zerolog.Logger
}

// EntryCreated escribe al log lo que se habría enviado.
func (n *LogNotifier) EntryCreated(ctx context.Context, entry *entity.TimesheetEntry, company *entity.Company) error {
	n.log.Info().
		Str("unique_id", entry.UniqueID).
		Str("job_id", entry.JobID).
		Str("company", company.Name).
		Msg("notificación de entry (SMTP no configurado, solo log)")
	return nil
}
