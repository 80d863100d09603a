package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/vmlandae/reemplazos-backend/internal/logger"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/pkg/apperror"
	"github.com/vmlandae/reemplazos-backend/internal/repository"
	"github.com/vmlandae/reemplazos-backend/internal/sheet"
)

// Eventos que se empujan por WebSocket a los paneles de oficina central.
const (
	EventRequestCreated   = "request.created"
	EventRequestStatus    = "request.status_changed"
	EventCandidatesSent   = "request.candidates_sent"
	EventPoolRefreshed    = "pool.refreshed"
	EventReceiptEvaluated = "receipt.evaluated"
)

// mailSender abstrae el dialer SMTP para poder probarlo sin red.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Broadcaster empuja eventos a los clientes WebSocket conectados.
type Broadcaster interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// CVResolver resuelve la ruta en disco del CV de un candidato.
type CVResolver interface {
	Path(relativePath string) (string, error)
}

// NotificationService envía los candidatos por correo al colegio y empuja
// eventos en tiempo real a oficina central.
type NotificationService struct {
	sender    mailSender
	from      string
	hub       Broadcaster
	cvs       CVResolver
	store     repository.TableStore
	sentTable string
	now       func() time.Time
}

func NewNotificationService(sender mailSender, from string, hub Broadcaster, cvs CVResolver, store repository.TableStore, sentTable string) *NotificationService {
	return &NotificationService{
		sender:    sender,
		from:      from,
		hub:       hub,
		cvs:       cvs,
		store:     store,
		sentTable: sentTable,
		now:       time.Now,
	}
}

func (s *NotificationService) WithClock(now func() time.Time) *NotificationService {
	s.now = now
	return s
}

var candidatesTemplate = template.Must(template.New("candidatos").Parse(`
<p>Estimado/a,</p>
<p>Para el reemplazo <b>#{{.ReplacementID}}</b> ({{.SchoolName}}) encontramos
{{len .Candidates}} candidato(s) que cumplen los requisitos:</p>
<table border="1" cellpadding="4" cellspacing="0">
  <tr><th>Nombre</th><th>Email</th><th>Celular</th><th>Niveles</th><th>Asignaturas</th></tr>
  {{range .Candidates}}
  <tr>
    <td>{{.Nombre}}</td>
    <td>{{.Email}}</td>
    <td>{{if .Celular}}{{.Celular}}{{end}}</td>
    <td>{{range $i, $n := .NivelEducativo}}{{if $i}}, {{end}}{{$n}}{{end}}</td>
    <td>{{range $i, $a := .Asignaturas}}{{if $i}}, {{end}}{{$a}}{{end}}</td>
  </tr>
  {{end}}
</table>
<p>Se adjuntan los currículums disponibles.</p>
`))

type candidatesEmail struct {
	ReplacementID int
	SchoolName    string
	Candidates    []models.Applicant
}

// SendCandidates envía por correo al colegio los candidatos que calzan con
// la solicitud, adjuntando los CVs que no se hayan enviado antes para el
// mismo reemplazo.
func (s *NotificationService) SendCandidates(ctx context.Context, req *models.Request, candidates []models.Applicant, to []string) error {
	if len(to) == 0 {
		return apperror.New(apperror.ErrCodeValidation, "no hay destinatarios para el envío")
	}
	if len(candidates) == 0 {
		return apperror.New(apperror.ErrCodeValidation, "no hay candidatos que enviar")
	}

	already, err := s.sentFor(ctx, req.ReplacementID)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := candidatesTemplate.Execute(&body, candidatesEmail{
		ReplacementID: req.ReplacementID,
		SchoolName:    req.SchoolName,
		Candidates:    candidates,
	}); err != nil {
		return fmt.Errorf("notificaciones: no se pudo generar el correo: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("Candidatos para reemplazo #%d — %s", req.ReplacementID, req.SchoolName))
	m.SetBody("text/html", body.String())

	var newlySent []models.SentCV
	for i := range candidates {
		c := &candidates[i]
		if c.CVFile == "" {
			continue
		}
		if _, ok := already[c.Email]; ok {
			continue
		}
		path, err := s.cvs.Path(c.CVFile)
		if err != nil {
			logger.Log.WithFields(map[string]interface{}{
				"rut":   c.RUT,
				"error": err.Error(),
			}).Warn("notificaciones: CV no disponible, se envía sin adjunto")
			continue
		}
		m.Attach(path, gomail.Rename(fmt.Sprintf("CV_%s%s", sanitizeAttachmentName(c.Nombre), filepath.Ext(path))))
		newlySent = append(newlySent, models.SentCV{
			ReplacementID: req.ReplacementID,
			Email:         c.Email,
			SentAt:        s.now(),
		})
	}

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("notificaciones: no se pudo enviar el correo: %w", err)
	}

	for i := range newlySent {
		if err := s.store.AppendRow(ctx, s.sentTable, sheet.SerializeSentCV(&newlySent[i])); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo registrar el envío del CV")
		}
	}

	logger.Log.WithFields(map[string]interface{}{
		"replacement_id": req.ReplacementID,
		"candidatos":     len(candidates),
		"cvs_adjuntos":   len(newlySent),
	}).Info("notificaciones: candidatos enviados")

	return nil
}

// NotifyUser empuja un evento a los paneles conectados de un usuario.
func (s *NotificationService) NotifyUser(userID uuid.UUID, event string, data any) {
	if s.hub == nil {
		return
	}
	if err := s.hub.BroadcastToUser(userID, event, data); err != nil {
		logger.Log.WithField("error", err.Error()).Warn("notificaciones: no se pudo emitir el evento")
	}
}

// sentFor retorna los correos de candidatos cuyo CV ya fue enviado para el
// reemplazo dado.
func (s *NotificationService) sentFor(ctx context.Context, replacementID int) (map[string]struct{}, error) {
	rows, err := s.store.ReadTable(ctx, s.sentTable)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "no se pudo leer el registro de envíos")
	}
	out := make(map[string]struct{})
	for _, row := range rows {
		cv := sheet.DeserializeSentCV(row)
		if cv.ReplacementID == replacementID {
			out[cv.Email] = struct{}{}
		}
	}
	return out, nil
}

func sanitizeAttachmentName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r == ' ':
			out = append(out, '_')
		case r == '/', r == '\\', r == ':':
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
