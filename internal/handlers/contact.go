package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"barrierfree/internal/middleware"
	"barrierfree/internal/models"
	"barrierfree/internal/render"
)

// maxContactBody bounds the size of a contact form submission.
const maxContactBody = 64 << 10

// Contact renders the contact page with an empty form. The page carries a
// CSRF token, so it is never served from the page cache.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	p.renderContact(w, r, http.StatusOK, models.ContactMessage{}, nil, "")
}

// ContactSubmit validates the form, logs the message under a reference id
// and thanks the visitor. Nothing is stored or forwarded.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	msg := normalizeContact(models.ContactMessage{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	})

	if errs := validateContact(msg); len(errs) > 0 {
		p.renderContact(w, r, http.StatusUnprocessableEntity, msg, errs, "")
		return
	}

	ref := uuid.NewString()
	slog.Info("contact message received",
		"reference", ref,
		"name", msg.Name,
		"email", msg.Email,
		"subject", msg.Subject,
		"message", msg.Message,
		"request_id", middleware.RequestIDFromCtx(r.Context()),
	)

	p.renderContact(w, r, http.StatusOK, models.ContactMessage{}, nil, ref)
}

func (p *Public) renderContact(w http.ResponseWriter, r *http.Request, status int, form models.ContactMessage, errs map[string]string, ref string) {
	if errs == nil {
		errs = map[string]string{}
	}
	data := &render.PageData{
		Title:   "Contact",
		Section: "contact",
		Data: map[string]any{
			"Form":     form,
			"Errors":   errs,
			"Subjects": models.ContactSubjects,
		},
	}
	if ref != "" {
		data.Data["Reference"] = ref
		data.Flashes = []render.Flash{{Type: "success", Message: "Your message has been sent."}}
	}
	if len(errs) > 0 {
		data.Flashes = []render.Flash{{Type: "error", Message: "Please correct the highlighted fields."}}
	}
	p.renderer.Page(w, r, status, "contact", data)
}
