// Package console serves the list, form and confirmation screens of one
// entity kind over HTTP. View state lives in the caller's workspace.
package console

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/rbac-console/internal/observability"
	"github.com/odyssey-erp/rbac-console/internal/shared"
	"github.com/odyssey-erp/rbac-console/internal/table"
	"github.com/odyssey-erp/rbac-console/internal/view"
	"github.com/odyssey-erp/rbac-console/internal/workspace"
)

const pageTemplate = "pages/table.html"

// Params groups the dependencies shared by every console handler.
type Params struct {
	Logger     *slog.Logger
	Templates  *view.Engine
	CSRF       *shared.CSRFManager
	Workspaces *workspace.Manager
	Metrics    *observability.Metrics
	PageSize   int
	// Actor is stamped as createdBy on new records.
	Actor string
	Clock func() time.Time
	// NewID overrides the record id generator.
	NewID func() string
}

// Handler manages the endpoints of one entity kind.
type Handler[T table.Record] struct {
	def        table.Definition[T]
	seed       []T
	logger     *slog.Logger
	templates  *view.Engine
	csrf       *shared.CSRFManager
	workspaces *workspace.Manager
	metrics    *observability.Metrics
	pageSize   int
	actor      string
	clock      func() time.Time
	opts       []table.Option
}

// board is the view state kept in a workspace: the controller and the last
// rendered query, which mutations redirect back to.
type board[T table.Record] struct {
	ctl   *table.Controller[T]
	query table.Query
}

// NewHandler builds Handler instance.
func NewHandler[T table.Record](def table.Definition[T], seed []T, params Params) *Handler[T] {
	h := &Handler[T]{
		def:        def,
		seed:       seed,
		logger:     params.Logger,
		templates:  params.Templates,
		csrf:       params.CSRF,
		workspaces: params.Workspaces,
		metrics:    params.Metrics,
		pageSize:   params.PageSize,
		actor:      params.Actor,
		clock:      params.Clock,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.pageSize <= 0 {
		h.pageSize = shared.DefaultPerPage
	}
	if h.actor == "" {
		h.actor = "admin"
	}
	if h.clock == nil {
		h.clock = time.Now
	}
	if params.NewID != nil {
		h.opts = append(h.opts, table.WithIDGenerator(params.NewID))
	}
	return h
}

// Kind returns the route segment the handler is mounted under.
func (h *Handler[T]) Kind() string {
	return h.def.Kind
}

// MountRoutes registers the console routes.
func (h *Handler[T]) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.submit)
	r.Get("/new", h.openForm)
	r.Post("/new/cancel", h.cancelForm)
	r.Post("/delete/confirm", h.confirmDelete)
	r.Post("/delete/cancel", h.cancelDelete)
	r.Get("/{id}/edit", h.edit)
	r.Post("/{id}/delete", h.requestDelete)
}

func (h *Handler[T]) base() string {
	return "/" + h.def.Kind
}

func (h *Handler[T]) open() (*board[T], error) {
	ctl, err := table.NewController(h.def, h.pageSize, h.seed, h.opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s view: %w", h.def.Kind, err)
	}
	h.logger.Debug("open view", slog.String("kind", h.def.Kind))
	return &board[T]{ctl: ctl}, nil
}

// withBoard runs fn against the caller's view, entering it when another view
// or none is active.
func (h *Handler[T]) withBoard(r *http.Request, fn func(*board[T])) error {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return shared.ErrSessionMissing
	}
	return workspace.Enter(h.workspaces.Get(sess.ID), h.def.Kind, h.open, fn)
}

func (h *Handler[T]) list(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r.URL.Query())
	var data pageData
	err := h.withBoard(r, func(b *board[T]) {
		data = h.present(b, q)
	})
	if err != nil {
		h.fail(w, "open view", err)
		return
	}
	h.render(w, r, data, http.StatusOK)
}

func (h *Handler[T]) openForm(w http.ResponseWriter, r *http.Request) {
	var data pageData
	err := h.withBoard(r, func(b *board[T]) {
		b.ctl.OpenForm()
		data = h.present(b, b.query)
	})
	if err != nil {
		h.fail(w, "open view", err)
		return
	}
	h.render(w, r, data, http.StatusOK)
}

func (h *Handler[T]) cancelForm(w http.ResponseWriter, r *http.Request) {
	var location string
	err := h.withBoard(r, func(b *board[T]) {
		b.ctl.CancelForm()
		location = href(h.base(), b.query)
	})
	if err != nil {
		h.fail(w, "open view", err)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (h *Handler[T]) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var (
		rec       T
		label     string
		added     bool
		submitErr error
		location  string
		data      pageData
	)
	err := h.withBoard(r, func(b *board[T]) {
		rec, added, submitErr = b.ctl.Submit(r.PostForm, h.actor, h.clock())
		label = b.ctl.Label(rec)
		location = href(h.base(), b.query)
		if submitErr == nil && !added {
			data = h.present(b, b.query)
		}
	})
	if err != nil {
		h.fail(w, "open view", err)
		return
	}

	switch {
	case errors.Is(submitErr, table.ErrFormClosed):
		h.redirectWithFlash(w, r, location, "info", "The form is no longer open.")
	case errors.Is(submitErr, table.ErrDuplicateID):
		h.metrics.RecordMutation(h.def.Kind, observability.OpDuplicate)
		h.logger.Error("duplicate record id", slog.String("kind", h.def.Kind), slog.String("id", rec.RecordID()), slog.Any("error", submitErr))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	case submitErr != nil:
		h.fail(w, "submit record", submitErr)
	case !added:
		h.metrics.RecordMutation(h.def.Kind, observability.OpRejected)
		h.logger.Debug("record rejected", slog.String("kind", h.def.Kind), slog.Int("fields", data.Form.Failed))
		h.render(w, r, data, http.StatusUnprocessableEntity)
	default:
		h.metrics.RecordMutation(h.def.Kind, observability.OpAdded)
		h.logger.Info("record added", slog.String("kind", h.def.Kind), slog.String("id", rec.RecordID()))
		h.redirectWithFlash(w, r, location, "success", fmt.Sprintf("%s %q added.", h.def.Singular, label))
	}
}

func (h *Handler[T]) edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var (
		rec      T
		label    string
		found    bool
		location string
	)
	err := h.withBoard(r, func(b *board[T]) {
		if rec, found = b.ctl.Record(id); found {
			label = b.ctl.Label(rec)
		}
		location = href(h.base(), b.query)
	})
	if err != nil {
		h.fail(w, "open view", err)
		return
	}
	switch {
	case !found:
		h.redirectWithFlash(w, r, location, "error", fmt.Sprintf("%s not found.", h.def.Singular))
	case h.def.OnEdit == nil:
		h.redirectWithFlash(w, r, location, "info", "Editing is not available.")
	default:
		if err := h.def.OnEdit(r.Context(), rec); err != nil {
			h.logger.Error("edit record", slog.String("kind", h.def.Kind), slog.String("id", id), slog.Any("error", err))
			h.redirectWithFlash(w, r, location, "error", fmt.Sprintf("Could not edit %s.", label))
			return
		}
		h.redirectWithFlash(w, r, location, "success", fmt.Sprintf("%s %q updated.", h.def.Singular, label))
	}
}

func (h *Handler[T]) requestDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var location string
	err := h.withBoard(r, func(b *board[T]) {
		b.ctl.RequestDelete(id)
		location = href(h.base(), b.query)
	})
	if err != nil {
		h.fail(w, "open view", err)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (h *Handler[T]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	var (
		id       string
		label    string
		removed  bool
		location string
	)
	err := h.withBoard(r, func(b *board[T]) {
		if pending, ok := b.ctl.PendingDelete(); ok {
			if rec, found := b.ctl.Record(pending); found {
				label = b.ctl.Label(rec)
			}
		}
		id, removed = b.ctl.ConfirmDelete()
		location = href(h.base(), b.query)
	})
	if err != nil {
		h.fail(w, "open view", err)
		return
	}
	switch {
	case id == "":
		http.Redirect(w, r, location, http.StatusSeeOther)
	case removed:
		h.metrics.RecordMutation(h.def.Kind, observability.OpDeleted)
		h.logger.Info("record deleted", slog.String("kind", h.def.Kind), slog.String("id", id))
		h.redirectWithFlash(w, r, location, "success", fmt.Sprintf("%s %q deleted.", h.def.Singular, label))
	default:
		h.redirectWithFlash(w, r, location, "info", fmt.Sprintf("%s was already removed.", h.def.Singular))
	}
}

func (h *Handler[T]) cancelDelete(w http.ResponseWriter, r *http.Request) {
	var location string
	err := h.withBoard(r, func(b *board[T]) {
		b.ctl.CancelDelete()
		location = href(h.base(), b.query)
	})
	if err != nil {
		h.fail(w, "open view", err)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (h *Handler[T]) render(w http.ResponseWriter, r *http.Request, data pageData, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	data.CSRFToken = csrfToken
	viewData := view.TemplateData{Title: h.def.Title, CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, Data: data}
	if err := h.templates.RenderStatus(w, status, pageTemplate, viewData); err != nil {
		h.fail(w, "render template", err)
	}
}

func (h *Handler[T]) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (h *Handler[T]) fail(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, slog.String("kind", h.def.Kind), slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
