package document

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/document-management/internal/auth"
	"github.com/frahmantamala/document-management/internal/transport"
	"github.com/frahmantamala/document-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateDocument(ownerID int64, dto CreateDocumentDTO) (*Document, error)
	GetDocument(userID, documentID int64) (*Document, error)
	ListDocuments(userID int64, limit, offset int) ([]*Document, error)
	AddVersion(userID, documentID int64, dto AddVersionDTO) (*DocumentVersion, error)
	ListVersions(userID, documentID int64) ([]*DocumentVersion, error)
	AttachTag(userID, documentID, tagID int64) error
	DetachTag(userID, documentID, tagID int64) error
	GrantUserAccess(actorID, documentID int64, dto GrantUserAccessDTO) error
	GrantDepartmentAccess(actorID, documentID int64, dto GrantDepartmentAccessDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteUnauthorized(w, "unauthorized")
		return
	}

	var dto CreateDocumentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.Service.CreateDocument(user.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteUnauthorized(w, "unauthorized")
		return
	}

	documentID, err := h.documentID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	doc, err := h.Service.GetDocument(user.ID, documentID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteUnauthorized(w, "unauthorized")
		return
	}

	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	docs, err := h.Service.ListDocuments(user.ID, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, docs)
}

func (h *Handler) AddVersion(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteUnauthorized(w, "unauthorized")
		return
	}

	documentID, err := h.documentID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	var dto AddVersionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	version, err := h.Service.AddVersion(user.ID, documentID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, version)
}

func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteUnauthorized(w, "unauthorized")
		return
	}

	documentID, err := h.documentID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	versions, err := h.Service.ListVersions(user.ID, documentID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, versions)
}

func (h *Handler) AttachTag(w http.ResponseWriter, r *http.Request) {
	h.tagOp(w, r, h.Service.AttachTag)
}

func (h *Handler) DetachTag(w http.ResponseWriter, r *http.Request) {
	h.tagOp(w, r, h.Service.DetachTag)
}

func (h *Handler) tagOp(w http.ResponseWriter, r *http.Request, op func(userID, documentID, tagID int64) error) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteUnauthorized(w, "unauthorized")
		return
	}

	documentID, err := h.documentID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	tagID, err := strconv.ParseInt(chi.URLParam(r, "tagID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid tag ID")
		return
	}

	if err := op(user.ID, documentID, tagID); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GrantUserAccess(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteUnauthorized(w, "unauthorized")
		return
	}

	documentID, err := h.documentID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	var dto GrantUserAccessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.GrantUserAccess(user.ID, documentID, dto); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GrantDepartmentAccess(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteUnauthorized(w, "unauthorized")
		return
	}

	documentID, err := h.documentID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	var dto GrantDepartmentAccessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.GrantDepartmentAccess(user.ID, documentID, dto); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	if _, ok := err.(ValidationError); ok {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.HandleServiceError(w, err)
}

func (h *Handler) documentID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
