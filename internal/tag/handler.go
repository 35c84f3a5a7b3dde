package tag

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frahmantamala/document-management/internal/transport"
)

type ServiceAPI interface {
	GetAllTags() ([]TagResponse, error)
	GetTagByID(id int64) (*TagResponse, error)
	CreateTag(dto *CreateTagDTO) (*TagResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Service.GetAllTags()
	if err != nil {
		h.Logger.Error("GetTags: failed to get tags", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get tags")
		return
	}

	h.WriteJSON(w, http.StatusOK, TagsResponse{
		Tags: tags,
	})
}

func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var dto CreateTagDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateTag: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateTag(&dto)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Msg)
			return
		}
		h.Logger.Error("CreateTag: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}
