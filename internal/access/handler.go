package access

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/document-management/internal/transport"
	"github.com/frahmantamala/document-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateDepartment(dto CreateDepartmentDTO) (*Department, error)
	ListDepartments() ([]*Department, error)
	AddUserToDepartment(departmentID int64, dto AddDepartmentMemberDTO) error
	CreateRole(dto CreateRoleDTO) (*Role, error)
	ListRoles() ([]*Role, error)
	AssignRoleToUser(roleID int64, dto AssignRoleDTO) error
	CreatePermission(dto CreatePermissionDTO) (*Permission, error)
	ListPermissions() ([]*Permission, error)
	AttachPermissionToRole(roleID int64, dto AttachPermissionDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	department, err := h.Service.CreateDepartment(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, department)
}

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments()
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, departments)
}

func (h *Handler) AddDepartmentMember(w http.ResponseWriter, r *http.Request) {
	departmentID, err := parseID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}

	var dto AddDepartmentMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AddUserToDepartment(departmentID, dto); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Service.CreateRole(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, role)
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListRoles()
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := parseID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}

	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AssignRoleToUser(roleID, dto); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	permission, err := h.Service.CreatePermission(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, permission)
}

func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.Service.ListPermissions()
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, permissions)
}

func (h *Handler) AttachPermission(w http.ResponseWriter, r *http.Request) {
	roleID, err := parseID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}

	var dto AttachPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AttachPermissionToRole(roleID, dto); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	h.HandleServiceError(w, err)
}

func parseID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}
