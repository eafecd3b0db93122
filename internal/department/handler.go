package department

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/rodrigoluft/rh-backoffice/internal/transport"
	"github.com/rodrigoluft/rh-backoffice/pkg/logger"
	"github.com/rodrigoluft/rh-backoffice/pkg/pagination"
)

type ServiceAPI interface {
	GetAllDepartments() ([]DepartmentResponse, error)
	GetDepartmentPage(req pagination.Request) (*pagination.Page[DepartmentResponse], error)
	GetDepartmentByID(id int64) (*DepartmentResponse, error)
	GetDepartmentByName(name string) (*DepartmentResponse, error)
	GetActiveDepartments() ([]DepartmentResponse, error)
	CreateDepartment(dto CreateDepartmentDTO) (*DepartmentResponse, error)
	UpdateDepartment(id int64, dto UpdateDepartmentDTO) (*DepartmentResponse, error)
	PatchDepartment(id int64, dto PatchDepartmentDTO) (*DepartmentResponse, error)
	DeleteDepartment(id int64) error
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

// GetDepartments lists every department, the unpaginated v1 contract.
func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetAllDepartments()
	if err != nil {
		h.Logger.Error("GetDepartments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, departments)
}

// GetDepartmentsPaged lists departments page by page, the v2 contract.
// Missing or malformed page parameters fall back to the defaults and an
// oversized pageSize is clamped.
func (h *Handler) GetDepartmentsPaged(w http.ResponseWriter, r *http.Request) {
	pageNumber := 0
	pageSize := 0
	if s := r.URL.Query().Get("pageNumber"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			pageNumber = n
		}
	}
	if s := r.URL.Query().Get("pageSize"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			pageSize = n
		}
	}

	page, err := h.Service.GetDepartmentPage(pagination.Normalize(pageNumber, pageSize))
	if err != nil {
		h.Logger.Error("GetDepartmentsPaged: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetDepartment: invalid department ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	dept, err := h.Service.GetDepartmentByID(id)
	if err != nil {
		h.Logger.Error("GetDepartment: service error", "error", err, "department_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) GetDepartmentByName(w http.ResponseWriter, r *http.Request) {
	// Route params come percent-encoded and department names carry spaces
	// and accents.
	name := chi.URLParam(r, "nome")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	dept, err := h.Service.GetDepartmentByName(name)
	if err != nil {
		h.Logger.Error("GetDepartmentByName: service error", "error", err, "name", name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) GetActiveDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetActiveDepartments()
	if err != nil {
		h.Logger.Error("GetActiveDepartments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, departments)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateDepartment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	dept, err := h.Service.CreateDepartment(dto)
	if err != nil {
		h.Logger.Error("CreateDepartment: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateDepartment: department created", "department_id", dept.ID, "name", dept.Name)

	w.Header().Set("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), dept.ID))
	h.WriteJSON(w, http.StatusCreated, dept)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("UpdateDepartment: invalid department ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var dto UpdateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateDepartment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	dept, err := h.Service.UpdateDepartment(id, dto)
	if err != nil {
		h.Logger.Error("UpdateDepartment: service error", "error", err, "department_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) PatchDepartment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("PatchDepartment: invalid department ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var dto PatchDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("PatchDepartment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	dept, err := h.Service.PatchDepartment(id, dto)
	if err != nil {
		h.Logger.Error("PatchDepartment: service error", "error", err, "department_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("DeleteDepartment: invalid department ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := h.Service.DeleteDepartment(id); err != nil {
		h.Logger.Error("DeleteDepartment: service error", "error", err, "department_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DeleteDepartment: department deleted", "department_id", id)

	w.WriteHeader(http.StatusNoContent)
}
