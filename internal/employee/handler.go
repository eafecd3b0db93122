package employee

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/rodrigoluft/rh-backoffice/internal/transport"
	"github.com/rodrigoluft/rh-backoffice/pkg/logger"
	"github.com/rodrigoluft/rh-backoffice/pkg/pagination"
)

type ServiceAPI interface {
	GetAllEmployees() ([]EmployeeResponse, error)
	GetEmployeePage(req pagination.Request, active *bool) (*pagination.Page[EmployeeResponse], error)
	GetEmployeeByID(id int64) (*EmployeeResponse, error)
	GetEmployeeByCPF(cpf string) (*EmployeeResponse, error)
	GetEmployeesByDepartment(departmentID int64) ([]EmployeeResponse, error)
	GetEmployeesBySeniority(level int) ([]EmployeeResponse, error)
	GetActiveEmployees() ([]EmployeeResponse, error)
	ExportEmployeesReport() ([]byte, error)
	CreateEmployee(dto CreateEmployeeDTO) (*EmployeeResponse, error)
	UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*EmployeeResponse, error)
	PatchEmployee(id int64, dto PatchEmployeeDTO) (*EmployeeResponse, error)
	DeleteEmployee(id int64) error
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

// GetEmployees lists every employee, the unpaginated v1 contract.
func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.GetAllEmployees()
	if err != nil {
		h.Logger.Error("GetEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

// GetEmployeesPaged lists employees page by page, the v2 contract. Missing
// or malformed page parameters fall back to the defaults, an oversized
// pageSize is clamped, and an optional ativo parameter filters the fetched
// page.
func (h *Handler) GetEmployeesPaged(w http.ResponseWriter, r *http.Request) {
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
	var active *bool
	if s := r.URL.Query().Get("ativo"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			active = &b
		}
	}

	page, err := h.Service.GetEmployeePage(pagination.Normalize(pageNumber, pageSize), active)
	if err != nil {
		h.Logger.Error("GetEmployeesPaged: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetEmployee: invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	emp, err := h.Service.GetEmployeeByID(id)
	if err != nil {
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) GetEmployeeByCPF(w http.ResponseWriter, r *http.Request) {
	cpf := chi.URLParam(r, "cpf")

	emp, err := h.Service.GetEmployeeByCPF(cpf)
	if err != nil {
		h.Logger.Error("GetEmployeeByCPF: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) GetEmployeesByDepartment(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "departamentoId")
	departmentID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetEmployeesByDepartment: invalid department ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "departamentoId inválido")
		return
	}

	employees, err := h.Service.GetEmployeesByDepartment(departmentID)
	if err != nil {
		h.Logger.Error("GetEmployeesByDepartment: service error", "error", err, "department_id", departmentID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetEmployeesBySeniority(w http.ResponseWriter, r *http.Request) {
	levelStr := chi.URLParam(r, "nivel")
	level, err := strconv.Atoi(levelStr)
	if err != nil {
		h.Logger.Error("GetEmployeesBySeniority: invalid seniority level", "nivel", levelStr)
		h.WriteError(w, http.StatusBadRequest, "nível de senioridade inválido")
		return
	}

	employees, err := h.Service.GetEmployeesBySeniority(level)
	if err != nil {
		h.Logger.Error("GetEmployeesBySeniority: service error", "error", err, "seniority_level", level)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetActiveEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.GetActiveEmployees()
	if err != nil {
		h.Logger.Error("GetActiveEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

// ExportEmployees streams the employee listing as an xlsx attachment.
func (h *Handler) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.ExportEmployeesReport()
	if err != nil {
		h.Logger.Error("ExportEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="funcionarios.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(report)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report); err != nil {
		h.Logger.Error("ExportEmployees: failed to write report", "error", err)
	}
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	emp, err := h.Service.CreateEmployee(dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created", "employee_id", emp.ID, "department_id", emp.DepartmentID)

	w.Header().Set("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), emp.ID))
	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("UpdateEmployee: invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	emp, err := h.Service.UpdateEmployee(id, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) PatchEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("PatchEmployee: invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var dto PatchEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("PatchEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	emp, err := h.Service.PatchEmployee(id, dto)
	if err != nil {
		h.Logger.Error("PatchEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("DeleteEmployee: invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := h.Service.DeleteEmployee(id); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DeleteEmployee: employee deleted", "employee_id", id)

	w.WriteHeader(http.StatusNoContent)
}
