package employee

import (
	"log/slog"
	"strings"

	errors "github.com/rodrigoluft/rh-backoffice/internal"
	"github.com/rodrigoluft/rh-backoffice/internal/core/common/validation"
	departmentDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/department"
	employeeDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/employee"
	"github.com/rodrigoluft/rh-backoffice/pkg/pagination"
)

// RepositoryAPI defines the data access methods for employees. Read methods
// return rows with the owning department attached.
type RepositoryAPI interface {
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetAll() ([]*employeeDatamodel.Employee, error)
	GetPage(req pagination.Request) ([]*employeeDatamodel.Employee, error)
	Count() (int64, error)
	GetByCPF(cpf string) (*employeeDatamodel.Employee, error)
	GetByDepartmentID(departmentID int64) ([]*employeeDatamodel.Employee, error)
	GetBySeniorityLevel(level int) ([]*employeeDatamodel.Employee, error)
	GetActive() ([]*employeeDatamodel.Employee, error)
	CountByDepartment(departmentID int64) (int64, error)
	Create(emp *employeeDatamodel.Employee) error
	Update(emp *employeeDatamodel.Employee) error
	DeleteByID(id int64) (bool, error)
}

// DepartmentGetter resolves the department an employee references.
type DepartmentGetter interface {
	GetByID(id int64) (*departmentDatamodel.Department, error)
}

type Service struct {
	repo        RepositoryAPI
	departments DepartmentGetter
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentGetter, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		logger:      logger,
	}
}

func toResponses(dataEmployees []*employeeDatamodel.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(dataEmployees))
	for _, dataEmp := range dataEmployees {
		responses = append(responses, FromDataModel(dataEmp).ToResponse())
	}
	return responses
}

func (s *Service) GetAllEmployees() ([]EmployeeResponse, error) {
	dataEmployees, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get employees from repository", "error", err)
		return nil, err
	}
	return toResponses(dataEmployees), nil
}

// GetEmployeePage returns one page of employees. The optional ativo filter
// narrows the page after it is fetched; envelope totals keep counting every
// employee.
func (s *Service) GetEmployeePage(req pagination.Request, active *bool) (*pagination.Page[EmployeeResponse], error) {
	if err := req.Validate(); err != nil {
		field := "pageSize"
		if err == pagination.ErrPageNumber {
			field = "pageNumber"
		}
		return nil, errors.NewValidationFieldError(field, err.Error(), errors.ErrCodeInvalidPage)
	}

	dataEmployees, err := s.repo.GetPage(req)
	if err != nil {
		s.logger.Error("failed to get employee page", "error", err, "page_number", req.PageNumber, "page_size", req.PageSize)
		return nil, err
	}

	totalCount, err := s.repo.Count()
	if err != nil {
		s.logger.Error("failed to count employees", "error", err)
		return nil, err
	}

	responses := make([]EmployeeResponse, 0, len(dataEmployees))
	for _, dataEmp := range dataEmployees {
		if active != nil && dataEmp.IsActive != *active {
			continue
		}
		responses = append(responses, FromDataModel(dataEmp).ToResponse())
	}

	page := pagination.NewPage(responses, req, totalCount)
	return &page, nil
}

func (s *Service) GetEmployeeByID(id int64) (*EmployeeResponse, error) {
	dataEmp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, err
	}
	if dataEmp == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	resp := FromDataModel(dataEmp).ToResponse()
	return &resp, nil
}

func (s *Service) GetEmployeeByCPF(cpf string) (*EmployeeResponse, error) {
	dataEmp, err := s.repo.GetByCPF(cpf)
	if err != nil {
		s.logger.Error("failed to get employee by cpf", "error", err)
		return nil, err
	}
	if dataEmp == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	resp := FromDataModel(dataEmp).ToResponse()
	return &resp, nil
}

// GetEmployeesByDepartment lists the employees of one department. The
// department must exist, even when it has no employees.
func (s *Service) GetEmployeesByDepartment(departmentID int64) ([]EmployeeResponse, error) {
	dept, err := s.departments.GetByID(departmentID)
	if err != nil {
		s.logger.Error("failed to check department", "error", err, "department_id", departmentID)
		return nil, err
	}
	if dept == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	dataEmployees, err := s.repo.GetByDepartmentID(departmentID)
	if err != nil {
		s.logger.Error("failed to get employees by department", "error", err, "department_id", departmentID)
		return nil, err
	}
	return toResponses(dataEmployees), nil
}

func (s *Service) GetEmployeesBySeniority(level int) ([]EmployeeResponse, error) {
	v := validation.NewValidator()
	v.Field("nivelSenioridade", level).RangeInt(SeniorityJunior, SeniorityArchitect, errors.ErrCodeInvalidSeniority)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	dataEmployees, err := s.repo.GetBySeniorityLevel(level)
	if err != nil {
		s.logger.Error("failed to get employees by seniority", "error", err, "seniority_level", level)
		return nil, err
	}
	return toResponses(dataEmployees), nil
}

func (s *Service) GetActiveEmployees() ([]EmployeeResponse, error) {
	dataEmployees, err := s.repo.GetActive()
	if err != nil {
		s.logger.Error("failed to get active employees", "error", err)
		return nil, err
	}
	return toResponses(dataEmployees), nil
}

// CreateEmployee validates the payload, checks the referenced department and
// CPF uniqueness, and persists the new employee.
func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err)
		return nil, err
	}

	dept, err := s.departments.GetByID(dto.DepartmentID)
	if err != nil {
		s.logger.Error("failed to check department", "error", err, "department_id", dto.DepartmentID)
		return nil, err
	}
	if dept == nil {
		s.logger.Warn("referenced department does not exist", "department_id", dto.DepartmentID)
		return nil, errors.ErrInvalidDepartmentRef
	}

	if cpf := normalizeOptional(dto.CPF); cpf != nil {
		existing, err := s.repo.GetByCPF(*cpf)
		if err != nil {
			s.logger.Error("failed to check cpf", "error", err)
			return nil, err
		}
		if existing != nil {
			s.logger.Warn("cpf already in use", "employee_id", existing.ID)
			return nil, errors.ErrDuplicateCPF
		}
	}

	emp := dto.ToDomain(dept.Name)
	dataEmp := ToDataModel(emp)
	if err := s.repo.Create(dataEmp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "department_id", dto.DepartmentID)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", dataEmp.ID, "department_id", dataEmp.DepartmentID)

	emp.ID = dataEmp.ID
	resp := emp.ToResponse()
	return &resp, nil
}

// UpdateEmployee replaces every field. The referenced department is always
// re-checked; CPF uniqueness only when the CPF changes.
func (s *Service) UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee for update", "error", err, "employee_id", id)
		return nil, err
	}
	if current == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	dept, err := s.departments.GetByID(dto.DepartmentID)
	if err != nil {
		s.logger.Error("failed to check department", "error", err, "department_id", dto.DepartmentID)
		return nil, err
	}
	if dept == nil {
		s.logger.Warn("referenced department does not exist", "department_id", dto.DepartmentID)
		return nil, errors.ErrInvalidDepartmentRef
	}

	emp := FromDataModel(current)
	newCPF := normalizeOptional(dto.CPF)
	if newCPF != nil && (emp.CPF == nil || *emp.CPF != *newCPF) {
		existing, err := s.repo.GetByCPF(*newCPF)
		if err != nil {
			s.logger.Error("failed to check cpf", "error", err, "employee_id", id)
			return nil, err
		}
		if existing != nil && existing.ID != id {
			s.logger.Warn("cpf already in use", "employee_id", existing.ID)
			return nil, errors.ErrDuplicateCPF
		}
	}

	emp.Name = dto.Name
	emp.Position = dto.Position
	emp.CPF = newCPF
	emp.Email = normalizeOptional(dto.Email)
	emp.Phone = normalizeOptional(dto.Phone)
	emp.HiredAt = dto.HiredAt
	emp.DepartmentID = dto.DepartmentID
	emp.DepartmentName = dept.Name
	emp.Salary = dto.Salary
	emp.Address = normalizeOptional(dto.Address)
	emp.SeniorityLevel = dto.Seniority()
	emp.IsActive = dto.Active()
	emp.Touch()

	dataEmp := ToDataModel(emp)
	if err := s.repo.Update(dataEmp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", id)

	resp := emp.ToResponse()
	return &resp, nil
}

// PatchEmployee applies only the supplied fields. A supplied departamentoId
// is re-checked against existing departments, a supplied CPF against the
// other employees.
func (s *Service) PatchEmployee(id int64, dto PatchEmployeeDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee for patch", "error", err, "employee_id", id)
		return nil, err
	}
	if current == nil {
		return nil, errors.ErrEmployeeNotFound
	}

	emp := FromDataModel(current)
	if strings.TrimSpace(dto.Name) != "" {
		emp.Name = dto.Name
	}
	if strings.TrimSpace(dto.Position) != "" {
		emp.Position = dto.Position
	}
	if strings.TrimSpace(dto.CPF) != "" && (emp.CPF == nil || *emp.CPF != dto.CPF) {
		existing, err := s.repo.GetByCPF(dto.CPF)
		if err != nil {
			s.logger.Error("failed to check cpf", "error", err, "employee_id", id)
			return nil, err
		}
		if existing != nil && existing.ID != id {
			s.logger.Warn("cpf already in use", "employee_id", existing.ID)
			return nil, errors.ErrDuplicateCPF
		}
		cpf := dto.CPF
		emp.CPF = &cpf
	}
	if strings.TrimSpace(dto.Email) != "" {
		email := dto.Email
		emp.Email = &email
	}
	if strings.TrimSpace(dto.Phone) != "" {
		phone := dto.Phone
		emp.Phone = &phone
	}
	if strings.TrimSpace(dto.Address) != "" {
		address := dto.Address
		emp.Address = &address
	}
	if dto.HiredAt != nil {
		emp.HiredAt = *dto.HiredAt
	}
	if dto.DepartmentID != nil {
		dept, err := s.departments.GetByID(*dto.DepartmentID)
		if err != nil {
			s.logger.Error("failed to check department", "error", err, "department_id", *dto.DepartmentID)
			return nil, err
		}
		if dept == nil {
			s.logger.Warn("referenced department does not exist", "department_id", *dto.DepartmentID)
			return nil, errors.ErrInvalidDepartmentRef
		}
		emp.DepartmentID = dept.ID
		emp.DepartmentName = dept.Name
	}
	if dto.Salary != nil {
		emp.Salary = *dto.Salary
	}
	if dto.SeniorityLevel != nil {
		emp.SeniorityLevel = *dto.SeniorityLevel
	}
	if dto.IsActive != nil {
		emp.IsActive = *dto.IsActive
	}
	emp.Touch()

	dataEmp := ToDataModel(emp)
	if err := s.repo.Update(dataEmp); err != nil {
		s.logger.Error("failed to patch employee", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee patched", "employee_id", id)

	resp := emp.ToResponse()
	return &resp, nil
}

func (s *Service) DeleteEmployee(id int64) error {
	existed, err := s.repo.DeleteByID(id)
	if err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return err
	}
	if !existed {
		return errors.ErrEmployeeNotFound
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
