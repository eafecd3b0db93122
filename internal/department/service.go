package department

import (
	"log/slog"
	"strings"

	errors "github.com/rodrigoluft/rh-backoffice/internal"
	departmentDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/department"
	"github.com/rodrigoluft/rh-backoffice/pkg/pagination"
)

// RepositoryAPI defines the data access methods for departments.
type RepositoryAPI interface {
	GetByID(id int64) (*departmentDatamodel.Department, error)
	GetAll() ([]*departmentDatamodel.Department, error)
	GetPage(req pagination.Request) ([]*departmentDatamodel.Department, error)
	Count() (int64, error)
	GetByName(name string) (*departmentDatamodel.Department, error)
	GetActive() ([]*departmentDatamodel.Department, error)
	Create(dept *departmentDatamodel.Department) error
	Update(dept *departmentDatamodel.Department) error
	DeleteByID(id int64) (bool, error)
}

// EmployeeCounter reports how many employees still reference a department.
type EmployeeCounter interface {
	CountByDepartment(departmentID int64) (int64, error)
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeCounter
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		logger:    logger,
	}
}

func (s *Service) GetAllDepartments() ([]DepartmentResponse, error) {
	dataDepartments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments from repository", "error", err)
		return nil, err
	}

	responses := make([]DepartmentResponse, 0, len(dataDepartments))
	for _, dataDept := range dataDepartments {
		responses = append(responses, FromDataModel(dataDept).ToResponse())
	}
	return responses, nil
}

// GetDepartmentPage returns one page of departments with the total counts
// the listing envelope carries.
func (s *Service) GetDepartmentPage(req pagination.Request) (*pagination.Page[DepartmentResponse], error) {
	if err := req.Validate(); err != nil {
		field := "pageSize"
		if err == pagination.ErrPageNumber {
			field = "pageNumber"
		}
		return nil, errors.NewValidationFieldError(field, err.Error(), errors.ErrCodeInvalidPage)
	}

	dataDepartments, err := s.repo.GetPage(req)
	if err != nil {
		s.logger.Error("failed to get department page", "error", err, "page_number", req.PageNumber, "page_size", req.PageSize)
		return nil, err
	}

	totalCount, err := s.repo.Count()
	if err != nil {
		s.logger.Error("failed to count departments", "error", err)
		return nil, err
	}

	responses := make([]DepartmentResponse, 0, len(dataDepartments))
	for _, dataDept := range dataDepartments {
		responses = append(responses, FromDataModel(dataDept).ToResponse())
	}

	page := pagination.NewPage(responses, req, totalCount)
	return &page, nil
}

func (s *Service) GetDepartmentByID(id int64) (*DepartmentResponse, error) {
	dataDept, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get department", "error", err, "department_id", id)
		return nil, err
	}
	if dataDept == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	resp := FromDataModel(dataDept).ToResponse()
	return &resp, nil
}

func (s *Service) GetDepartmentByName(name string) (*DepartmentResponse, error) {
	dataDept, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Error("failed to get department by name", "error", err, "name", name)
		return nil, err
	}
	if dataDept == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	resp := FromDataModel(dataDept).ToResponse()
	return &resp, nil
}

func (s *Service) GetActiveDepartments() ([]DepartmentResponse, error) {
	dataDepartments, err := s.repo.GetActive()
	if err != nil {
		s.logger.Error("failed to get active departments", "error", err)
		return nil, err
	}

	responses := make([]DepartmentResponse, 0, len(dataDepartments))
	for _, dataDept := range dataDepartments {
		responses = append(responses, FromDataModel(dataDept).ToResponse())
	}
	return responses, nil
}

// CreateDepartment validates the payload, enforces name uniqueness and
// persists the new department.
func (s *Service) CreateDepartment(dto CreateDepartmentDTO) (*DepartmentResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("department validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		s.logger.Error("failed to check department name", "error", err, "name", dto.Name)
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("department name already in use", "name", dto.Name)
		return nil, errors.ErrDuplicateDepartmentName
	}

	dept := NewDepartment(dto.Name, dto.Manager, dto.Description, dto.Active())
	dataDept := ToDataModel(dept)
	if err := s.repo.Create(dataDept); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("department created", "department_id", dataDept.ID, "name", dto.Name)

	resp := FromDataModel(dataDept).ToResponse()
	return &resp, nil
}

// UpdateDepartment replaces every field. Name uniqueness is re-checked only
// when the name actually changes.
func (s *Service) UpdateDepartment(id int64, dto UpdateDepartmentDTO) (*DepartmentResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("department validation failed", "error", err, "department_id", id)
		return nil, err
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get department for update", "error", err, "department_id", id)
		return nil, err
	}
	if current == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	dept := FromDataModel(current)
	if dto.Name != dept.Name {
		existing, err := s.repo.GetByName(dto.Name)
		if err != nil {
			s.logger.Error("failed to check department name", "error", err, "name", dto.Name)
			return nil, err
		}
		if existing != nil {
			s.logger.Warn("department name already in use", "name", dto.Name)
			return nil, errors.ErrDuplicateDepartmentName
		}
	}

	dept.Name = dto.Name
	dept.Description = dto.Description
	dept.Manager = dto.Manager
	dept.IsActive = dto.Active()
	dept.Touch()

	dataDept := ToDataModel(dept)
	if err := s.repo.Update(dataDept); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, err
	}

	s.logger.Info("department updated", "department_id", id)

	resp := FromDataModel(dataDept).ToResponse()
	return &resp, nil
}

// PatchDepartment applies only the supplied fields. Name uniqueness is
// re-checked only when a new name is supplied.
func (s *Service) PatchDepartment(id int64, dto PatchDepartmentDTO) (*DepartmentResponse, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("department validation failed", "error", err, "department_id", id)
		return nil, err
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get department for patch", "error", err, "department_id", id)
		return nil, err
	}
	if current == nil {
		return nil, errors.ErrDepartmentNotFound
	}

	dept := FromDataModel(current)
	if strings.TrimSpace(dto.Name) != "" && dto.Name != dept.Name {
		existing, err := s.repo.GetByName(dto.Name)
		if err != nil {
			s.logger.Error("failed to check department name", "error", err, "name", dto.Name)
			return nil, err
		}
		if existing != nil {
			s.logger.Warn("department name already in use", "name", dto.Name)
			return nil, errors.ErrDuplicateDepartmentName
		}
		dept.Name = dto.Name
	}
	if strings.TrimSpace(dto.Description) != "" {
		description := dto.Description
		dept.Description = &description
	}
	if strings.TrimSpace(dto.Manager) != "" {
		dept.Manager = dto.Manager
	}
	if dto.IsActive != nil {
		dept.IsActive = *dto.IsActive
	}
	dept.Touch()

	dataDept := ToDataModel(dept)
	if err := s.repo.Update(dataDept); err != nil {
		s.logger.Error("failed to patch department", "error", err, "department_id", id)
		return nil, err
	}

	s.logger.Info("department patched", "department_id", id)

	resp := FromDataModel(dataDept).ToResponse()
	return &resp, nil
}

// DeleteDepartment removes a department that no employee references. The
// conflict message reports how many employees still block the removal.
func (s *Service) DeleteDepartment(id int64) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get department for delete", "error", err, "department_id", id)
		return err
	}
	if current == nil {
		return errors.ErrDepartmentNotFound
	}

	count, err := s.employees.CountByDepartment(id)
	if err != nil {
		s.logger.Error("failed to count department employees", "error", err, "department_id", id)
		return err
	}
	if count > 0 {
		s.logger.Warn("department still has employees", "department_id", id, "employee_count", count)
		return errors.NewDepartmentHasEmployeesError(count)
	}

	existed, err := s.repo.DeleteByID(id)
	if err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return err
	}
	if !existed {
		return errors.ErrDepartmentNotFound
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}
