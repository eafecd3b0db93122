package postgres

import (
	"gorm.io/gorm"

	errors "github.com/rodrigoluft/rh-backoffice/internal"
	employeeDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/employee"
	"github.com/rodrigoluft/rh-backoffice/internal/core/repository"
	"github.com/rodrigoluft/rh-backoffice/internal/employee"
	"github.com/rodrigoluft/rh-backoffice/pkg/pagination"
)

const (
	uniqueCPFConstraint    = "uq_funcionarios_cpf"
	departmentFKConstraint = "fk_funcionarios_departamento"
)

type EmployeeRepository struct {
	*repository.Repository[employeeDatamodel.Employee]
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{
		Repository: repository.New[employeeDatamodel.Employee](db),
	}
}

// GetByID attaches the owning department to the returned row.
func (r *EmployeeRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.DB().Preload("Department").Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetAll() ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.DB().Preload("Department").Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetPage(req pagination.Request) ([]*employeeDatamodel.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var employees []*employeeDatamodel.Employee
	err := r.DB().Preload("Department").Order("id ASC").Offset(req.Offset()).Limit(req.PageSize).Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByCPF(cpf string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.DB().Preload("Department").Where("cpf = ?", cpf).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByDepartmentID(departmentID int64) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.DB().Preload("Department").Where("departamento_id = ?", departmentID).Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetBySeniorityLevel(level int) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.DB().Preload("Department").Where("nivel_senioridade = ?", level).Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetActive() ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.DB().Preload("Department").Where("ativo = ?", true).Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) CountByDepartment(departmentID int64) (int64, error) {
	var count int64
	err := r.DB().Model(&employeeDatamodel.Employee{}).Where("departamento_id = ?", departmentID).Count(&count).Error
	return count, err
}

// Create persists the employee. The unique index on cpf and the restrictive
// foreign key back the service-level checks, so a constraint hit from a
// concurrent write still comes back as the same conflict.
func (r *EmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	if err := r.Repository.Create(emp); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *EmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	if err := r.Repository.Update(emp); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func translateWriteError(err error) error {
	if repository.IsUniqueViolation(err, uniqueCPFConstraint) {
		return errors.ErrDuplicateCPF
	}
	if repository.IsForeignKeyViolation(err, departmentFKConstraint) {
		return errors.ErrInvalidDepartmentRef
	}
	return err
}
