package postgres

import (
	"gorm.io/gorm"

	errors "github.com/rodrigoluft/rh-backoffice/internal"
	departmentDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/department"
	"github.com/rodrigoluft/rh-backoffice/internal/core/repository"
	"github.com/rodrigoluft/rh-backoffice/internal/department"
)

const (
	uniqueNameConstraint = "uq_departamentos_nome"
	employeeFKConstraint = "fk_funcionarios_departamento"
)

type DepartmentRepository struct {
	*repository.Repository[departmentDatamodel.Department]
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{
		Repository: repository.New[departmentDatamodel.Department](db),
	}
}

func (r *DepartmentRepository) GetByName(name string) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.DB().Where("nome = ?", name).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) GetActive() ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.DB().Where("ativo = ?", true).Order("id ASC").Find(&departments).Error
	return departments, err
}

// Create persists the department. The unique index on nome backs the
// service-level duplicate check, so a constraint hit from a concurrent
// insert still comes back as the same conflict.
func (r *DepartmentRepository) Create(dept *departmentDatamodel.Department) error {
	if err := r.Repository.Create(dept); err != nil {
		if repository.IsUniqueViolation(err, uniqueNameConstraint) {
			return errors.ErrDuplicateDepartmentName
		}
		return err
	}
	return nil
}

func (r *DepartmentRepository) Update(dept *departmentDatamodel.Department) error {
	if err := r.Repository.Update(dept); err != nil {
		if repository.IsUniqueViolation(err, uniqueNameConstraint) {
			return errors.ErrDuplicateDepartmentName
		}
		return err
	}
	return nil
}

// DeleteByID removes the department. When the restrictive foreign key fires
// because employees were attached after the service checked, the error is
// reported as the same conflict the check produces.
func (r *DepartmentRepository) DeleteByID(id int64) (bool, error) {
	existed, err := r.Repository.DeleteByID(id)
	if err != nil {
		if repository.IsForeignKeyViolation(err, employeeFKConstraint) {
			var count int64
			if countErr := r.DB().Table("funcionarios").Where("departamento_id = ?", id).Count(&count).Error; countErr != nil || count < 1 {
				count = 1
			}
			return false, errors.NewDepartmentHasEmployeesError(count)
		}
		return false, err
	}
	return existed, nil
}
