package department

import (
	"time"

	departmentDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/department"
)

// Department is the domain view of a departamento row.
type Department struct {
	ID          int64      `json:"id"`
	Name        string     `json:"nome"`
	Description *string    `json:"descricao,omitempty"`
	Manager     string     `json:"gerente"`
	IsActive    bool       `json:"ativo"`
	CreatedAt   time.Time  `json:"dataCriacao"`
	UpdatedAt   *time.Time `json:"dataAtualizacao,omitempty"`
}

func NewDepartment(name, manager string, description *string, active bool) *Department {
	return &Department{
		Name:        name,
		Description: description,
		Manager:     manager,
		IsActive:    active,
		CreatedAt:   time.Now(),
	}
}

// Touch records a modification timestamp. Creation leaves it unset.
func (d *Department) Touch() {
	now := time.Now()
	d.UpdatedAt = &now
}

func (d *Department) ToResponse() DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Manager:     d.Manager,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Manager:     d.Manager,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func FromDataModel(m *departmentDatamodel.Department) *Department {
	return &Department{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Manager:     m.Manager,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
