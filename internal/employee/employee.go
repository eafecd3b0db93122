package employee

import (
	"time"

	employeeDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/employee"
)

// Seniority levels, lowest to highest.
const (
	SeniorityJunior     = 1
	SeniorityMid        = 2
	SenioritySenior     = 3
	SenioritySpecialist = 4
	SeniorityArchitect  = 5
)

// SeniorityDescription returns the label shown alongside the numeric level.
func SeniorityDescription(level int) string {
	switch level {
	case SeniorityJunior:
		return "Júnior"
	case SeniorityMid:
		return "Pleno"
	case SenioritySenior:
		return "Sênior"
	case SenioritySpecialist:
		return "Especialista"
	case SeniorityArchitect:
		return "Arquiteto"
	default:
		return "Desconhecido"
	}
}

// Employee is the domain view of a funcionario row. DepartmentName is
// denormalized from the eagerly loaded department.
type Employee struct {
	ID             int64      `json:"id"`
	Name           string     `json:"nome"`
	Position       string     `json:"cargo"`
	CPF            *string    `json:"cpf,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"telefone,omitempty"`
	HiredAt        time.Time  `json:"dataAdmissao"`
	DepartmentID   int64      `json:"departamentoId"`
	DepartmentName string     `json:"departamentoNome"`
	Salary         float64    `json:"salario"`
	Address        *string    `json:"endereco,omitempty"`
	SeniorityLevel int        `json:"nivelSenioridade"`
	IsActive       bool       `json:"ativo"`
	CreatedAt      time.Time  `json:"dataCriacao"`
	UpdatedAt      *time.Time `json:"dataAtualizacao,omitempty"`
}

// Touch records a modification timestamp. Creation leaves it unset.
func (e *Employee) Touch() {
	now := time.Now()
	e.UpdatedAt = &now
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:                   e.ID,
		Name:                 e.Name,
		Position:             e.Position,
		CPF:                  e.CPF,
		Email:                e.Email,
		Phone:                e.Phone,
		HiredAt:              e.HiredAt,
		DepartmentID:         e.DepartmentID,
		DepartmentName:       e.DepartmentName,
		Salary:               e.Salary,
		Address:              e.Address,
		SeniorityLevel:       e.SeniorityLevel,
		SeniorityDescription: SeniorityDescription(e.SeniorityLevel),
		IsActive:             e.IsActive,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:             e.ID,
		Name:           e.Name,
		Position:       e.Position,
		CPF:            e.CPF,
		Email:          e.Email,
		Phone:          e.Phone,
		HiredAt:        e.HiredAt,
		DepartmentID:   e.DepartmentID,
		Salary:         e.Salary,
		Address:        e.Address,
		SeniorityLevel: e.SeniorityLevel,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func FromDataModel(m *employeeDatamodel.Employee) *Employee {
	e := &Employee{
		ID:             m.ID,
		Name:           m.Name,
		Position:       m.Position,
		CPF:            m.CPF,
		Email:          m.Email,
		Phone:          m.Phone,
		HiredAt:        m.HiredAt,
		DepartmentID:   m.DepartmentID,
		Salary:         m.Salary,
		Address:        m.Address,
		SeniorityLevel: m.SeniorityLevel,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Department != nil {
		e.DepartmentName = m.Department.Name
	}
	return e
}
