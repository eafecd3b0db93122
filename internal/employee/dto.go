package employee

import (
	"strings"
	"time"

	errors "github.com/rodrigoluft/rh-backoffice/internal"
	"github.com/rodrigoluft/rh-backoffice/internal/core/common/validation"
)

type EmployeeResponse struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"nome"`
	Position             string     `json:"cargo"`
	CPF                  *string    `json:"cpf,omitempty"`
	Email                *string    `json:"email,omitempty"`
	Phone                *string    `json:"telefone,omitempty"`
	HiredAt              time.Time  `json:"dataAdmissao"`
	DepartmentID         int64      `json:"departamentoId"`
	DepartmentName       string     `json:"departamentoNome"`
	Salary               float64    `json:"salario"`
	Address              *string    `json:"endereco,omitempty"`
	SeniorityLevel       int        `json:"nivelSenioridade"`
	SeniorityDescription string     `json:"nivelSenioridadeDescricao"`
	IsActive             bool       `json:"ativo"`
	CreatedAt            time.Time  `json:"dataCriacao"`
	UpdatedAt            *time.Time `json:"dataAtualizacao,omitempty"`
}

// CreateEmployeeDTO is the payload for POST. Seniority defaults to the
// lowest level and the active flag to true when omitted.
type CreateEmployeeDTO struct {
	Name           string    `json:"nome"`
	Position       string    `json:"cargo"`
	CPF            *string   `json:"cpf,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"telefone,omitempty"`
	HiredAt        time.Time `json:"dataAdmissao"`
	DepartmentID   int64     `json:"departamentoId"`
	Salary         float64   `json:"salario"`
	Address        *string   `json:"endereco,omitempty"`
	SeniorityLevel int       `json:"nivelSenioridade"`
	IsActive       *bool     `json:"ativo,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("nome", dto.Name).Required().MinLength(3).MaxLength(150)
	v.Field("cargo", dto.Position).Required().MaxLength(100)
	v.Field("cpf", dto.CPF).MaxLength(11)
	v.Field("email", dto.Email).MaxLength(150).Email()
	v.Field("telefone", dto.Phone).MaxLength(20)
	v.Field("dataAdmissao", dto.HiredAt).Required()
	v.Field("departamentoId", dto.DepartmentID).Required().Positive(errors.ErrCodeInvalidDepartment)
	v.Field("salario", dto.Salary).Required().RangeFloat(0.01, 9999999999.99, errors.ErrCodeInvalidSalary)
	v.Field("endereco", dto.Address).MaxLength(500)
	if dto.SeniorityLevel != 0 {
		v.Field("nivelSenioridade", dto.SeniorityLevel).RangeInt(1, 5, errors.ErrCodeInvalidSeniority)
	}
	return v.Validate()
}

func (dto CreateEmployeeDTO) Seniority() int {
	if dto.SeniorityLevel == 0 {
		return SeniorityJunior
	}
	return dto.SeniorityLevel
}

func (dto CreateEmployeeDTO) Active() bool {
	if dto.IsActive == nil {
		return true
	}
	return *dto.IsActive
}

// ToDomain builds the domain employee the payload describes. The caller
// resolves departmentName from the referenced department.
func (dto CreateEmployeeDTO) ToDomain(departmentName string) *Employee {
	return &Employee{
		Name:           dto.Name,
		Position:       dto.Position,
		CPF:            normalizeOptional(dto.CPF),
		Email:          normalizeOptional(dto.Email),
		Phone:          normalizeOptional(dto.Phone),
		HiredAt:        dto.HiredAt,
		DepartmentID:   dto.DepartmentID,
		DepartmentName: departmentName,
		Salary:         dto.Salary,
		Address:        normalizeOptional(dto.Address),
		SeniorityLevel: dto.Seniority(),
		IsActive:       dto.Active(),
		CreatedAt:      time.Now(),
	}
}

// UpdateEmployeeDTO is the payload for PUT and replaces every field.
type UpdateEmployeeDTO struct {
	Name           string    `json:"nome"`
	Position       string    `json:"cargo"`
	CPF            *string   `json:"cpf,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"telefone,omitempty"`
	HiredAt        time.Time `json:"dataAdmissao"`
	DepartmentID   int64     `json:"departamentoId"`
	Salary         float64   `json:"salario"`
	Address        *string   `json:"endereco,omitempty"`
	SeniorityLevel int       `json:"nivelSenioridade"`
	IsActive       *bool     `json:"ativo,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("nome", dto.Name).Required().MinLength(3).MaxLength(150)
	v.Field("cargo", dto.Position).Required().MaxLength(100)
	v.Field("cpf", dto.CPF).MaxLength(11)
	v.Field("email", dto.Email).MaxLength(150).Email()
	v.Field("telefone", dto.Phone).MaxLength(20)
	v.Field("dataAdmissao", dto.HiredAt).Required()
	v.Field("departamentoId", dto.DepartmentID).Required().Positive(errors.ErrCodeInvalidDepartment)
	v.Field("salario", dto.Salary).Required().RangeFloat(0.01, 9999999999.99, errors.ErrCodeInvalidSalary)
	v.Field("endereco", dto.Address).MaxLength(500)
	if dto.SeniorityLevel != 0 {
		v.Field("nivelSenioridade", dto.SeniorityLevel).RangeInt(1, 5, errors.ErrCodeInvalidSeniority)
	}
	return v.Validate()
}

func (dto UpdateEmployeeDTO) Seniority() int {
	if dto.SeniorityLevel == 0 {
		return SeniorityJunior
	}
	return dto.SeniorityLevel
}

func (dto UpdateEmployeeDTO) Active() bool {
	if dto.IsActive == nil {
		return true
	}
	return *dto.IsActive
}

// PatchEmployeeDTO applies only the supplied fields: text fields count as
// supplied when non-blank, value fields when present.
type PatchEmployeeDTO struct {
	Name           string     `json:"nome"`
	Position       string     `json:"cargo"`
	CPF            string     `json:"cpf"`
	Email          string     `json:"email"`
	Phone          string     `json:"telefone"`
	Address        string     `json:"endereco"`
	HiredAt        *time.Time `json:"dataAdmissao"`
	DepartmentID   *int64     `json:"departamentoId"`
	Salary         *float64   `json:"salario"`
	SeniorityLevel *int       `json:"nivelSenioridade"`
	IsActive       *bool      `json:"ativo"`
}

func (dto PatchEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if strings.TrimSpace(dto.Name) != "" {
		v.Field("nome", dto.Name).MinLength(3).MaxLength(150)
	}
	if strings.TrimSpace(dto.Position) != "" {
		v.Field("cargo", dto.Position).MaxLength(100)
	}
	if strings.TrimSpace(dto.CPF) != "" {
		v.Field("cpf", dto.CPF).MaxLength(11)
	}
	if strings.TrimSpace(dto.Email) != "" {
		v.Field("email", dto.Email).MaxLength(150).Email()
	}
	if strings.TrimSpace(dto.Phone) != "" {
		v.Field("telefone", dto.Phone).MaxLength(20)
	}
	if strings.TrimSpace(dto.Address) != "" {
		v.Field("endereco", dto.Address).MaxLength(500)
	}
	if dto.DepartmentID != nil {
		v.Field("departamentoId", *dto.DepartmentID).Positive(errors.ErrCodeInvalidDepartment)
	}
	if dto.Salary != nil {
		v.Field("salario", *dto.Salary).RangeFloat(0.01, 9999999999.99, errors.ErrCodeInvalidSalary)
	}
	if dto.SeniorityLevel != nil {
		v.Field("nivelSenioridade", *dto.SeniorityLevel).RangeInt(1, 5, errors.ErrCodeInvalidSeniority)
	}
	return v.Validate()
}

// normalizeOptional collapses blank optional strings to nil so they never
// occupy a slot in nullable unique columns.
func normalizeOptional(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}
