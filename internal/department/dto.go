package department

import (
	"strings"
	"time"

	errors "github.com/rodrigoluft/rh-backoffice/internal"
	"github.com/rodrigoluft/rh-backoffice/internal/core/common/validation"
)

type DepartmentResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"nome"`
	Description *string    `json:"descricao,omitempty"`
	Manager     string     `json:"gerente"`
	IsActive    bool       `json:"ativo"`
	CreatedAt   time.Time  `json:"dataCriacao"`
	UpdatedAt   *time.Time `json:"dataAtualizacao,omitempty"`
}

// CreateDepartmentDTO is the payload for POST. The active flag defaults to
// true when omitted.
type CreateDepartmentDTO struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao,omitempty"`
	Manager     string  `json:"gerente"`
	IsActive    *bool   `json:"ativo,omitempty"`
}

func (dto CreateDepartmentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("nome", dto.Name).Required().MinLength(3).MaxLength(100)
	v.Field("descricao", dto.Description).MaxLength(500)
	v.Field("gerente", dto.Manager).Required().MaxLength(150)
	return v.Validate()
}

func (dto CreateDepartmentDTO) Active() bool {
	if dto.IsActive == nil {
		return true
	}
	return *dto.IsActive
}

// UpdateDepartmentDTO is the payload for PUT and replaces every field.
type UpdateDepartmentDTO struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao,omitempty"`
	Manager     string  `json:"gerente"`
	IsActive    *bool   `json:"ativo,omitempty"`
}

func (dto UpdateDepartmentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("nome", dto.Name).Required().MinLength(3).MaxLength(100)
	v.Field("descricao", dto.Description).MaxLength(500)
	v.Field("gerente", dto.Manager).Required().MaxLength(150)
	return v.Validate()
}

func (dto UpdateDepartmentDTO) Active() bool {
	if dto.IsActive == nil {
		return true
	}
	return *dto.IsActive
}

// PatchDepartmentDTO applies only the supplied fields: text fields count as
// supplied when non-blank, the active flag when present.
type PatchDepartmentDTO struct {
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Manager     string `json:"gerente"`
	IsActive    *bool  `json:"ativo"`
}

func (dto PatchDepartmentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if strings.TrimSpace(dto.Name) != "" {
		v.Field("nome", dto.Name).MinLength(3).MaxLength(100)
	}
	if strings.TrimSpace(dto.Description) != "" {
		v.Field("descricao", dto.Description).MaxLength(500)
	}
	if strings.TrimSpace(dto.Manager) != "" {
		v.Field("gerente", dto.Manager).MaxLength(150)
	}
	return v.Validate()
}
