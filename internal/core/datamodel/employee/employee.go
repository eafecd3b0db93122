package employee

import (
	"time"

	departmentDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/department"
)

type Employee struct {
	ID             int64                           `gorm:"primaryKey"`
	Name           string                          `gorm:"column:nome;size:150;not null"`
	Position       string                          `gorm:"column:cargo;size:100;not null"`
	CPF            *string                         `gorm:"column:cpf;size:11;uniqueIndex"`
	Email          *string                         `gorm:"column:email;size:150"`
	Phone          *string                         `gorm:"column:telefone;size:20"`
	HiredAt        time.Time                       `gorm:"column:data_admissao;type:date;not null"`
	DepartmentID   int64                           `gorm:"column:departamento_id;not null"`
	Department     *departmentDatamodel.Department `gorm:"foreignKey:DepartmentID"`
	Salary         float64                         `gorm:"column:salario;type:decimal(12,2);not null"`
	Address        *string                         `gorm:"column:endereco;size:500"`
	SeniorityLevel int                             `gorm:"column:nivel_senioridade;default:1"`
	// No default tag on ativo: gorm would skip inserting false.
	IsActive bool `gorm:"column:ativo"`
	CreatedAt      time.Time                       `gorm:"column:data_criacao;autoCreateTime:false"`
	UpdatedAt      *time.Time                      `gorm:"column:data_atualizacao;autoUpdateTime:false"`
}

func (Employee) TableName() string {
	return "funcionarios"
}
