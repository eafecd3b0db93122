package department

import "time"

type Department struct {
	ID          int64      `gorm:"primaryKey"`
	Name        string     `gorm:"column:nome;size:100;uniqueIndex;not null"`
	Description *string    `gorm:"column:descricao;size:500"`
	Manager     string     `gorm:"column:gerente;size:150;not null"`
	// No default tag on ativo: gorm would skip inserting false.
	IsActive bool `gorm:"column:ativo"`
	CreatedAt   time.Time  `gorm:"column:data_criacao;autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"column:data_atualizacao;autoUpdateTime:false"`
}

func (Department) TableName() string {
	return "departamentos"
}
