package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rodrigoluft/rh-backoffice/internal"
	"github.com/rodrigoluft/rh-backoffice/internal/department"
	departmentPostgres "github.com/rodrigoluft/rh-backoffice/internal/department/postgres"
	"github.com/rodrigoluft/rh-backoffice/internal/employee"
	employeePostgres "github.com/rodrigoluft/rh-backoffice/internal/employee/postgres"
	"github.com/rodrigoluft/rh-backoffice/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample departments and employees for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			// Employees go first, the restrictive foreign key blocks the
			// other order.
			err := gormDB.Transaction(func(tx *gorm.DB) error {
				if err := tx.Exec("DELETE FROM funcionarios").Error; err != nil {
					return err
				}
				return tx.Exec("DELETE FROM departamentos").Error
			})
			if err != nil {
				log.Fatalf("failed to clear existing data: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		departmentRepo := departmentPostgres.NewDepartmentRepository(gormDB)
		employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
		departmentService := department.NewService(departmentRepo, employeeRepo, lg)
		employeeService := employee.NewService(employeeRepo, departmentRepo, lg)

		// Seeding goes through the services so every row passes the same
		// validations the API applies.
		departmentIDs := make(map[string]int64)
		for _, dto := range seedDepartments() {
			created, err := departmentService.CreateDepartment(dto)
			if err != nil {
				if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeDuplicateDepartmentName {
					existing, lookupErr := departmentService.GetDepartmentByName(dto.Name)
					if lookupErr != nil {
						log.Fatalf("failed to look up department %s: %v", dto.Name, lookupErr)
					}
					departmentIDs[dto.Name] = existing.ID
					fmt.Printf("Department already exists: %s\n", dto.Name)
					continue
				}
				log.Fatalf("failed to seed department %s: %v", dto.Name, err)
			}
			departmentIDs[dto.Name] = created.ID
			fmt.Printf("Seeded department: %s\n", dto.Name)
		}

		for _, seed := range seedEmployees() {
			dto := seed.dto
			dto.DepartmentID = departmentIDs[seed.department]
			created, err := employeeService.CreateEmployee(dto)
			if err != nil {
				if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeDuplicateCPF {
					fmt.Printf("Employee already exists: %s\n", dto.Name)
					continue
				}
				log.Fatalf("failed to seed employee %s: %v", dto.Name, err)
			}
			fmt.Printf("Seeded employee: %s (id %d)\n", created.Name, created.ID)
		}

		fmt.Println("Sample data seeded successfully")
	},
}

func ptr[T any](v T) *T {
	return &v
}

func seedDepartments() []department.CreateDepartmentDTO {
	return []department.CreateDepartmentDTO{
		{
			Name:        "Recursos Humanos",
			Description: ptr("Gestão de pessoas, recrutamento e folha de pagamento"),
			Manager:     "Ana Paula Souza",
		},
		{
			Name:        "Tecnologia da Informação",
			Description: ptr("Desenvolvimento de sistemas e infraestrutura"),
			Manager:     "Carlos Eduardo Lima",
		},
		{
			Name:        "Financeiro",
			Description: ptr("Contabilidade e planejamento financeiro"),
			Manager:     "Mariana Alves",
		},
		{
			Name:     "Projetos Legados",
			Manager:  "Roberto Nogueira",
			IsActive: ptr(false),
		},
	}
}

type employeeSeed struct {
	department string
	dto        employee.CreateEmployeeDTO
}

func seedEmployees() []employeeSeed {
	return []employeeSeed{
		{
			department: "Recursos Humanos",
			dto: employee.CreateEmployeeDTO{
				Name:           "João da Silva",
				Position:       "Analista de RH",
				CPF:            ptr("12345678901"),
				Email:          ptr("joao.silva@empresa.com.br"),
				Phone:          ptr("11987654321"),
				HiredAt:        time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC),
				Salary:         4800.50,
				SeniorityLevel: employee.SeniorityMid,
			},
		},
		{
			department: "Tecnologia da Informação",
			dto: employee.CreateEmployeeDTO{
				Name:           "Maria Oliveira",
				Position:       "Desenvolvedora",
				CPF:            ptr("98765432100"),
				Email:          ptr("maria.oliveira@empresa.com.br"),
				Address:        ptr("Rua das Flores, 123 - São Paulo/SP"),
				HiredAt:        time.Date(2019, time.August, 1, 0, 0, 0, 0, time.UTC),
				Salary:         9200,
				SeniorityLevel: employee.SenioritySenior,
			},
		},
		{
			department: "Tecnologia da Informação",
			dto: employee.CreateEmployeeDTO{
				Name:     "Pedro Santos",
				Position: "Estagiário de Desenvolvimento",
				HiredAt:  time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
				Salary:   1800,
			},
		},
		{
			department: "Financeiro",
			dto: employee.CreateEmployeeDTO{
				Name:           "Fernanda Costa",
				Position:       "Coordenadora Financeira",
				CPF:            ptr("45678912300"),
				Email:          ptr("fernanda.costa@empresa.com.br"),
				Phone:          ptr("21998761234"),
				HiredAt:        time.Date(2017, time.November, 20, 0, 0, 0, 0, time.UTC),
				Salary:         11250.75,
				SeniorityLevel: employee.SenioritySpecialist,
			},
		},
		{
			department: "Tecnologia da Informação",
			dto: employee.CreateEmployeeDTO{
				Name:           "Luiz Fernando Martins",
				Position:       "Arquiteto de Soluções",
				CPF:            ptr("32165498700"),
				Email:          ptr("luiz.martins@empresa.com.br"),
				HiredAt:        time.Date(2015, time.May, 4, 0, 0, 0, 0, time.UTC),
				Salary:         15800,
				SeniorityLevel: employee.SeniorityArchitect,
			},
		},
		{
			department: "Projetos Legados",
			dto: employee.CreateEmployeeDTO{
				Name:           "Ricardo Mendes",
				Position:       "Analista de Sistemas",
				CPF:            ptr("65432198700"),
				HiredAt:        time.Date(2012, time.September, 10, 0, 0, 0, 0, time.UTC),
				Salary:         7300,
				SeniorityLevel: employee.SeniorityMid,
				IsActive:       ptr(false),
			},
		},
	}
}
