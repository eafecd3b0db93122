package employee_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	departmentDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/department"
	employeeDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/employee"
	departmentPostgres "github.com/rodrigoluft/rh-backoffice/internal/department/postgres"
	"github.com/rodrigoluft/rh-backoffice/internal/employee"
	employeePostgres "github.com/rodrigoluft/rh-backoffice/internal/employee/postgres"
	"github.com/rodrigoluft/rh-backoffice/pkg/pagination"
)

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Employee Handler Integration", func() {
	var (
		db       *gorm.DB
		handler  *employee.Handler
		router   *chi.Mux
		recorder *httptest.ResponseRecorder
	)

	doRequest := func(method, target string, body []byte) {
		req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		recorder = httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&departmentDatamodel.Department{}, &employeeDatamodel.Employee{})
		Expect(err).NotTo(HaveOccurred())

		departments := []*departmentDatamodel.Department{
			{Name: "Recursos Humanos", Manager: "Ana Souza", IsActive: true, CreatedAt: time.Now()},
			{Name: "Tecnologia da Informação", Manager: "Carlos Lima", IsActive: true, CreatedAt: time.Now()},
		}
		for _, dept := range departments {
			Expect(db.Create(dept).Error).To(Succeed())
		}

		employees := []*employeeDatamodel.Employee{
			{
				Name:           "João da Silva",
				Position:       "Analista de RH",
				CPF:            strPtr("12345678901"),
				HiredAt:        time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC),
				DepartmentID:   1,
				Salary:         4800.50,
				SeniorityLevel: employee.SeniorityMid,
				IsActive:       true,
				CreatedAt:      time.Now(),
			},
			{
				Name:           "Maria Oliveira",
				Position:       "Desenvolvedora",
				CPF:            strPtr("98765432100"),
				HiredAt:        time.Date(2019, time.August, 1, 0, 0, 0, 0, time.UTC),
				DepartmentID:   2,
				Salary:         9200,
				SeniorityLevel: employee.SenioritySenior,
				IsActive:       true,
				CreatedAt:      time.Now(),
			},
			{
				Name:           "Pedro Santos",
				Position:       "Estagiário",
				HiredAt:        time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
				DepartmentID:   2,
				Salary:         1800,
				SeniorityLevel: employee.SeniorityJunior,
				IsActive:       false,
				CreatedAt:      time.Now(),
			},
		}
		for _, emp := range employees {
			Expect(db.Create(emp).Error).To(Succeed())
		}

		employeeRepo := employeePostgres.NewEmployeeRepository(db)
		departmentRepo := departmentPostgres.NewDepartmentRepository(db)
		service := employee.NewService(employeeRepo, departmentRepo, testLogger())
		handler = employee.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/api/v1/funcionario", func(fr chi.Router) {
			fr.Get("/", handler.GetEmployees)
			fr.Post("/", handler.CreateEmployee)
			fr.Get("/{id}", handler.GetEmployee)
			fr.Put("/{id}", handler.UpdateEmployee)
			fr.Delete("/{id}", handler.DeleteEmployee)
		})
		router.Route("/api/v2/funcionario", func(fr chi.Router) {
			fr.Get("/", handler.GetEmployeesPaged)
			fr.Post("/", handler.CreateEmployee)
			fr.Get("/ativos", handler.GetActiveEmployees)
			fr.Get("/relatorio", handler.ExportEmployees)
			fr.Get("/cpf/{cpf}", handler.GetEmployeeByCPF)
			fr.Get("/departamento/{departamentoId}", handler.GetEmployeesByDepartment)
			fr.Get("/nivel/{nivel}", handler.GetEmployeesBySeniority)
			fr.Get("/{id}", handler.GetEmployee)
			fr.Put("/{id}", handler.UpdateEmployee)
			fr.Patch("/{id}", handler.PatchEmployee)
			fr.Delete("/{id}", handler.DeleteEmployee)
		})
	})

	Describe("GET /api/v1/funcionario", func() {
		It("should list every employee with the department name attached", func() {
			doRequest(http.MethodGet, "/api/v1/funcionario", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var employees []employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&employees)).To(Succeed())
			Expect(employees).To(HaveLen(3))
			Expect(employees[0].DepartmentName).To(Equal("Recursos Humanos"))
			Expect(employees[1].DepartmentName).To(Equal("Tecnologia da Informação"))
		})
	})

	Describe("GET /api/v1/funcionario/{id}", func() {
		It("should return the employee", func() {
			doRequest(http.MethodGet, "/api/v1/funcionario/1", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var emp employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&emp)).To(Succeed())
			Expect(emp.Name).To(Equal("João da Silva"))
			Expect(emp.DepartmentName).To(Equal("Recursos Humanos"))
			Expect(emp.SeniorityDescription).To(Equal("Pleno"))
		})

		It("should return 404 for an unknown id", func() {
			doRequest(http.MethodGet, "/api/v1/funcionario/999", nil)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))

			var envelope errorEnvelope
			Expect(json.NewDecoder(recorder.Body).Decode(&envelope)).To(Succeed())
			Expect(envelope.Error.Code).To(Equal("EMPLOYEE_NOT_FOUND"))
		})

		It("should return 400 for a non numeric id", func() {
			doRequest(http.MethodGet, "/api/v1/funcionario/abc", nil)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/v1/funcionario", func() {
		It("should create an employee and point to it via Location", func() {
			body := []byte(`{
				"nome": "Fernanda Costa",
				"cargo": "Coordenadora Financeira",
				"cpf": "45678912300",
				"dataAdmissao": "2017-11-20T00:00:00Z",
				"departamentoId": 1,
				"salario": 11250.75,
				"nivelSenioridade": 4
			}`)
			doRequest(http.MethodPost, "/api/v1/funcionario", body)

			Expect(recorder.Code).To(Equal(http.StatusCreated))

			var created employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.DepartmentName).To(Equal("Recursos Humanos"))
			Expect(created.SeniorityDescription).To(Equal("Especialista"))
			Expect(created.IsActive).To(BeTrue())
			Expect(recorder.Header().Get("Location")).To(Equal(fmt.Sprintf("/api/v1/funcionario/%d", created.ID)))
		})

		It("should reject an unknown department", func() {
			body := []byte(`{
				"nome": "Sem Departamento",
				"cargo": "Analista",
				"dataAdmissao": "2024-01-10T00:00:00Z",
				"departamentoId": 99,
				"salario": 3000
			}`)
			doRequest(http.MethodPost, "/api/v1/funcionario", body)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			var envelope errorEnvelope
			Expect(json.NewDecoder(recorder.Body).Decode(&envelope)).To(Succeed())
			Expect(envelope.Error.Code).To(Equal("INVALID_DEPARTMENT"))
		})

		It("should reject a duplicate CPF", func() {
			body := []byte(`{
				"nome": "Homônimo",
				"cargo": "Analista",
				"cpf": "12345678901",
				"dataAdmissao": "2024-01-10T00:00:00Z",
				"departamentoId": 1,
				"salario": 3000
			}`)
			doRequest(http.MethodPost, "/api/v1/funcionario", body)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			var envelope errorEnvelope
			Expect(json.NewDecoder(recorder.Body).Decode(&envelope)).To(Succeed())
			Expect(envelope.Error.Code).To(Equal("DUPLICATE_CPF"))
		})

		It("should reject a malformed body", func() {
			doRequest(http.MethodPost, "/api/v1/funcionario", []byte("not json"))
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /api/v1/funcionario/{id}", func() {
		It("should replace the employee", func() {
			body := []byte(`{
				"nome": "João da Silva",
				"cargo": "Coordenador de RH",
				"cpf": "12345678901",
				"dataAdmissao": "2021-03-15T00:00:00Z",
				"departamentoId": 2,
				"salario": 6500,
				"nivelSenioridade": 3
			}`)
			doRequest(http.MethodPut, "/api/v1/funcionario/1", body)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var emp employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&emp)).To(Succeed())
			Expect(emp.Position).To(Equal("Coordenador de RH"))
			Expect(emp.DepartmentName).To(Equal("Tecnologia da Informação"))
			Expect(emp.UpdatedAt).NotTo(BeNil())
		})

		It("should return 404 for an unknown id", func() {
			body := []byte(`{
				"nome": "Qualquer Nome",
				"cargo": "Analista",
				"dataAdmissao": "2024-01-10T00:00:00Z",
				"departamentoId": 1,
				"salario": 3000
			}`)
			doRequest(http.MethodPut, "/api/v1/funcionario/999", body)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("PATCH /api/v2/funcionario/{id}", func() {
		It("should apply only the supplied fields", func() {
			body := []byte(`{"salario": 5300.25, "nivelSenioridade": 3}`)
			doRequest(http.MethodPatch, "/api/v2/funcionario/1", body)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var emp employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&emp)).To(Succeed())
			Expect(emp.Name).To(Equal("João da Silva"))
			Expect(emp.Salary).To(Equal(5300.25))
			Expect(emp.SeniorityDescription).To(Equal("Sênior"))
			Expect(*emp.CPF).To(Equal("12345678901"))
		})

		It("should reject an invalid partial payload", func() {
			body := []byte(`{"salario": -10}`)
			doRequest(http.MethodPatch, "/api/v2/funcionario/1", body)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DELETE /api/v1/funcionario/{id}", func() {
		It("should delete and answer 204", func() {
			doRequest(http.MethodDelete, "/api/v1/funcionario/3", nil)
			Expect(recorder.Code).To(Equal(http.StatusNoContent))

			doRequest(http.MethodGet, "/api/v1/funcionario/3", nil)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 404 for an unknown id", func() {
			doRequest(http.MethodDelete, "/api/v1/funcionario/999", nil)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /api/v2/funcionario", func() {
		It("should return the pagination envelope", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario?pageNumber=1&pageSize=2", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var page pagination.Page[employee.EmployeeResponse]
			Expect(json.NewDecoder(recorder.Body).Decode(&page)).To(Succeed())
			Expect(page.Data).To(HaveLen(2))
			Expect(page.TotalCount).To(Equal(int64(3)))
			Expect(page.TotalPages).To(Equal(2))
		})

		It("should filter the fetched page by ativo while keeping the totals", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario?pageNumber=1&pageSize=10&ativo=false", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var page pagination.Page[employee.EmployeeResponse]
			Expect(json.NewDecoder(recorder.Body).Decode(&page)).To(Succeed())
			Expect(page.Data).To(HaveLen(1))
			Expect(page.Data[0].Name).To(Equal("Pedro Santos"))
			Expect(page.TotalCount).To(Equal(int64(3)))
		})

		It("should ignore a malformed ativo parameter", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario?ativo=talvez", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var page pagination.Page[employee.EmployeeResponse]
			Expect(json.NewDecoder(recorder.Body).Decode(&page)).To(Succeed())
			Expect(page.Data).To(HaveLen(3))
		})
	})

	Describe("GET /api/v2/funcionario/ativos", func() {
		It("should list only active employees", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/ativos", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var employees []employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&employees)).To(Succeed())
			Expect(employees).To(HaveLen(2))
		})
	})

	Describe("GET /api/v2/funcionario/cpf/{cpf}", func() {
		It("should return the employee owning the CPF", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/cpf/98765432100", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var emp employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&emp)).To(Succeed())
			Expect(emp.Name).To(Equal("Maria Oliveira"))
		})

		It("should return 404 for an unknown CPF", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/cpf/00000000000", nil)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /api/v2/funcionario/departamento/{departamentoId}", func() {
		It("should list the department employees", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/departamento/2", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var employees []employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&employees)).To(Succeed())
			Expect(employees).To(HaveLen(2))
		})

		It("should return 404 for an unknown department", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/departamento/99", nil)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))

			var envelope errorEnvelope
			Expect(json.NewDecoder(recorder.Body).Decode(&envelope)).To(Succeed())
			Expect(envelope.Error.Code).To(Equal("DEPARTMENT_NOT_FOUND"))
		})

		It("should return 400 for a non numeric department id", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/departamento/abc", nil)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/v2/funcionario/nivel/{nivel}", func() {
		It("should list employees at the requested level", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/nivel/3", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var employees []employee.EmployeeResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&employees)).To(Succeed())
			Expect(employees).To(HaveLen(1))
			Expect(employees[0].Name).To(Equal("Maria Oliveira"))
		})

		It("should return 400 for a level outside 1 to 5", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/nivel/9", nil)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a non numeric level", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/nivel/abc", nil)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/v2/funcionario/relatorio", func() {
		It("should stream an xlsx workbook with one row per employee", func() {
			doRequest(http.MethodGet, "/api/v2/funcionario/relatorio", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
			Expect(recorder.Header().Get("Content-Disposition")).To(ContainSubstring("funcionarios.xlsx"))

			workbook, err := excelize.OpenReader(bytes.NewReader(recorder.Body.Bytes()))
			Expect(err).NotTo(HaveOccurred())
			defer workbook.Close()

			header, err := workbook.GetCellValue("Funcionarios", "A1")
			Expect(err).NotTo(HaveOccurred())
			Expect(header).To(Equal("ID"))

			name, err := workbook.GetCellValue("Funcionarios", "B2")
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("João da Silva"))

			hiredAt, err := workbook.GetCellValue("Funcionarios", "G2")
			Expect(err).NotTo(HaveOccurred())
			Expect(hiredAt).To(Equal("15/03/2021"))

			department, err := workbook.GetCellValue("Funcionarios", "H2")
			Expect(err).NotTo(HaveOccurred())
			Expect(department).To(Equal("Recursos Humanos"))

			level, err := workbook.GetCellValue("Funcionarios", "J2")
			Expect(err).NotTo(HaveOccurred())
			Expect(level).To(Equal("Pleno"))

			inactive, err := workbook.GetCellValue("Funcionarios", "K4")
			Expect(err).NotTo(HaveOccurred())
			Expect(inactive).To(Equal("Não"))

			rows, err := workbook.GetRows("Funcionarios")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(4))
		})
	})
})
