package department_test

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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	departmentDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/department"
	employeeDatamodel "github.com/rodrigoluft/rh-backoffice/internal/core/datamodel/employee"
	"github.com/rodrigoluft/rh-backoffice/internal/department"
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

var _ = Describe("Department Handler Integration", func() {
	var (
		db           *gorm.DB
		employeeRepo employee.RepositoryAPI
		handler      *department.Handler
		router       *chi.Mux
		recorder     *httptest.ResponseRecorder
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

		departmentRepo := departmentPostgres.NewDepartmentRepository(db)
		employeeRepo = employeePostgres.NewEmployeeRepository(db)
		service := department.NewService(departmentRepo, employeeRepo, testLogger())
		handler = department.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/api/v1/departamento", func(dr chi.Router) {
			dr.Get("/", handler.GetDepartments)
			dr.Post("/", handler.CreateDepartment)
			dr.Get("/{id}", handler.GetDepartment)
			dr.Put("/{id}", handler.UpdateDepartment)
			dr.Delete("/{id}", handler.DeleteDepartment)
		})
		router.Route("/api/v2/departamento", func(dr chi.Router) {
			dr.Get("/", handler.GetDepartmentsPaged)
			dr.Post("/", handler.CreateDepartment)
			dr.Get("/ativos", handler.GetActiveDepartments)
			dr.Get("/nome/{nome}", handler.GetDepartmentByName)
			dr.Get("/{id}", handler.GetDepartment)
			dr.Put("/{id}", handler.UpdateDepartment)
			dr.Patch("/{id}", handler.PatchDepartment)
			dr.Delete("/{id}", handler.DeleteDepartment)
		})

		seeds := []*departmentDatamodel.Department{
			{Name: "Recursos Humanos", Manager: "Ana Souza", IsActive: true, CreatedAt: time.Now()},
			{Name: "Arquivo Morto", Manager: "Jose Prado", IsActive: false, CreatedAt: time.Now()},
		}
		for _, seed := range seeds {
			Expect(departmentRepo.Create(seed)).To(Succeed())
		}
	})

	Describe("GET /api/v1/departamento", func() {
		It("should list every department", func() {
			doRequest(http.MethodGet, "/api/v1/departamento", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var departments []department.DepartmentResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&departments)).To(Succeed())
			Expect(departments).To(HaveLen(2))
		})
	})

	Describe("POST /api/v1/departamento", func() {
		It("should create a department and point to it via Location", func() {
			body := []byte(`{"nome":"Engenharia","gerente":"Beatriz Rocha","descricao":"Produtos digitais"}`)
			doRequest(http.MethodPost, "/api/v1/departamento", body)

			Expect(recorder.Code).To(Equal(http.StatusCreated))

			var created department.DepartmentResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Name).To(Equal("Engenharia"))
			Expect(created.IsActive).To(BeTrue())
			Expect(recorder.Header().Get("Location")).To(Equal(fmt.Sprintf("/api/v1/departamento/%d", created.ID)))
		})

		It("should reject a duplicate name with the conflict code", func() {
			body := []byte(`{"nome":"Recursos Humanos","gerente":"Outra Pessoa"}`)
			doRequest(http.MethodPost, "/api/v1/departamento", body)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			var envelope errorEnvelope
			Expect(json.NewDecoder(recorder.Body).Decode(&envelope)).To(Succeed())
			Expect(envelope.Error.Code).To(Equal("DUPLICATE_DEPARTMENT_NAME"))
		})

		It("should reject a name shorter than 3 characters", func() {
			body := []byte(`{"nome":"TI","gerente":"Alguem"}`)
			doRequest(http.MethodPost, "/api/v1/departamento", body)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			var envelope errorEnvelope
			Expect(json.NewDecoder(recorder.Body).Decode(&envelope)).To(Succeed())
			Expect(envelope.Error.Type).To(Equal("VALIDATION_ERROR"))
		})

		It("should reject a malformed body", func() {
			doRequest(http.MethodPost, "/api/v1/departamento", []byte("not json"))
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/v1/departamento/{id}", func() {
		It("should return the department", func() {
			doRequest(http.MethodGet, "/api/v1/departamento/1", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var dept department.DepartmentResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&dept)).To(Succeed())
			Expect(dept.Name).To(Equal("Recursos Humanos"))
		})

		It("should return 404 for an unknown id", func() {
			doRequest(http.MethodGet, "/api/v1/departamento/999", nil)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))

			var envelope errorEnvelope
			Expect(json.NewDecoder(recorder.Body).Decode(&envelope)).To(Succeed())
			Expect(envelope.Error.Code).To(Equal("DEPARTMENT_NOT_FOUND"))
		})

		It("should return 400 for a non numeric id", func() {
			doRequest(http.MethodGet, "/api/v1/departamento/abc", nil)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /api/v1/departamento/{id}", func() {
		It("should replace the department", func() {
			body := []byte(`{"nome":"Gente e Gestao","gerente":"Ana Souza","ativo":false}`)
			doRequest(http.MethodPut, "/api/v1/departamento/1", body)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var dept department.DepartmentResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&dept)).To(Succeed())
			Expect(dept.Name).To(Equal("Gente e Gestao"))
			Expect(dept.IsActive).To(BeFalse())
			Expect(dept.UpdatedAt).NotTo(BeNil())
		})

		It("should return 404 for an unknown id", func() {
			body := []byte(`{"nome":"Qualquer Nome","gerente":"Alguem"}`)
			doRequest(http.MethodPut, "/api/v1/departamento/999", body)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("PATCH /api/v2/departamento/{id}", func() {
		It("should apply only the supplied fields", func() {
			body := []byte(`{"gerente":"Nova Gerente"}`)
			doRequest(http.MethodPatch, "/api/v2/departamento/1", body)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var dept department.DepartmentResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&dept)).To(Succeed())
			Expect(dept.Name).To(Equal("Recursos Humanos"))
			Expect(dept.Manager).To(Equal("Nova Gerente"))
		})

		It("should deactivate via ativo false", func() {
			body := []byte(`{"ativo":false}`)
			doRequest(http.MethodPatch, "/api/v2/departamento/1", body)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var dept department.DepartmentResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&dept)).To(Succeed())
			Expect(dept.IsActive).To(BeFalse())
		})
	})

	Describe("DELETE /api/v1/departamento/{id}", func() {
		It("should delete an unreferenced department and answer 204", func() {
			doRequest(http.MethodDelete, "/api/v1/departamento/2", nil)
			Expect(recorder.Code).To(Equal(http.StatusNoContent))
			Expect(recorder.Body.Len()).To(BeZero())

			doRequest(http.MethodGet, "/api/v1/departamento/2", nil)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("should block deletion while employees are associated", func() {
			emp := &employeeDatamodel.Employee{
				Name:         "Joao da Silva",
				Position:     "Analista",
				HiredAt:      time.Now(),
				DepartmentID: 1,
				Salary:       4800.50,
				IsActive:     true,
				CreatedAt:    time.Now(),
			}
			Expect(employeeRepo.Create(emp)).To(Succeed())

			doRequest(http.MethodDelete, "/api/v1/departamento/1", nil)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			var envelope errorEnvelope
			Expect(json.NewDecoder(recorder.Body).Decode(&envelope)).To(Succeed())
			Expect(envelope.Error.Code).To(Equal("DEPARTMENT_HAS_EMPLOYEES"))
			Expect(envelope.Error.Message).To(ContainSubstring("1 funcionários associados"))

			doRequest(http.MethodGet, "/api/v1/departamento/1", nil)
			Expect(recorder.Code).To(Equal(http.StatusOK))

			survivor, err := employeeRepo.GetByID(emp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(survivor).NotTo(BeNil())
		})

		It("should allow deletion once the last employee is removed", func() {
			emp := &employeeDatamodel.Employee{
				Name:         "Joao da Silva",
				Position:     "Analista",
				HiredAt:      time.Now(),
				DepartmentID: 1,
				Salary:       4800.50,
				IsActive:     true,
				CreatedAt:    time.Now(),
			}
			Expect(employeeRepo.Create(emp)).To(Succeed())

			doRequest(http.MethodDelete, "/api/v1/departamento/1", nil)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			deleted, err := employeeRepo.DeleteByID(emp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			doRequest(http.MethodDelete, "/api/v1/departamento/1", nil)
			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})
	})

	Describe("GET /api/v2/departamento", func() {
		It("should return the pagination envelope", func() {
			doRequest(http.MethodGet, "/api/v2/departamento?pageNumber=1&pageSize=1", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var page pagination.Page[department.DepartmentResponse]
			Expect(json.NewDecoder(recorder.Body).Decode(&page)).To(Succeed())
			Expect(page.Data).To(HaveLen(1))
			Expect(page.PageNumber).To(Equal(1))
			Expect(page.PageSize).To(Equal(1))
			Expect(page.TotalCount).To(Equal(int64(2)))
			Expect(page.TotalPages).To(Equal(2))
		})

		It("should fall back to defaults for malformed page parameters", func() {
			doRequest(http.MethodGet, "/api/v2/departamento?pageNumber=abc&pageSize=-5", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var page pagination.Page[department.DepartmentResponse]
			Expect(json.NewDecoder(recorder.Body).Decode(&page)).To(Succeed())
			Expect(page.PageNumber).To(Equal(1))
			Expect(page.PageSize).To(Equal(10))
		})

		It("should clamp an oversized pageSize to 100", func() {
			doRequest(http.MethodGet, "/api/v2/departamento?pageSize=500", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var page pagination.Page[department.DepartmentResponse]
			Expect(json.NewDecoder(recorder.Body).Decode(&page)).To(Succeed())
			Expect(page.PageSize).To(Equal(100))
		})
	})

	Describe("GET /api/v2/departamento/ativos", func() {
		It("should list only active departments", func() {
			doRequest(http.MethodGet, "/api/v2/departamento/ativos", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var departments []department.DepartmentResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&departments)).To(Succeed())
			Expect(departments).To(HaveLen(1))
			Expect(departments[0].Name).To(Equal("Recursos Humanos"))
		})
	})

	Describe("GET /api/v2/departamento/nome/{nome}", func() {
		It("should match the exact name", func() {
			doRequest(http.MethodGet, "/api/v2/departamento/nome/Recursos%20Humanos", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var dept department.DepartmentResponse
			Expect(json.NewDecoder(recorder.Body).Decode(&dept)).To(Succeed())
			Expect(dept.Name).To(Equal("Recursos Humanos"))
		})

		It("should return 404 when the case does not match", func() {
			doRequest(http.MethodGet, "/api/v2/departamento/nome/recursos%20humanos", nil)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})
