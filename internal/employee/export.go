package employee

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Funcionarios"

var reportColumns = []struct {
	header string
	width  float64
}{
	{"ID", 8},
	{"Nome", 30},
	{"Cargo", 25},
	{"CPF", 15},
	{"Email", 30},
	{"Telefone", 18},
	{"Data de Admissão", 18},
	{"Departamento", 25},
	{"Salário", 14},
	{"Nível", 14},
	{"Ativo", 8},
}

// ExportEmployeesReport renders every employee as one row of an xlsx
// workbook, department name attached.
func (s *Service) ExportEmployeesReport() ([]byte, error) {
	employees, err := s.GetAllEmployees()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", reportSheet)

	for i, col := range reportColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("resolving report column: %w", err)
		}
		if err := f.SetCellValue(reportSheet, name+"1", col.header); err != nil {
			return nil, fmt.Errorf("writing report header: %w", err)
		}
		if err := f.SetColWidth(reportSheet, name, name, col.width); err != nil {
			return nil, fmt.Errorf("sizing report column: %w", err)
		}
	}

	for i, emp := range employees {
		row := i + 2
		values := []interface{}{
			emp.ID,
			emp.Name,
			emp.Position,
			optionalCell(emp.CPF),
			optionalCell(emp.Email),
			optionalCell(emp.Phone),
			emp.HiredAt.Format("02/01/2006"),
			emp.DepartmentName,
			emp.Salary,
			emp.SeniorityDescription,
			boolCell(emp.IsActive),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, fmt.Errorf("resolving report cell: %w", err)
			}
			if err := f.SetCellValue(reportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing report row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing report: %w", err)
	}

	s.logger.Info("employee report generated", "employee_count", len(employees))
	return buf.Bytes(), nil
}

func optionalCell(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func boolCell(active bool) string {
	if active {
		return "Sim"
	}
	return "Não"
}
