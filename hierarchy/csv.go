package hierarchy

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// EmployeeHeader is the employees file header row.
var EmployeeHeader = []string{
	"employee_id", "first_name", "family_name", "position_level",
	"manager_employee_id", "region", "office_location", "hire_date",
}

// AssignmentHeader is the assignments file header row.
var AssignmentHeader = []string{
	"assignment_id", "customer_id", "advisor_employee_id",
	"assignment_start_date", "is_current",
}

// WriteCSV writes employees.csv and client_assignments.csv into dir.
func WriteCSV(dir string, employees []Employee, assignments []Assignment) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	empRows := make([][]string, 0, len(employees))
	for _, e := range employees {
		empRows = append(empRows, []string{
			e.EmployeeID, e.FirstName, e.FamilyName, string(e.Role),
			e.ManagerID, e.Region, e.Office, e.HireDate.Format("2006-01-02"),
		})
	}
	if err := writeFile(filepath.Join(dir, "employees.csv"), EmployeeHeader, empRows); err != nil {
		return err
	}

	asgRows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		asgRows = append(asgRows, []string{
			a.AssignmentID, a.CustomerID, a.AdvisorID,
			a.StartDate.Format("2006-01-02"), strconv.FormatBool(a.Current),
		})
	}
	return writeFile(filepath.Join(dir, "client_assignments.csv"), AssignmentHeader, asgRows)
}

func writeFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
