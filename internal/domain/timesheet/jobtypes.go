package timesheet

import "github.com/jhoicas/timesheet-api/internal/domain/entity"

// BuiltinJobTypes es el catálogo fijo que se sirve cuando el registro de tipos
// de trabajo está vacío o la consulta falla. El orden es parte del contrato.
func BuiltinJobTypes() []entity.JobType {
	return []entity.JobType{
		{Code: "CON", Name: "Content"},
		{Code: "WTR", Name: "Water"},
		{Code: "MLD", Name: "Mold"},
		{Code: "STC", Name: "Structured Cleaning"},
		{Code: "TRM", Name: "Trauma"},
		{Code: "TMP", Name: "Temporary Services"},
	}
}
