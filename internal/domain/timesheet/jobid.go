// Package timesheet: reglas puras del dominio de timesheets — construcción del
// Job ID y del unique_id interno, y aritmética de horas. Sin dependencias de
// infraestructura; la unicidad real la garantiza el constraint de storage.
package timesheet

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	abbrPattern = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)
	typePattern = regexp.MustCompile(`^[A-Z]{2,6}$`)
)

// BuildJobID construye el identificador visible {ABBR}-{YY}-{NNNN}-{TYPE}.
// seq es la secuencia provista por el cliente (1 a 4 dígitos, se rellena a 4).
// La unicidad del resultado se verifica contra storage antes de insertar.
func BuildJobID(abbr string, date time.Time, seq, typeCode string) (string, error) {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	if !abbrPattern.MatchString(abbr) {
		return "", fmt.Errorf("timesheet: abreviatura de company inválida %q", abbr)
	}
	seq = strings.TrimSpace(seq)
	n, err := strconv.Atoi(seq)
	if err != nil || n < 0 || len(seq) > 4 {
		return "", fmt.Errorf("timesheet: secuencia inválida %q (1-4 dígitos)", seq)
	}
	typeCode = strings.ToUpper(strings.TrimSpace(typeCode))
	if !typePattern.MatchString(typeCode) {
		return "", fmt.Errorf("timesheet: código de tipo de trabajo inválido %q", typeCode)
	}
	return fmt.Sprintf("%s-%02d-%04d-%s", abbr, date.Year()%100, n, typeCode), nil
}

// NewUniqueID genera la referencia interna TS-{YYYYMMDD}-{NNNN} usada en
// auditoría y en el asunto del email. El sufijo es aleatorio de 4 dígitos
// (zero-padded); no es user-facing y su unicidad la respalda solo el
// constraint de la tabla.
func NewUniqueID(date time.Time, rng *rand.Rand) string {
	var n int
	if rng != nil {
		n = rng.Intn(10000)
	} else {
		n = rand.Intn(10000)
	}
	return fmt.Sprintf("TS-%s-%04d", date.Format("20060102"), n)
}
