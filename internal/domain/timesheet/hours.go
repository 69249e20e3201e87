package timesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/timesheet-api/internal/domain/entity"
)

// ParseClock valida una hora de pared "HH:MM" y la devuelve como minutos desde medianoche.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("timesheet: hora inválida %q (formato HH:MM)", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("timesheet: hora inválida %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("timesheet: minutos inválidos en %q", s)
	}
	return h*60 + m, nil
}

// ValidateInterval verifica que un tramo tenga horas bien formadas y que
// time_out sea posterior a time_in.
func ValidateInterval(timeIn, timeOut string) error {
	in, err := ParseClock(timeIn)
	if err != nil {
		return err
	}
	out, err := ParseClock(timeOut)
	if err != nil {
		return err
	}
	if out <= in {
		return fmt.Errorf("timesheet: time_out %q debe ser posterior a time_in %q", timeOut, timeIn)
	}
	return nil
}

// TotalMinutes suma la duración de todos los intervalos de una entry.
// Intervalos malformados aportan cero; la validación ocurre al crear.
func TotalMinutes(intervals []entity.TimeInterval) int {
	total := 0
	for _, iv := range intervals {
		in, err := ParseClock(iv.TimeIn)
		if err != nil {
			continue
		}
		out, err := ParseClock(iv.TimeOut)
		if err != nil {
			continue
		}
		total += out - in
	}
	return total
}

// FormatHours presenta una duración en minutos como "{h}h {m}m", el formato
// del reporte Excel y del email de notificación.
func FormatHours(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
