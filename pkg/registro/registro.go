// Package registro valida los identificadores brasileños usados en el registro:
// CPF (persona física) y CRM (Conselho Regional de Medicina).
package registro

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// crmPattern "CRM/UF 123456": sigla del consejo, UF de dos letras y número.
	crmPattern = regexp.MustCompile(`^CRM/[A-Z]{2}\s\d+$`)
	// cpfPattern "000.000.000-00".
	cpfPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
)

// ValidateCRM valida el formato del registro profesional.
func ValidateCRM(crm string) error {
	if !crmPattern.MatchString(crm) {
		return fmt.Errorf("registro: formato de CRM inválido, use CRM/UF XXXXXX")
	}
	return nil
}

// ValidateCPF valida el formato del CPF con puntuación.
func ValidateCPF(cpf string) error {
	if !cpfPattern.MatchString(cpf) {
		return fmt.Errorf("registro: formato de CPF inválido, use 000.000.000-00")
	}
	return nil
}

// NormalizeCRM quita espacios sobrantes y pasa a mayúsculas ("crm/sp  1234" → "CRM/SP 1234").
func NormalizeCRM(crm string) string {
	return strings.Join(strings.Fields(strings.ToUpper(crm)), " ")
}
