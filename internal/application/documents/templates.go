package documents

import (
	"fmt"
	"strings"

	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
)

// Textos base por tipo. Los campos del paciente faltantes quedan como marcadores entre corchetes.
const (
	prescriptionTemplate = `Paciente: {name}
CPF: {cpf}

Medicação:
1. [Nome do Medicamento] - [Dosagem] - [Posologia]
2. [Nome do Medicamento] - [Dosagem] - [Posologia]

Observações:
[Incluir observações relevantes]`

	certificateTemplate = `Paciente: {name}
CPF: {cpf}

Atesto para os devidos fins que o(a) paciente encontra-se [em tratamento/incapacitado(a)] devido a [motivo], no período de [data inicial] a [data final].

Observações:
[Incluir observações relevantes]`

	examRequestTemplate = `Paciente: {name}
CPF: {cpf}
Data Nasc.: {birthDate}

Solicito a realização dos seguintes exames:
1. [Nome do Exame]
2. [Nome do Exame]

Justificativa:
[Incluir justificativa clínica]`
)

// TemplatePatient datos opcionales para pre-llenar el texto.
type TemplatePatient struct {
	Name      string
	CPF       string
	BirthDate string // YYYY-MM-DD o RFC3339
}

// Template devuelve el texto base del tipo con los datos del paciente sustituidos.
func (uc *DocumentUseCase) Template(docType string, p TemplatePatient) (string, error) {
	var base string
	switch docType {
	case entity.DocumentTypePrescription:
		base = prescriptionTemplate
	case entity.DocumentTypeCertificate:
		base = certificateTemplate
	case entity.DocumentTypeExamRequest:
		base = examRequestTemplate
	default:
		return "", fmt.Errorf("%w: tipo %q inválido", domain.ErrValidation, docType)
	}

	birth := "[DD/MM/AAAA]"
	if t, err := ParseBirthDate(p.BirthDate); err != nil {
		return "", err
	} else if t != nil {
		birth = t.Format("02/01/2006")
	}

	r := strings.NewReplacer(
		"{name}", orPlaceholder(p.Name, "[Nome do Paciente]"),
		"{cpf}", orPlaceholder(p.CPF, "[CPF do Paciente]"),
		"{birthDate}", birth,
	)
	return r.Replace(base), nil
}

func orPlaceholder(s, placeholder string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return placeholder
}
