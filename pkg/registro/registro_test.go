package registro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/receituario-api/pkg/registro"
)

func TestValidateCRM(t *testing.T) {
	cases := []struct {
		crm   string
		valid bool
	}{
		{"CRM/SP 123456", true},
		{"CRM/RJ 1", true},
		{"CRM/sp 123456", false},
		{"CRM/SPX 123456", false},
		{"CRM SP 123456", false},
		{"CRM/SP123456", false},
		{"", false},
	}
	for _, tc := range cases {
		err := registro.ValidateCRM(tc.crm)
		if tc.valid {
			assert.NoError(t, err, tc.crm)
		} else {
			assert.Error(t, err, tc.crm)
		}
	}
}

func TestValidateCPF(t *testing.T) {
	assert.NoError(t, registro.ValidateCPF("123.456.789-09"))
	assert.Error(t, registro.ValidateCPF("12345678909"))
	assert.Error(t, registro.ValidateCPF("123.456.789-0"))
}

func TestNormalizeCRM(t *testing.T) {
	crm := registro.NormalizeCRM("  crm/mg   4455 ")
	assert.Equal(t, "CRM/MG 4455", crm)
	assert.NoError(t, registro.ValidateCRM(crm))
}
