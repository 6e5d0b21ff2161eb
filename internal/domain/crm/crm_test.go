package crm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/crm"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
)

func TestNextIdentifier(t *testing.T) {
	cases := []struct {
		name, prefix, last, want string
	}{
		{"sin previos", "L", "", "L001"},
		{"siguiente", "L", "L007", "L008"},
		{"crece el ancho", "L", "L999", "L1000"},
		{"cliente", "CUST", "CUST002", "CUST003"},
		{"sufijo no numérico reinicia", "EMP", "EMPabc", "EMP001"},
		{"prefijo ajeno reinicia", "L", "X12", "L001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, crm.NextIdentifier(tc.prefix, tc.last))
		})
	}
}

func TestIdentifierPattern_EscapaPrefijo(t *testing.T) {
	assert.Equal(t, "^CUST[0-9]+$", crm.IdentifierPattern("CUST"))
	assert.Equal(t, `^A\.B[0-9]+$`, crm.IdentifierPattern("A.B"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "911234567890", crm.NormalizePhone("+91 1234567890"))
	assert.Equal(t, "911234567890", crm.NormalizePhone(" +91-12345 67890 "))
	assert.Equal(t, "", crm.NormalizePhone("   "))
	assert.Equal(t, "", crm.NormalizePhone("sin número"))
}

func TestSplitFullName(t *testing.T) {
	first, last := crm.SplitFullName("  Ravi   Kumar  Sharma ")
	assert.Equal(t, "Ravi", first)
	assert.Equal(t, "Kumar Sharma", last)

	first, last = crm.SplitFullName("Priya")
	assert.Equal(t, "Priya", first)
	assert.Empty(t, last)

	first, last = crm.SplitFullName("   ")
	assert.Empty(t, first)
	assert.Empty(t, last)

	// "José" con tilde combinante se compone a NFC.
	first, _ = crm.SplitFullName("José Pérez")
	assert.Equal(t, "José", first)
}

func TestResolutionFromMatches(t *testing.T) {
	assert.Equal(t, crm.NotFound, crm.ResolutionFromMatches(nil).Outcome)
	r := crm.ResolutionFromMatches([]string{"S1"})
	assert.Equal(t, crm.Resolved, r.Outcome)
	assert.Equal(t, "S1", r.ID)
	assert.Equal(t, crm.Ambiguous, crm.ResolutionFromMatches([]string{"S1", "S2"}).Outcome)
}

func TestResolveTwoStep(t *testing.T) {
	t.Run("primer nombre único gana", func(t *testing.T) {
		r := crm.ResolveTwoStep([]string{"EMP001"}, []string{"EMP002"})
		assert.Equal(t, crm.Resolution{Outcome: crm.Resolved, ID: "EMP001"}, r)
	})
	t.Run("primer nombre repetido, nombre completo desempata", func(t *testing.T) {
		r := crm.ResolveTwoStep([]string{"EMP001", "EMP002"}, []string{"EMP002"})
		assert.Equal(t, crm.Resolution{Outcome: crm.Resolved, ID: "EMP002"}, r)
	})
	t.Run("primer nombre repetido sin nombre completo es ambiguo", func(t *testing.T) {
		r := crm.ResolveTwoStep([]string{"EMP001", "EMP002"}, nil)
		assert.Equal(t, crm.Ambiguous, r.Outcome)
	})
	t.Run("nombre completo duplicado es ambiguo", func(t *testing.T) {
		r := crm.ResolveTwoStep(nil, []string{"EMP001", "EMP002"})
		assert.Equal(t, crm.Ambiguous, r.Outcome)
	})
	t.Run("sin coincidencias", func(t *testing.T) {
		assert.Equal(t, crm.NotFound, crm.ResolveTwoStep(nil, nil).Outcome)
	})
}

func TestCheckProjectStatus(t *testing.T) {
	rera := "RERA/123"
	blank := "  "

	require.NoError(t, crm.CheckProjectStatus(entity.ProjectStatusPreLaunch, nil))
	require.NoError(t, crm.CheckProjectStatus(entity.ProjectStatusCompleted, &rera))

	err := crm.CheckProjectStatus(entity.ProjectStatusCompleted, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = crm.CheckProjectStatus(entity.ProjectStatusReraApproved, &blank)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "rera_number", de.Field)

	err = crm.CheckProjectStatus("SOLD_OUT", &rera)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "status", de.Field)
}

func TestValidProjectType(t *testing.T) {
	assert.True(t, crm.ValidProjectType("Villa"))
	assert.True(t, crm.ValidProjectType("Apartment"))
	assert.False(t, crm.ValidProjectType("villa"))
}
