package settings

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestMeta(t *testing.T) {
	s := Settings{
		SchoolName:     "โรงเรียนทดสอบ",
		FinanceOfficer: "ครูการเงิน",
		Auditor:        "ครูตรวจสอบ",
		Director:       "ผอ.ทดสอบ",
	}
	m := s.Meta()
	require.Equal(t, s.SchoolName, m.SchoolName)
	require.Equal(t, s.FinanceOfficer, m.FinanceOfficer)
	require.Equal(t, s.Auditor, m.Auditor)
	require.Equal(t, s.Director, m.Director)
}

func TestValidation(t *testing.T) {
	v := validator.New()

	require.Error(t, v.Struct(Settings{}), "school name is required")
	require.NoError(t, v.Struct(Settings{SchoolName: "โรงเรียนทดสอบ"}))
	require.Error(t, v.Struct(Settings{
		SchoolName: "โรงเรียนทดสอบ",
		Director:   strings.Repeat("ก", 201),
	}))
}
