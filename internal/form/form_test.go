package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-desk/internal/httperr"
)

func TestDirtyTracking(t *testing.T) {
	s := New(map[string]string{"name": "Ana", "phone": "(11) 99999-8888"})
	assert.False(t, s.HasChanges())

	s.Set("name", "Ana Costa")
	assert.True(t, s.HasChanges())
	assert.Equal(t, []string{"name"}, s.Changed())

	s.Set("name", "Ana")
	assert.False(t, s.HasChanges(), "restoring the original value clears the change")

	s.Set("email", "ana@exemplo.com")
	assert.Equal(t, []string{"email"}, s.Changed())

	s.Discard()
	assert.False(t, s.HasChanges())
	assert.Equal(t, "", s.Value("email"))
	assert.Equal(t, "Ana", s.Value("name"))
}

func TestSetIf(t *testing.T) {
	s := New(map[string]string{"name": "Ana"})
	s.SetIf("name", nil)
	assert.False(t, s.HasChanges())

	v := "Bia"
	s.SetIf("name", &v)
	assert.Equal(t, "Bia", s.Value("name"))
}

func TestValidate(t *testing.T) {
	s := New(map[string]string{"name": "", "email": "invalido", "phone": "123", "date": "2024-02-30", "time": "10:00"})
	s.AddRules("name", Required())
	s.AddRules("email", Email())
	s.AddRules("phone", Required(), Phone())
	s.AddRules("date", Required(), ISODate())
	s.AddRules("time", Required(), ClockTime())

	err := s.Validate()
	require.Error(t, err)

	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgRequired, ve.Fields["name"])
	assert.Equal(t, MsgEmail, ve.Fields["email"])
	assert.Equal(t, MsgPhone, ve.Fields["phone"])
	assert.Equal(t, MsgDate, ve.Fields["date"])
	assert.NotContains(t, ve.Fields, "time")
}

func TestOptionalRulesSkipEmptyValues(t *testing.T) {
	s := New(map[string]string{"email": "", "phone": ""})
	s.AddRules("email", Email())
	s.AddRules("phone", Phone())
	assert.NoError(t, s.Validate())

	s.ClearRules("phone")
	s.Set("phone", "1")
	assert.NoError(t, s.Validate())
}

func TestRules(t *testing.T) {
	assert.Equal(t, "", Email()("ana@exemplo.com"))
	assert.Equal(t, MsgEmail, Email()("ana@exemplo"))
	assert.Equal(t, MsgEmail, Email()("Ana <ana@exemplo.com>"))
	assert.Equal(t, "", PositiveDecimal()("120.00"))
	assert.Equal(t, MsgPositive, PositiveDecimal()("0"))
	assert.Equal(t, MsgPositive, PositiveDecimal()("-1"))
	assert.Equal(t, "", OneOf("Ativo", "Inativo")("Ativo"))
	assert.Equal(t, MsgOption, OneOf("Ativo", "Inativo")("ativo"))
}
