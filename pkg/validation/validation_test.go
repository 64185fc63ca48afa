package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/pkg/validation"
)

func validLaunch() dto.LaunchRequest {
	return dto.LaunchRequest{
		Type: "Doação",
		Items: []dto.LaunchItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.Zero},
		},
	}
}

func TestStruct_OK(t *testing.T) {
	in := validLaunch()
	assert.NoError(t, validation.Struct(&in))
}

func TestStruct_ItemsVacios(t *testing.T) {
	in := validLaunch()
	in.Items = []dto.LaunchItemRequest{}

	err := validation.Struct(&in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "items", ve.Field)
}

func TestStruct_CantidadNoPositiva(t *testing.T) {
	in := validLaunch()
	in.Items[0].Quantity = decimal.Zero
	in.Items = append(in.Items, dto.LaunchItemRequest{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-1)})

	err := validation.Struct(&in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Details, "items[0].quantity")
	assert.Contains(t, ve.Details, "items[1].unitPrice")
}

func TestStruct_TipoObligatorio(t *testing.T) {
	in := validLaunch()
	in.Type = ""

	err := validation.Struct(&in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "type", ve.Field)
	assert.Equal(t, "es obligatorio", ve.Reason)
}
