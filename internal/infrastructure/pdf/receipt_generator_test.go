package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Doacoes-api/internal/application/exit"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/infrastructure/pdf"
)

func TestGenerateDonationReceipt(t *testing.T) {
	g := pdf.NewReceiptGenerator("Banco de Alimentos")
	e := &entity.Exit{
		ID: "e-123", Type: entity.ExitTypeDonation, Status: entity.ExitStatusDone,
		Date: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), Beneficiary: "Maria",
		Notes: "Cesta: Básica",
	}
	lines := []exit.ReceiptLine{
		{ProductID: "p1", ProductName: "Arroz", Item: entity.ExitItem{Quantity: decimal.NewFromInt(2), UnitMeasure: "kg"}},
		{ProductID: "p2", ProductName: "p2", Item: entity.ExitItem{Quantity: decimal.RequireFromString("1.5")}},
	}

	out, err := g.GenerateDonationReceipt(e, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
