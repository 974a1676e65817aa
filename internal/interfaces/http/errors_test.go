package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
)

// Los errores de infraestructura (pgx, SQL) llegan envueltos al handler;
// la respuesta 500 no debe exponer tablas, columnas ni códigos SQLSTATE.
func TestRespondDomainError_InternoNoFiltraDetalle(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		wrapped := fmt.Errorf("insert item: %w",
			fmt.Errorf(`ERROR: null value in column "category_id" of relation "items" (SQLSTATE 23502)`))
		return respondDomainError(c, wrapped)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "error interno", out.Message)
	assert.NotContains(t, string(body), "SQLSTATE")
	assert.NotContains(t, string(body), "items")
}

// Los errores de dominio mapeados sí conservan su mensaje propio.
func TestRespondDomainError_MapeadosConservanMensaje(t *testing.T) {
	app := fiber.New()
	app.Get("/faltante", func(c *fiber.Ctx) error {
		return respondDomainError(c, fmt.Errorf("aplicar movimiento: %w", &domain.InsufficientStockError{
			ItemID: "i1", ItemName: "Filtro", Requested: 5, Available: 2,
		}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/faltante", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.Contains(t, out.Message, "Filtro")
}
