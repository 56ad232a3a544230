package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La especificación embebida debe existir y ser JSON válido: sin contenido el
// middleware de swagger entra en pánico al montarse y el binario no arranca.
func TestSwaggerSpecEmbebida(t *testing.T) {
	require.NotEmpty(t, swaggerSpec)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(swaggerSpec, &doc))
	assert.Contains(t, doc, "info")
	assert.Contains(t, doc, "paths")
}

// Montar el middleware con el mismo Config que usa main no debe entrar en
// pánico aunque el working directory no tenga ./docs, y /docs debe servir la UI.
func TestSwaggerUIDisponible(t *testing.T) {
	app := fiber.New()
	require.NotPanics(t, func() {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: swaggerSpec,
			Path:        "docs",
			Title:       "Almacén API",
		}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
