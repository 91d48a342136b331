package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndListProducts(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newFarmer(t, "265888123456")

	rec := env.doJSON(t, http.MethodPost, "/api/products/register", map[string]any{
		"product_id": "ADIS-0001",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, "ADIS-0001", data["product_id"])
	require.Equal(t, "active", data["status"])

	rec = env.doJSON(t, http.MethodGet, "/api/products/my-products", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeBody(t, rec)["data"].([]any)
	require.Len(t, products, 1)
}

func TestRegisterProductTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newFarmer(t, "265888123456")
	_, otherToken := env.newFarmer(t, "265999654321")

	rec := env.doJSON(t, http.MethodPost, "/api/products/register", map[string]any{
		"product_id": "ADIS-0001",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Neither the same farmer nor another one can claim the serial again.
	for _, tok := range []string{token, otherToken} {
		rec = env.doJSON(t, http.MethodPost, "/api/products/register", map[string]any{
			"product_id": "ADIS-0001",
		}, tok)
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "Product is already registered", decodeBody(t, rec)["error"])
	}
}

func TestProductDataScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.newFarmer(t, "265888123456")
	_, otherToken := env.newFarmer(t, "265999654321")

	rec := env.doJSON(t, http.MethodPost, "/api/products/register", map[string]any{
		"product_id": "ADIS-0001",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/products/data", map[string]any{
		"product_id":    "ADIS-0001",
		"soil_moisture": 41.5,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/api/products/ADIS-0001/data", nil, ownerToken)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	latest := data["latest_data"].(map[string]any)
	require.Equal(t, 41.5, latest["soil_moisture"])

	// Another farmer asking for the same serial learns nothing beyond 404.
	rec = env.doJSON(t, http.MethodGet, "/api/products/ADIS-0001/data", nil, otherToken)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found", decodeBody(t, rec)["error"])
}

func TestUpdateSettingsValidatesStatus(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newFarmer(t, "265888123456")
	_, otherToken := env.newFarmer(t, "265999654321")

	rec := env.doJSON(t, http.MethodPost, "/api/products/register", map[string]any{
		"product_id": "ADIS-0001",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPut, "/api/products/ADIS-0001/settings", map[string]any{
		"status": "paused",
	}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid status. Must be one of: active, inactive, maintenance", decodeBody(t, rec)["error"])

	rec = env.doJSON(t, http.MethodPut, "/api/products/ADIS-0001/settings", map[string]any{
		"status": "maintenance",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "maintenance", env.products.products[0].Status)

	rec = env.doJSON(t, http.MethodPut, "/api/products/ADIS-0001/settings", map[string]any{
		"status": "inactive",
	}, otherToken)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "maintenance", env.products.products[0].Status)
}

func TestIngestRejectsUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/products/data", map[string]any{
		"product_id":    "ADIS-9999",
		"soil_moisture": 33.0,
	}, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found", decodeBody(t, rec)["error"])
	require.Empty(t, env.telemetry.readings)
}

func TestIngestDefaultsSystemStatus(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newFarmer(t, "265888123456")

	rec := env.doJSON(t, http.MethodPost, "/api/products/register", map[string]any{
		"product_id": "ADIS-0001",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/products/data", map[string]any{
		"product_id":  "ADIS-0001",
		"temperature": 27.0,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, env.telemetry.readings, 1)
	require.Equal(t, "active", env.telemetry.readings[0].SystemStatus)
}
