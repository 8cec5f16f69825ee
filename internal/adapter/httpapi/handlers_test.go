package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apetrov/vendomat-backend/internal/adapter/repository/memory"
	"github.com/apetrov/vendomat-backend/internal/domain"
	"github.com/apetrov/vendomat-backend/internal/usecase/admin"
	"github.com/apetrov/vendomat-backend/internal/usecase/purchase"
	"github.com/apetrov/vendomat-backend/internal/usecase/register"
	"github.com/apetrov/vendomat-backend/internal/usecase/seeder"
)

const testPIN = "4242"

func newTestApp(t *testing.T) (*fiber.App, *register.Register) {
	t.Helper()

	catalog := memory.NewCatalogRepository()
	reg := register.New(domain.GreedyChange)

	s := seeder.NewSeeder(catalog, reg)
	require.NoError(t, s.SeedCatalog(context.Background()))
	s.SeedFloat()

	purchaseService := purchase.NewService(catalog, reg, nil)
	adminService := admin.NewService(admin.PlainPIN(testPIN), reg, catalog, nil)

	return NewApp(reg, purchaseService, adminService), reg
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestInsertCoin(t *testing.T) {
	app, reg := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/v1/coins",
		map[string]any{"denomination": 500}, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(500), body["inserted"])
	assert.Equal(t, domain.Amount(500), reg.InsertedAmount())
}

func TestInsertCoin_UnknownDenomination(t *testing.T) {
	app, reg := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/v1/coins",
		map[string]any{"denomination": 300}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.Amount(0), reg.InsertedAmount())
}

func TestRefund(t *testing.T) {
	app, reg := newTestApp(t)
	reg.Insert(domain.NewCoin(domain.DenominationTwo))
	reg.Insert(domain.NewCoin(domain.DenominationOne))

	resp, body := doJSON(t, app, http.MethodPost, "/v1/refund", nil, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(300), body["total"])
	coins := body["coins"].(map[string]any)
	assert.Equal(t, float64(1), coins["200"])
	assert.Equal(t, float64(1), coins["100"])
	assert.Equal(t, domain.Amount(0), reg.InsertedAmount())
}

func TestBuy_EndToEnd(t *testing.T) {
	app, reg := newTestApp(t)

	// Insert a 10-unit coin and buy the 7-unit lemonade.
	resp, _ := doJSON(t, app, http.MethodPost, "/v1/coins",
		map[string]any{"denomination": 1000}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/v1/purchases",
		map[string]any{"product_id": seeder.DefaultLemonadeID.String()}, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	receipt := body["receipt"].(map[string]any)
	assert.Equal(t, float64(700), receipt["price"])
	assert.Equal(t, float64(1000), receipt["paid"])
	assert.Equal(t, float64(300), receipt["change"])
	changeCoins := receipt["change_coins"].(map[string]any)
	assert.Equal(t, float64(1), changeCoins["200"])
	assert.Equal(t, float64(1), changeCoins["100"])

	assert.Equal(t, domain.Amount(0), reg.InsertedAmount())
}

func TestBuy_Failures(t *testing.T) {
	tests := []struct {
		name       string
		insert     []domain.Denomination
		productID  string
		wantStatus int
		wantReason string
	}{
		{
			name:       "Insufficient funds",
			insert:     []domain.Denomination{domain.DenominationFive},
			productID:  seeder.DefaultLemonadeID.String(),
			wantStatus: http.StatusPaymentRequired,
			wantReason: "insufficient_funds",
		},
		{
			name:       "Unknown product",
			insert:     []domain.Denomination{domain.DenominationTen},
			productID:  "11111111-2222-3333-4444-555555555555",
			wantStatus: http.StatusNotFound,
			wantReason: "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, reg := newTestApp(t)
			for _, d := range tt.insert {
				reg.Insert(domain.NewCoin(d))
			}

			resp, body := doJSON(t, app, http.MethodPost, "/v1/purchases",
				map[string]any{"product_id": tt.productID}, nil)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantReason, body["reason"])
		})
	}
}

func TestAdmin_RequiresPIN(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/v1/admin/cash", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/v1/admin/cash", nil,
		map[string]string{"X-Admin-Pin": "0000"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/v1/admin/cash", nil,
		map[string]string{"X-Admin-Pin": testPIN})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdmin_FloatAndCollect(t *testing.T) {
	app, reg := newTestApp(t)
	auth := map[string]string{"X-Admin-Pin": testPIN}
	before := reg.VaultBalance()

	resp, _ := doJSON(t, app, http.MethodPost, "/v1/admin/float",
		map[string]any{"denomination": 500, "count": 2}, auth)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, before.Add(1000), reg.VaultBalance())

	resp, body := doJSON(t, app, http.MethodPost, "/v1/admin/collect", nil, auth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(before.Add(1000).MinorUnits()), body["total"])
	assert.Equal(t, domain.Amount(0), reg.VaultBalance())
}

func TestAdmin_IncreaseStock(t *testing.T) {
	app, _ := newTestApp(t)
	auth := map[string]string{"X-Admin-Pin": testPIN}

	path := fmt.Sprintf("/v1/admin/products/%s/stock", seeder.DefaultCrispsID)
	resp, _ := doJSON(t, app, http.MethodPost, path, map[string]any{"count": 5}, auth)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost,
		"/v1/admin/products/11111111-2222-3333-4444-555555555555/stock",
		map[string]any{"count": 5}, auth)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
