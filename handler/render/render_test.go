package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tokenbank/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{core.NewError(core.ErrInsufficientLiquidity, "bank/withdraw-exceeds-value"), http.StatusPreconditionFailed, 100102},
		{core.NewError(core.ErrAccess, "bank/not-owner"), http.StatusForbidden, 100101},
		{errors.New("boom"), http.StatusInternalServerError, http.StatusInternalServerError},
	}

	for _, c := range cases {
		w := httptest.NewRecorder()
		Error(w, c.err)
		assert.Equal(t, c.status, w.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, c.code, resp.Code)
	}
}

func TestWrapResponse(t *testing.T) {
	h := WrapResponse(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			NotFoundRequest(w, errors.New("pool not found"))
			return
		}

		JSON(w, H{"asset_id": "usd"})
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pools/usd", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"asset_id":"usd"}}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pool not found", resp.Msg)
}
