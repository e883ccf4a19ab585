package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/greennest-api/internal/session"
)

func serve(t *testing.T, h http.HandlerFunc, identity *session.Identity, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if identity != nil {
		req = req.WithContext(session.NewContext(req.Context(), &session.Session{Identity: identity}))
	}
	rec := httptest.NewRecorder()
	h(rec, req)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&decoded))
	return rec.Code, decoded
}

func TestHandler_AddGetRemoveCheckout(t *testing.T) {
	identity := &session.Identity{ID: uuid.New(), Email: "a@x.com", Name: "Ana"}
	h := NewHandler(NewService(newMemoryStore(identity.ID)))

	code, body := serve(t, h.AddToCart, identity, `{"productId":"p1","name":"Fern","price":10,"image":"fern.png"}`)
	require.Equal(t, http.StatusOK, code)
	serve(t, h.AddToCart, identity, `{"productId":"p1","name":"Fern","price":10,"image":"fern.png"}`)

	code, body = serve(t, h.GetCart, identity, ``)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	lines := body["cart"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, "p1", line["productId"])
	assert.Equal(t, float64(2), line["quantity"])

	code, body = serve(t, h.RemoveFromCart, identity, `{"productId":"p1"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["cart"].([]any))

	code, body = serve(t, h.Checkout, identity, ``)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Order placed successfully", body["message"])
}

func TestHandler_RequiresIdentity(t *testing.T) {
	store := newMemoryStore()
	h := NewHandler(NewService(store))

	for _, fn := range []http.HandlerFunc{h.AddToCart, h.GetCart, h.RemoveFromCart, h.Checkout} {
		code, body := serve(t, fn, nil, `{"productId":"p1"}`)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "NOT_AUTHENTICATED", body["code"])
	}
	assert.Empty(t, store.carts)
}

func TestHandler_AddToCartValidation(t *testing.T) {
	identity := &session.Identity{ID: uuid.New()}
	h := NewHandler(NewService(newMemoryStore(identity.ID)))

	code, _ := serve(t, h.AddToCart, identity, `{"name":"Fern"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, h.AddToCart, identity, `{"productId":"p1","price":-1}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_UnknownUser(t *testing.T) {
	identity := &session.Identity{ID: uuid.New()}
	h := NewHandler(NewService(newMemoryStore()))

	code, body := serve(t, h.AddToCart, identity, `{"productId":"p1"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", body["message"])
}
