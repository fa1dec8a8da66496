package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() string { return s.token }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, staticTokens{token: token}, nil)
}

func TestLoginNestedUserShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login must not carry a token")
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":"u1","username":"a","role":"admin"},"token":"tok-123"}`))
	}, "")

	result, err := client.Login(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "u1", result.User.ID)
	assert.True(t, result.User.IsAdmin())
}

func TestLoginFlatUserShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","username":"a","token":"tok-123"}`))
	}, "")

	result, err := client.Login(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "a", result.User.Username)
	assert.Equal(t, domain.RoleCustomer, result.User.Role, "missing role defaults to customer")
}

func TestLoginInvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid username or password"}`))
	}, "")

	_, err := client.Login(context.Background(), "a", "wrong")
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err))
	assert.Equal(t, "invalid username or password", err.Error())
}

func TestMeAttachesBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u1","username":"a","role":"customer"}`))
	}, "tok-123")

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", user.Username)
}

func TestListProductsDecodesDecimals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","name":"Widget","price":"19.99","stock":3}]`))
	}, "tok-123")

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 3, products[0].Stock)
}

func TestPlaceOrderStockConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"insufficient stock for Widget"}`))
	}, "tok-123")

	_, err := client.PlaceOrder(context.Background(), domain.OrderRequest{
		Items: []domain.OrderItem{{ProductID: "p1", Quantity: 2}},
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, "insufficient stock for Widget", err.Error())
}

func TestErrorMessageFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}, "")

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, "request failed with status 500", err.Error())
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such product"}`))
	}, "tok-123")

	err := client.DeleteProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNetworkFailureClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := New(srv.URL, time.Second, nil, nil)

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsNetwork(err))
}

func TestDeleteProductSendsBearer(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/products/p1", r.URL.Path)
		w.Write([]byte(`{"message":"deleted"}`))
	}, "tok-123")

	require.NoError(t, client.DeleteProduct(context.Background(), "p1"))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestCreateProductRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p9","name":"Widget","price":"10.00","stock":5}`))
	}, "tok-123")

	product, err := client.CreateProduct(context.Background(), domain.ProductInput{
		Name:  "Widget",
		Price: decimal.RequireFromString("10.00"),
		Stock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", product.ID)
}
