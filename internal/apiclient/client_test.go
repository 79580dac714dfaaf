package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/domain"
)

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/weblarek/product/", r.URL.Path)
		_, _ = w.Write([]byte(`{"total":2,"items":[
			{"id":"a","title":"+1 hour","description":"d","image":"/a.svg","category":"soft-skill","price":750},
			{"id":"b","title":"Hamster","description":"","image":"/b.svg","category":"other","price":null}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/weblarek/", time.Second)
	products, err := c.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "+1 hour", products[0].Title)
	require.True(t, products[0].Priced())
	require.True(t, decimal.NewFromInt(750).Equal(products[0].Price.Decimal))
	require.False(t, products[1].Priced())
}

func TestFetchProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/product/a" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"NotFound"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"a","title":"A","price":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	p, err := c.FetchProduct(context.Background(), "a")
	require.NoError(t, err)
	require.Equal(t, "A", p.Title)

	_, err = c.FetchProduct(context.Background(), "zz")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.Status)
	require.Equal(t, "NotFound", se.Reason)
}

func TestSubmitOrder(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/order/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"28c57cb4","total":850}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	res, err := c.SubmitOrder(context.Background(), domain.OrderRequest{
		Customer: domain.Customer{Payment: domain.PaymentOnline, Email: "a@b.c", Phone: "+7", Address: "Main St 1"},
		Items:    []string{"a", "b"},
		Total:    decimal.NewFromInt(850),
	})
	require.NoError(t, err)
	require.Equal(t, "28c57cb4", res.ID)
	require.True(t, decimal.NewFromInt(850).Equal(res.Total))

	require.Equal(t, "online", got["payment"])
	require.Equal(t, "Main St 1", got["address"])
	require.Equal(t, float64(850), got["total"])
	require.Equal(t, []any{"a", "b"}, got["items"])
}

func TestSubmitOrderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Wrong total"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.SubmitOrder(context.Background(), domain.OrderRequest{Total: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	require.Contains(t, err.Error(), "Wrong total")
	require.Contains(t, err.Error(), "submit order")
}

func TestContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL, time.Second).FetchProducts(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
