package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bosko-storefront/internal/diagnostics"
	"bosko-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct {
	token       string
	invalidated int
}

func (s *stubTokens) Token() string { return s.token }

func (s *stubTokens) Invalidate(context.Context) {
	s.invalidated++
	s.token = ""
}

type recordingSink struct {
	reports []diagnostics.Report
}

func (r *recordingSink) Report(_ context.Context, rep diagnostics.Report) {
	r.reports = append(r.reports, rep)
}

func newTestBackend(t *testing.T, h http.HandlerFunc) (*Backend, *recordingSink) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	sink := &recordingSink{}
	return NewBackend(Options{BaseURL: srv.URL + "/api", Sink: sink}), sink
}

func TestBearerTokenAndEnvelopeUnwrap(t *testing.T) {
	var gotAuth, gotRequestID string
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "/api/users/me", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"message":"ok","data":{"id":5,"name":"Ana","role":"Customer","isActive":true}}`)
	})

	user, err := b.Client(&stubTokens{token: "tok"}).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, domain.RoleCustomer, user.Role)
}

func TestBareResponseAndQuery(t *testing.T) {
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("categoryId"))
		_, _ = io.WriteString(w, `[{"id":1,"name":"Shirt","price":19.99,"stock":4}]`)
	})

	cat := int64(3)
	products, err := b.Client(nil).Products(context.Background(), &cat)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.Cents(1999), products[0].Price)
}

func TestAuthEndpointsSkipBearer(t *testing.T) {
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@example.com", req.Email)
		_, _ = io.WriteString(w, `{"token":"new","user":{"id":1,"name":"Ana","role":"Admin"}}`)
	})

	resp, err := b.Client(&stubTokens{token: "old"}).Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Token)
}

func TestResetPasswordIsAnonymous(t *testing.T) {
	calls := 0
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/auth/reset-password", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		if calls == 1 {
			_, _ = io.WriteString(w, `{"message":"Password updated"}`)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Reset token expired"}`)
	})
	ts := &stubTokens{token: "signed-in"}
	client := b.Client(ts)

	msg, err := client.ResetPassword(context.Background(), ResetPasswordRequest{Email: "ana@example.com", Token: "r1", NewPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Password updated", msg)

	_, err = client.ResetPassword(context.Background(), ResetPasswordRequest{Email: "ana@example.com", Token: "r2", NewPassword: "secret1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, http.StatusUnauthorized, verr.Status)
	assert.Equal(t, 0, ts.invalidated)
	assert.Equal(t, "signed-in", ts.token)
}

func TestUnauthorizedInvalidatesCredential(t *testing.T) {
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ts := &stubTokens{token: "tok"}

	_, err := b.Client(ts).Orders(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, ts.invalidated)
	assert.Empty(t, ts.token)
}

func TestBadLoginIsValidationError(t *testing.T) {
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"message":"Invalid credentials"}`)
	})
	ts := &stubTokens{}

	_, err := b.Client(ts).Login(context.Background(), LoginRequest{})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Invalid credentials", ve.Error())
	assert.Zero(t, ts.invalidated)
}

func TestValidationErrorShapes(t *testing.T) {
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"title":"One or more validation errors occurred.","errors":{"Price":["must be positive"],"Name":["required"]}}`)
	})

	_, err := b.Client(nil).CreateProduct(context.Background(), domain.ProductInput{})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, http.StatusBadRequest, ve.Status)
	assert.Equal(t, []string{
		"One or more validation errors occurred.",
		"Name: required",
		"Price: must be positive",
	}, ve.Messages())
	assert.Equal(t, ve.Error(), UserMessage(err))
}

func TestNotFoundMatchesDomainError(t *testing.T) {
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := b.Client(nil).Product(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServerErrorReportsDiagnostics(t *testing.T) {
	b, sink := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "System.NullReferenceException at Orders.Create()")
	})

	_, err := b.Client(nil).CreateOrder(context.Background(), domain.CreateOrderRequest{CustomerID: 1, PaymentMethod: domain.PaymentCash})

	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, genericServerMessage, UserMessage(err))
	assert.NotContains(t, UserMessage(err), "NullReference")
	require.Len(t, sink.reports, 1)
	rep := sink.reports[0]
	assert.Equal(t, http.MethodPost, rep.Method)
	assert.Equal(t, "/orders", rep.Endpoint)
	assert.Equal(t, 500, rep.Status)
	assert.Contains(t, rep.RequestBody, `"paymentMethod":"cash"`)
	assert.Contains(t, rep.ResponseBody, "NullReferenceException")
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	b := NewBackend(Options{BaseURL: base})

	_, err := b.Client(nil).Categories(context.Background())

	assert.True(t, IsUnreachable(err))
	assert.Equal(t, "cannot reach server", UserMessage(err))
}

func TestFailedEnvelopeIsValidationError(t *testing.T) {
	b, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"message":"Category has products","data":null,"errors":["remove products first"]}`)
	})
	err := b.Client(nil).DeleteCategory(context.Background(), 1)
	// DELETE ignores the body when no output is requested.
	assert.NoError(t, err)

	_, err = b.Client(nil).CreateCategory(context.Background(), domain.CategoryInput{Name: "x"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Category has products", "remove products first"}, ve.Messages())
}

func TestListQueryValues(t *testing.T) {
	v := ListQuery{Page: 2, PageSize: 20, Search: "shirt", SortBy: "Name", SortDescending: true,
		Filters: map[string]string{"categoryId": "3", "inStock": ""}}.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "20", v.Get("pageSize"))
	assert.Equal(t, "shirt", v.Get("search"))
	assert.Equal(t, "true", v.Get("sortDescending"))
	assert.Equal(t, "3", v.Get("categoryId"))
	_, ok := v["inStock"]
	assert.False(t, ok)
}

func TestResolveImageURL(t *testing.T) {
	base := "https://localhost:5001"
	assert.Equal(t, PlaceholderImage, ResolveImageURL(base, ""))
	assert.Equal(t, "https://cdn.example.com/a.jpg", ResolveImageURL(base, "https://cdn.example.com/a.jpg"))
	assert.Equal(t, "https://localhost:5001/images/a.jpg", ResolveImageURL(base+"/", "/images/a.jpg"))
	assert.Equal(t, "https://localhost:5001/uploads/a.jpg", ResolveImageURL(base, "a.jpg"))

	b := NewBackend(Options{BaseURL: "https://localhost:5001/api"})
	assert.Equal(t, "https://localhost:5001/uploads/a.jpg", b.ImageURL("a.jpg"))
}
