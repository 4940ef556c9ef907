package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"phonebook/contact"
	"phonebook/httpserver"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) Open(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBookService) Book() *contact.Book {
	return m.Called().Get(0).(*contact.Book)
}

func (m *MockBookService) AddContact(ctx context.Context, name string) (*contact.Contact, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*contact.Contact)
	return c, args.Error(1)
}

func (m *MockBookService) RemoveContact(ctx context.Context, c *contact.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockBookService) RenameContact(ctx context.Context, c *contact.Contact, name string) error {
	return m.Called(ctx, c, name).Error(0)
}

func (m *MockBookService) AddNumber(ctx context.Context, c *contact.Contact, number string, t contact.Type) (*contact.PhoneNumber, error) {
	args := m.Called(ctx, c, number, t)
	p, _ := args.Get(0).(*contact.PhoneNumber)
	return p, args.Error(1)
}

func (m *MockBookService) EditNumber(ctx context.Context, c *contact.Contact, old *contact.PhoneNumber, number string, t contact.Type) (*contact.PhoneNumber, error) {
	args := m.Called(ctx, c, old, number, t)
	p, _ := args.Get(0).(*contact.PhoneNumber)
	return p, args.Error(1)
}

func (m *MockBookService) RemoveNumber(ctx context.Context, c *contact.Contact, p *contact.PhoneNumber) error {
	return m.Called(ctx, c, p).Error(0)
}

func (m *MockBookService) Sort(ctx context.Context) (contact.SortState, error) {
	args := m.Called(ctx)
	return args.Get(0).(contact.SortState), args.Error(1)
}

func (m *MockBookService) Search(query string) []*contact.Contact {
	found, _ := m.Called(query).Get(0).([]*contact.Contact)
	return found
}

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

func newTestServer(t testing.TB, svc contact.Service, opts ...httpserver.Options) *httpserver.Server {
	t.Helper()
	opts = append([]httpserver.Options{
		httpserver.WithBookService(svc),
		httpserver.WithGatherer(prometheus.NewRegistry()),
	}, opts...)
	server, err := httpserver.New(opts...)
	require.NoError(t, err)
	return server
}

func doJSON(server *httpserver.Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "Failed to decode response: %s", rec.Body.String())
	return resp
}

func decodeAPIResult(t testing.TB, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), "Failed to decode result: %s", string(raw))
}

type listResult[T any] struct {
	Data []T `json:"data"`
}
