package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/ivanpodgorny/orderflow/internal/entity"
	"github.com/ivanpodgorny/orderflow/internal/service"
	"github.com/stretchr/testify/mock"
)

type ValidatorMock struct {
	mock.Mock
}

func (m *ValidatorMock) Struct(_ context.Context, s any) error {
	args := m.Called(s)

	return args.Error(0)
}

type OrderCoordinatorMock struct {
	mock.Mock
}

func (m *OrderCoordinatorMock) Create(_ context.Context, req service.CreateRequest, key string) (*entity.Order, error) {
	args := m.Called(req, key)

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *OrderCoordinatorMock) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	args := m.Called(id)

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *OrderCoordinatorMock) GetAll(_ context.Context) ([]entity.Order, error) {
	args := m.Called()

	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *OrderCoordinatorMock) GetAllByCustomer(_ context.Context, customerID string) ([]entity.Order, error) {
	args := m.Called(customerID)

	return args.Get(0).([]entity.Order), args.Error(1)
}

func sendTestRequest(method string, body io.Reader, header http.Header, handler http.HandlerFunc) *http.Response {
	request := httptest.NewRequest(method, "/", body)
	for name, values := range header {
		for _, v := range values {
			request.Header.Add(name, v)
		}
	}
	w := httptest.NewRecorder()
	handler(w, request)

	return w.Result()
}

func sendTestRequestWithURLParam(method, param, value string, handler http.HandlerFunc) *http.Response {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	request := httptest.NewRequest(method, "/", nil).
		WithContext(context.WithValue(context.Background(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	handler(w, request)

	return w.Result()
}
