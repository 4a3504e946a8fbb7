package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type CreateOrderRequest struct {
	CustomerID  string  `json:"customerId" validate:"required,max=50"`
	ProductName string  `json:"productName" validate:"required,max=200"`
	Quantity    int     `json:"quantity" validate:"required,min=1,max=10000"`
	Price       float64 `json:"price" validate:"required,gt=0,lte=1000000"`
}

type Validator interface {
	Struct(ctx context.Context, s any) error
}

func readJSONBody(v any, r *http.Request) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

func readJSONBodyAndValidate(ctx context.Context, v any, r *http.Request, validator Validator) error {
	if err := readJSONBody(v, r); err != nil {
		return err
	}

	return validator.Struct(ctx, v)
}
