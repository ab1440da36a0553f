package queries

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// HistoryReader is the read side of ports.OrderHistoryRepository.
type HistoryReader interface {
	List(ctx context.Context, limit int) ([]*order.Order, error)
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

type GetOrderHistoryQueryHandler struct {
	reader HistoryReader
}

func NewGetOrderHistoryQueryHandler(reader HistoryReader) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{reader: reader}
}

// Handle returns an empty, non-nil slice when there is no history.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.List(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp, nil
}
