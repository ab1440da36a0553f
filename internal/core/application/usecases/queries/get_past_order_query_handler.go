package queries

import "context"

type GetPastOrderQueryHandler struct {
	reader HistoryReader
}

func NewGetPastOrderQueryHandler(reader HistoryReader) GetPastOrderQueryHandler {
	return GetPastOrderQueryHandler{reader: reader}
}

// Handle passes through the repository's errs.ObjectNotFoundError.
func (h GetPastOrderQueryHandler) Handle(ctx context.Context, query GetPastOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	return toOrderResponse(o), nil
}
