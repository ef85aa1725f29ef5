package order

import "errors"

var (
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrRoleForbidden  = errors.New("role is not permitted to update order status")
	ErrItemNotInOrder = errors.New("order item does not belong to this order")
	ErrNoItems        = errors.New("at least one item is required")
	ErrInvalidAmount  = errors.New("invalid order amount")
)
