package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusCreating   OrderStatus = "creating"
	StatusPlaced     OrderStatus = "placed"
	StatusPreparing  OrderStatus = "preparing"
	StatusDelivering OrderStatus = "delivering"
	StatusDelivered  OrderStatus = "delivered"
	StatusReceived   OrderStatus = "received"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Terminal reports whether no further transitions are possible from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusReceived || s == StatusCancelled
}

// Role identifies on whose behalf a transition is requested.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleShop     Role = "shop"
)

func (r Role) String() string {
	return string(r)
}

// PaymentMethod is how the customer intends to pay for an order.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentEWallet    PaymentMethod = "e_wallet"
)

// Option is one selected customization on an order item,
// e.g. {Name: "size", Value: "XL", PriceDiff: 10000}.
// Options are unique by name within a single item.
type Option struct {
	Name      string  `json:"name" validate:"required"`
	Value     string  `json:"value,omitempty"`
	PriceDiff float64 `json:"priceDiff,omitempty"`
}

// OrderItem is one food selection with chosen options and quantity.
// BasePrice is a snapshot of the food price at the time the item was
// added to the order; it must not track later catalog price changes.
type OrderItem struct {
	ID        string   `json:"_id,omitempty"`
	Food      Food     `json:"foodId"`
	BasePrice float64  `json:"basePrice"`
	Options   []Option `json:"options" validate:"dive"`
	Quantity  int      `json:"quantity" validate:"min=1"`
}

// Order is a customer's in-progress or completed purchase from one shop.
// Status is mutated only through validated transitions; TotalAmount must
// always equal the sum of the item line totals.
type Order struct {
	ID              string        `json:"_id"`
	CustomerID      string        `json:"customerId"`
	Shop            Shop          `json:"shopId"`
	Items           []OrderItem   `json:"items" validate:"dive"`
	Status          OrderStatus   `json:"status"`
	TotalAmount     float64       `json:"totalAmount"`
	Note            string        `json:"note,omitempty"`
	PaymentMethod   PaymentMethod `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash credit_card e_wallet"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty"`
	CreatedAt       time.Time     `json:"createdAt,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt,omitempty"`
}

// Editable reports whether note, payment method, delivery address and
// items may still be changed by the owning customer.
func (o *Order) Editable() bool {
	return o.Status == StatusCreating
}

// ActorContext carries the identity on whose behalf service calls are
// made. It is built once by the session service after login and passed
// explicitly; no component reads ambient global state.
type ActorContext struct {
	ActorID string
	Role    Role
	Token   string
}

// OrderEvent is the message published after a successful status
// transition so consumers can refresh their order lists.
type OrderEvent struct {
	OrderID  string      `json:"order_id"`
	Status   OrderStatus `json:"status"`
	Actor    Role        `json:"actor"`
	Occurred time.Time   `json:"occurred"`
}
