package models

// OptionChoice is one selectable value of an option group, with the
// price delta it contributes to the line total.
type OptionChoice struct {
	Name      string  `json:"name"`
	PriceDiff float64 `json:"priceDiff,omitempty"`
}

// OptionGroup is a named customization axis offered by a food,
// e.g. "size" with choices XL/L or "flavor" with choices orange/green.
type OptionGroup struct {
	Name   string         `json:"name" validate:"required"`
	Values []OptionChoice `json:"values"`
}

// Food is a menu entry offered by a shop.
type Food struct {
	ID            string        `json:"_id"`
	Name          string        `json:"name" validate:"required,min=1,max=100"`
	Description   string        `json:"description,omitempty" validate:"omitempty,max=500"`
	Image         string        `json:"image,omitempty"`
	Price         float64       `json:"price" validate:"gt=0"`
	OriginalPrice float64       `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	Options       []OptionGroup `json:"options,omitempty" validate:"dive"`
	ShopID        string        `json:"shopId,omitempty"`
	CategoryID    string        `json:"categoryId,omitempty"`
	SoldCount     int           `json:"soldCount,omitempty"`
}

// Category groups foods for browsing.
type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Shop is a seller. UserID links the shop to the owning user account,
// which is how shop-role authorization is decided for an order.
type Shop struct {
	ID       string `json:"_id"`
	UserID   string `json:"userId"`
	ShopName string `json:"shopName" validate:"required"`
	Address  string `json:"address,omitempty"`
	Image    string `json:"image,omitempty"`
}
