package models

// User is the account the app is logged in as. Credentials never live
// here; authentication happens on the remote backend and the client
// only holds the issued tokens. A non-empty ShopID marks a shop owner.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	ShopID   string `json:"shopId,omitempty"`
}
