package models

import "time"

// Role is the privilege level assigned to a user by the server.
// The client never invents roles; it only compares the ones it receives.
type Role string

const (
	RoleUser      Role = "User"
	RoleAdmin     Role = "Admin"
	RoleSuperUser Role = "SuperUser"
)

// IsAdmin reports whether the role carries admin privileges.
// SuperUser is a strict superset of Admin for every authorization check.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperUser
}

// IsSuperUser reports whether the role is the top privilege level.
func (r Role) IsSuperUser() bool {
	return r == RoleSuperUser
}

// UserProfile is the identity returned by the server at login, registration
// and the who-am-i endpoint. Treated as opaque by the client apart from Role.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// Product is a catalog entry.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CartItem is one product line in the current user's cart.
type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the server-side cart for the current user.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// SaleStatus is the fulfilment state of a sale, owned by the server.
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SalePaid      SaleStatus = "paid"
	SaleShipped   SaleStatus = "shipped"
	SaleDelivered SaleStatus = "delivered"
	SaleCancelled SaleStatus = "cancelled"
)

// SaleItem is a product line frozen at checkout time.
type SaleItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Sale is an order created from a cart.
type Sale struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	UserEmail string     `json:"user_email,omitempty"`
	Items     []SaleItem `json:"items"`
	Total     float64    `json:"total"`
	Status    SaleStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
