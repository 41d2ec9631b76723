package transport

import "github.com/waysgoods/inventory/internal/models"

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateProductRequest struct {
	Name      string `json:"name"       form:"name"       validate:"required,min=4"`
	BuyPrice  *int64 `json:"buy_price"  form:"buy_price"  validate:"required"`
	SellPrice *int64 `json:"sell_price" form:"sell_price" validate:"required"`
	Stock     *int64 `json:"stock"      form:"stock"      validate:"required"`
}

type UpdateProductRequest struct {
	Name      *string `json:"name"       form:"name"`
	BuyPrice  *int64  `json:"buy_price"  form:"buy_price"`
	SellPrice *int64  `json:"sell_price" form:"sell_price"`
	Stock     *int64  `json:"stock"      form:"stock"`
}

// OwnerProfile is the trimmed user view embedded in product responses,
// without password, role and timestamps.
type OwnerProfile struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
}

type ProductResponse struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	BuyPrice  int64        `json:"buy_price"`
	SellPrice int64        `json:"sell_price"`
	Stock     int64        `json:"stock"`
	Image     string       `json:"image"`
	User      OwnerProfile `json:"user"`
}

type LoginResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(message string, data any) Envelope {
	return Envelope{Status: "Success", Message: message, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Status: "Failed", Message: message}
}

// NewProductResponse shapes a product row for the API, resolving the stored
// image reference to a public URL.
func NewProductResponse(p *models.Product, imageURL string) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		BuyPrice:  p.BuyPrice,
		SellPrice: p.SellPrice,
		Stock:     p.Stock,
		Image:     imageURL,
		User: OwnerProfile{
			ID:       p.User.ID,
			Email:    p.User.Email,
			Fullname: p.User.Fullname,
			Gender:   p.User.Gender,
			Address:  p.User.Address,
		},
	}
}
