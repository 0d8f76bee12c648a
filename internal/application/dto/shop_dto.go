package dto

// UpdateShopRequest body para editar los datos del taller.
type UpdateShopRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ShopResponse taller.
type ShopResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status"`
}
