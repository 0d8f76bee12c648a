package dto

// LocationRequest body para crear una ubicación de stock.
type LocationRequest struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// LocationResponse ubicación de stock.
type LocationResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}
