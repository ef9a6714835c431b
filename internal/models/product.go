package models

import "fmt"

type Product struct {
	ID          int64             `json:"id" db:"id"`
	Name        string            `json:"name" db:"name" validate:"required"`
	Price       float64           `json:"price" db:"price" validate:"gte=0"`
	Amount      int               `json:"amount" db:"amount" validate:"gte=0"`
	Available   bool              `json:"available" db:"available"`
	Description map[string]string `json:"description"`
}

func (p *Product) Validate() error {
	if p.ID != 0 && p.ID < 1 {
		return fmt.Errorf("invalid product ID: %d", p.ID)
	}
	return validate.Struct(p)
}

type CreateProductRequest struct {
	Name        string            `json:"name" binding:"required"`
	Price       float64           `json:"price" binding:"gte=0"`
	Amount      int               `json:"amount" binding:"gte=0"`
	Available   bool              `json:"available"`
	Description map[string]string `json:"description"`
}
