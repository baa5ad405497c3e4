package model

// Product is a row of the products table.
type Product struct {
	ID    int64    `json:"id"`
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// NewProduct builds a Product with every column set.
func NewProduct(id int64, name string, price float64) Product {
	return Product{ID: id, Name: &name, Price: &price}
}
