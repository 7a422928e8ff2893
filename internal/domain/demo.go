package domain

// DemoProducts is the embedded sample set the loader falls back to when
// the catalog origin is unreachable, so the browser always has
// something to show.
func DemoProducts() []Product {
	price := func(v float64) *float64 { return &v }
	return []Product{
		{
			ID:          "A100",
			Name:        "Remera básica premium",
			Category:    "Indumentaria",
			Subcategory: "Remeras",
			Price:       price(8900),
			Featured:    true,
			Description: "Algodón suave, calce cómodo. Varios talles.",
			Tags:        []string{"ropa", "básicos"},
		},
		{
			ID:          "A101",
			Name:        "Buzo oversize",
			Category:    "Indumentaria",
			Subcategory: "Buzos",
			Price:       price(21900),
			Featured:    true,
			Description: "Oversize, abrigado, ideal invierno.",
			Tags:        []string{"buzo", "invierno"},
		},
		{
			ID:          "B200",
			Name:        "Cartera mini",
			Category:    "Accesorios",
			Subcategory: "Carteras",
			Price:       price(15900),
			Description: "Compacta, cómoda, con cierre.",
			Tags:        []string{"cartera"},
		},
		{
			ID:          "B201",
			Name:        "Aros dorados",
			Category:    "Accesorios",
			Subcategory: "Bijou",
			Price:       price(4500),
			Featured:    true,
			Description: "Livianos y combinables.",
			Tags:        []string{"aros", "bijou"},
		},
	}
}
