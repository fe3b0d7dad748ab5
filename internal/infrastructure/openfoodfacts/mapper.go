package openfoodfacts

import "github.com/suppscan/backend/internal/domain"

// productResponse is the wire shape of GET /product/{barcode}.json.
// Status 0 means the barcode is unknown.
type productResponse struct {
	Code    string     `json:"code"`
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// searchResponse is the wire shape of GET /search
type searchResponse struct {
	Products []offProduct `json:"products"`
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// offProduct is the subset of OpenFoodFacts product fields the app consumes
type offProduct struct {
	Code            string  `json:"code"`
	ProductName     string  `json:"product_name"`
	Brands          string  `json:"brands"`
	Categories      string  `json:"categories"`
	IngredientsText string  `json:"ingredients_text"`
	ImageURL        string  `json:"image_url"`
	NutriscoreGrade string  `json:"nutriscore_grade"`
	NovaGroup       float64 `json:"nova_group"`
	EcoscoreGrade   string  `json:"ecoscore_grade"`
}

// mapProduct converts an OpenFoodFacts product to the domain model
func mapProduct(p offProduct) domain.Product {
	return domain.Product{
		Code:            p.Code,
		Name:            p.ProductName,
		Brands:          p.Brands,
		Categories:      p.Categories,
		IngredientsText: p.IngredientsText,
		ImageURL:        p.ImageURL,
		NutriScore:      p.NutriscoreGrade,
		NovaGroup:       int(p.NovaGroup),
		EcoScore:        p.EcoscoreGrade,
	}
}
