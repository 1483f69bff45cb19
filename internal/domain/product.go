package domain

// Product — товар витрины; после получения от источника данных не меняется.
type Product struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Price       int64    `json:"price" yaml:"price"` // в минимальных единицах валюты
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Images      []string `json:"images" yaml:"images"`
	Stock       int      `json:"stock" yaml:"stock"`
}

// ProductsResult — результат загрузки каталога.
// Products никогда не nil: при ошибке это пустой список, а причина лежит в Err.
type ProductsResult struct {
	Products []Product
	Err      error
}

// Find — поиск товара по ID (линейный проход, каталоги маленькие).
func (r ProductsResult) Find(id string) (Product, bool) {
	for i := range r.Products {
		if r.Products[i].ID == id {
			return r.Products[i], true
		}
	}
	return Product{}, false
}
