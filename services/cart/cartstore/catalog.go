package cartstore

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
)

//go:embed products.json
var defaultCatalog []byte

type catalogEntry struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// LoadCatalog reads the products from the given json-file or from the embedded catalog when filename is empty.
func LoadCatalog(filename string) ([]cartmodel.Product, error) {
	data := defaultCatalog
	if filename != "" {
		var err error
		data, err = os.ReadFile(filename)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading catalog %s", filename)
		}
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) ([]cartmodel.Product, error) {
	entries := []catalogEntry{}
	err := json.Unmarshal(data, &entries)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing catalog")
	}

	products := make([]cartmodel.Product, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, errors.New("catalog contains product without id")
		}
		if e.Price.IsNegative() {
			return nil, errors.Errorf("catalog contains product %s with negative price", e.ID)
		}
		products = append(products, cartmodel.Product{
			UID:   e.ID,
			Name:  e.Name,
			Price: e.Price,
		})
	}
	return products, nil
}
