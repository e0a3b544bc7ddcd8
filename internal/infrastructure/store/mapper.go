package store

import "github.com/souqlens/backend/internal/domain"

// productDocument is the persisted shape of a processed listing. Origin
// and brand stay null in the collection when extraction found nothing,
// matching how absent values are queried downstream.
type productDocument struct {
	Date                 string          `bson:"date"`
	Name                 string          `bson:"name"`
	Origin               *string         `bson:"origin"`
	Brand                *string         `bson:"brand"`
	Unit                 string          `bson:"unit"`
	Price                float64         `bson:"price"`
	Currency             string          `bson:"currency"`
	Source               string          `bson:"source"`
	Category             domain.Category `bson:"category"`
	Confidence           float64         `bson:"confidence"`
	ClassificationMethod string          `bson:"classification_method"`
	OriginalName         string          `bson:"original_name"`
}

// newProductDocument converts a processed product to its persisted shape,
// stamped with the processing date (formatted 2006-01-02).
func newProductDocument(date string, p domain.Product) productDocument {
	return productDocument{
		Date:                 date,
		Name:                 p.ProductName,
		Origin:               p.Origin,
		Brand:                p.Brand,
		Unit:                 p.Unit,
		Price:                p.Price,
		Currency:             p.Currency,
		Source:               p.Source,
		Category:             p.Category,
		Confidence:           p.Confidence,
		ClassificationMethod: p.ClassificationMethod,
		OriginalName:         p.OriginalName,
	}
}

// toStoredProduct converts a persisted document back to the domain model.
func (d productDocument) toStoredProduct() domain.StoredProduct {
	return domain.StoredProduct{
		Product: domain.Product{
			OriginalName:         d.OriginalName,
			ProductName:          d.Name,
			Unit:                 d.Unit,
			Origin:               d.Origin,
			Brand:                d.Brand,
			Price:                d.Price,
			Currency:             d.Currency,
			Source:               d.Source,
			Category:             d.Category,
			Confidence:           d.Confidence,
			ClassificationMethod: d.ClassificationMethod,
		},
		Date: d.Date,
	}
}
