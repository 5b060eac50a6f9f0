package services

import (
	"io"
	"testing"

	"house-insights/models"
	"house-insights/storage"
	"house-insights/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, io.Discard) }

func sale(id int64, date string, price float64, zip string) *models.Sale {
	return &models.Sale{
		ID:         id,
		Date:       date,
		Price:      price,
		Bedrooms:   3,
		Bathrooms:  1,
		SqftLiving: 1000,
		SqftLot:    5000,
		Floors:     1,
		YrBuilt:    1960,
		Zipcode:    zip,
		Lat:        47.5,
		Long:       -122.2,
	}
}

// abDataset is four sales in two zipcodes: A averages 150000, B 350000.
func abDataset() *models.Dataset {
	s1 := sale(1, "20141013T000000", 100000, "A")
	s2 := sale(2, "20141209T000000", 200000, "A")
	s3 := sale(3, "20150225T000000", 300000, "B")
	s4 := sale(4, "20150225T000000", 400000, "B")

	s1.Bedrooms, s2.Bedrooms, s3.Bedrooms, s4.Bedrooms = 2, 3, 3, 4
	s1.Bathrooms, s2.Bathrooms, s3.Bathrooms, s4.Bathrooms = 1, 1.5, 2, 2.5
	s1.Floors, s2.Floors, s3.Floors, s4.Floors = 1, 1, 2, 3
	s1.YrBuilt, s2.YrBuilt, s3.YrBuilt, s4.YrBuilt = 1950, 1960, 1960, 2000
	s1.SqftLiving, s2.SqftLiving, s3.SqftLiving, s4.SqftLiving = 1000, 2000, 1500, 2500
	s1.SqftLot, s2.SqftLot, s3.SqftLot, s4.SqftLot = 5000, 4000, 3000, 8000
	s1.Lat, s2.Lat, s3.Lat, s4.Lat = 47.0, 47.2, 47.4, 47.6
	s1.Long, s2.Long, s3.Long, s4.Long = -122.0, -122.2, -122.4, -122.6
	s4.Waterfront = true

	return &models.Dataset{
		Source:  "ab",
		Columns: append([]string(nil), storage.RequiredColumns...),
		Sales:   []*models.Sale{s1, s2, s3, s4},
	}
}

func derivedAB(t *testing.T) *models.Dataset {
	t.Helper()
	ds, err := NewFeatureDeriver(newTestLogger()).DeriveFeatures(abDataset())
	if err != nil {
		t.Fatalf("DeriveFeatures: %v", err)
	}
	return ds
}

func emptyDerived() *models.Dataset {
	return &models.Dataset{Source: "empty", Columns: append([]string(nil), storage.RequiredColumns...), Derived: true}
}
