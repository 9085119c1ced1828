package main

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
	"github.com/ghuser/itemtracker/services/item/domain/models"
)

var (
	specNumbers = []string{
		"BD-200", "BD-201", "BD-202", "BD-300", "BD-301", "CF-100", "CF-101",
		"CF-200", "LT-500", "LT-501", "LT-600", "HT-100", "HT-200",
	}
	itemNames = []string{
		"Drapery", "Curtains", "Blinds", "Shades", "Bedding Set", "Pillows", "Towels",
		"Bath Mat", "Rug", "Carpet", "Lamp", "Chandelier", "Wall Art", "Mirror",
		"Desk Chair", "Coffee Table", "Sofa", "Dining Table", "Cabinet",
	}
	vendors = []string{
		"ABC Drapery", "Modern Home Solutions", "Luxury Interiors Inc", "Premium Furnishings",
		"Elite Decor Co", "Style & Design LLC", "Comfort Living", "Classic Interiors",
	}
	hotels = []string{
		"Sunrise Inn", "Grand Hotel", "Oceanview Resort", "Mountain Lodge", "City Center Hotel",
		"Beachside Resort", "Downtown Plaza", "Garden Inn", "Riverside Hotel",
	}
	phases     = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10"}
	locations  = []string{"Guest Room", "Lobby", "Restaurant", "Conference Room", "Spa", "Pool Area", "Suite", "Hallway"}
	categories = []string{"Drapery", "Furniture", "Lighting", "Bedding", "Bath", "Flooring", "Decor", "Outdoor"}
	shipNotes  = []string{
		"Fragile, requires special packaging", "Heavy item, use freight elevator", "Standard shipping",
		"White glove delivery", "Assembly required on site", "Indoor storage only",
	}
	notes = []string{
		"Verify dimensions before installation", "Color match required", "Custom finish requested",
		"Rush order", "Review before final approval", "Quality check required",
	}
)

// sampleItems builds n create inputs numbered ITEM-0001 upward. Dates are
// spread around now; shipping milestones are always chronological.
func sampleItems(f *gofakeit.Faker, n int, now time.Time) []appsvcs.CreateItemInput {
	now = now.UTC().Truncate(time.Second)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	horizon := now.AddDate(0, 6, 0)

	inputs := make([]appsvcs.CreateItemInput, 0, n)
	for i := 1; i <= n; i++ {
		vendor := f.RandomString(vendors)
		hotel := f.RandomString(hotels)
		location := f.RandomString(locations)

		in := appsvcs.CreateItemInput{
			ItemNumber:    fmt.Sprintf("ITEM-%04d", i),
			SpecNumber:    f.RandomString(specNumbers),
			ItemName:      f.RandomString(itemNames),
			Vendor:        vendor,
			Phase:         f.RandomString(phases),
			ShipTo:        hotel,
			ShipToAddress: fmt.Sprintf("%s, %s, %s, %s %s", hotel, f.Street(), f.City(), f.StateAbr(), f.Zip()),
			ShipFrom:      vendor,
			Qty:           float64(f.Number(1, 20)),
			Price:         decimal.NewFromFloat(f.Price(500, 10500)).Round(2),
			ShipNotes:     f.RandomString(shipNotes),
			Notes:         f.RandomString(notes),
			Location:      location,
			Category:      f.RandomString(categories),
			UploadFile:    fmt.Sprintf("%s %s.pdf", f.RandomString(specNumbers), location),
			Dates:         map[models.TrackingDateField]time.Time{},
		}

		maybe := func(field models.TrackingDateField, percent int, from, to time.Time) {
			if f.Number(1, 100) <= percent {
				in.Dates[field] = f.DateRange(from, to).UTC().Truncate(time.Second)
			}
		}
		maybe(models.PoApprovalDate, 70, yearStart, now)
		maybe(models.HotelNeedByDate, 70, now, horizon)
		maybe(models.ExpectedDelivery, 60, now, horizon)
		maybe(models.CfaShopsSend, 50, yearStart, now)
		maybe(models.CfaShopsApproved, 40, yearStart, now)
		maybe(models.CfaShopsDelivered, 30, yearStart, now)

		// Shipping milestones advance in sequence so the order invariant holds.
		if f.Number(1, 100) <= 60 {
			ordered := f.DateRange(yearStart, now).UTC().Truncate(time.Second)
			in.Dates[models.OrderedDate] = ordered
			if f.Bool() {
				shipped := ordered.AddDate(0, 0, f.Number(1, 30))
				in.Dates[models.ShippedDate] = shipped
				if f.Bool() {
					in.Dates[models.DeliveredDate] = shipped.AddDate(0, 0, f.Number(1, 14))
				}
			}
		}

		inputs = append(inputs, in)
	}
	return inputs
}
