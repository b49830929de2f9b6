package contentful

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func rawFields(t *testing.T, fields map[string]interface{}) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage, len(fields))
	for name, value := range fields {
		encoded, err := json.Marshal(value)
		require.NoError(t, err)
		out[name] = encoded
	}
	return out
}

func assetEntry(t *testing.T, id, fileURL string) Entry {
	t.Helper()
	return Entry{
		Sys: Sys{ID: id},
		Fields: rawFields(t, map[string]interface{}{
			"file": map[string]interface{}{"url": fileURL},
		}),
	}
}

func linkValue(id string) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{"type": "Link", "linkType": "Entry", "id": id},
	}
}

func TestParsePropertyFullEntry(t *testing.T) {
	parser := NewParser(zap.NewNop())
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	entry := Entry{
		Sys: Sys{ID: "prop-1", CreatedAt: createdAt},
		Fields: rawFields(t, map[string]interface{}{
			"title":           "Lakeview Towers",
			"slug":            "lakeview-towers",
			"propertyType":    "towers",
			"price":           7500000,
			"city":            "Hyderabad",
			"location":        map[string]interface{}{"lat": 17.44, "lon": 78.35},
			"description":     EncodeDocument("Spacious flats."),
			"carpetArea":      1450,
			"floorNumber":     7,
			"totalNoOfFloors": 22,
			"pocessionByDate": "2025-06-30",
			"loanApprovedBy":  "SBI, HDFC",
			"image":           linkValue("asset-1"),
			"developer":       linkValue("dev-1"),
		}),
	}

	inc := Includes{
		Assets: map[string]Entry{
			"asset-1": assetEntry(t, "asset-1", "//images.example.com/tower.jpg"),
			"logo-1":  assetEntry(t, "logo-1", "https://images.example.com/logo.png"),
		},
		Entries: map[string]Entry{
			"dev-1": {
				Sys: Sys{ID: "dev-1"},
				Fields: rawFields(t, map[string]interface{}{
					"name": "Skyline Builders",
					"logo": linkValue("logo-1"),
				}),
			},
		},
	}

	prop := parser.ParseProperty(entry, inc)

	assert.Equal(t, "prop-1", prop.ID)
	assert.Equal(t, "Lakeview Towers", prop.Title)
	assert.Equal(t, "lakeview-towers", prop.Slug)
	assert.EqualValues(t, "towers", prop.PropertyType)
	assert.Equal(t, int64(7500000), prop.Price)
	assert.Equal(t, 17.44, prop.Coordinate.Lat)
	assert.Equal(t, 78.35, prop.Coordinate.Lon)
	assert.Equal(t, "Spacious flats.", prop.Description)
	require.NotNil(t, prop.CarpetArea)
	assert.Equal(t, 1450, *prop.CarpetArea)
	require.NotNil(t, prop.FloorNumber)
	assert.Equal(t, 7, *prop.FloorNumber)
	require.NotNil(t, prop.TotalFloors)
	assert.Equal(t, 22, *prop.TotalFloors)
	assert.Equal(t, "2025-06-30", prop.PossessionDate)
	assert.Equal(t, "SBI, HDFC", prop.LoanApprovedBy)
	assert.Equal(t, createdAt, prop.CreatedAt)

	// Protocol-relative asset URLs come back absolute.
	assert.Equal(t, "https://images.example.com/tower.jpg", prop.ImageURL)

	require.NotNil(t, prop.Developer)
	assert.Equal(t, "Skyline Builders", prop.Developer.Name)
	assert.Equal(t, "https://images.example.com/logo.png", prop.Developer.LogoURL)
}

func TestParsePropertyOptionalFieldsDefault(t *testing.T) {
	parser := NewParser(zap.NewNop())

	entry := Entry{
		Sys: Sys{ID: "prop-2"},
		Fields: rawFields(t, map[string]interface{}{
			"title": "Bare Plot",
			"slug":  "bare-plot",
		}),
	}

	prop := parser.ParseProperty(entry, Includes{})

	assert.Equal(t, int64(0), prop.Price)
	assert.Nil(t, prop.CarpetArea)
	assert.Nil(t, prop.FloorNumber)
	assert.Nil(t, prop.TotalFloors)
	assert.Empty(t, prop.PossessionDate)
	assert.Empty(t, prop.Description)
	assert.Empty(t, prop.ImageURL)
	assert.Nil(t, prop.Developer)
	assert.Equal(t, DefaultCoordinate, prop.Coordinate)
}

func TestParsePropertyMalformedDegradesToStub(t *testing.T) {
	parser := NewParser(zap.NewNop())

	prop := parser.ParseProperty(Entry{Sys: Sys{ID: "broken"}}, Includes{})

	assert.Equal(t, "broken", prop.ID)
	assert.Equal(t, "Error", prop.Title)
	assert.Equal(t, "", prop.Slug)
}

func TestParsePropertyDanglingLinks(t *testing.T) {
	parser := NewParser(zap.NewNop())

	entry := Entry{
		Sys: Sys{ID: "prop-3"},
		Fields: rawFields(t, map[string]interface{}{
			"title":     "Dangling",
			"slug":      "dangling",
			"image":     linkValue("missing-asset"),
			"developer": linkValue("missing-dev"),
		}),
	}

	prop := parser.ParseProperty(entry, Includes{
		Assets:  map[string]Entry{},
		Entries: map[string]Entry{},
	})

	assert.Empty(t, prop.ImageURL)
	assert.Nil(t, prop.Developer)
}

func TestParseBlogEntry(t *testing.T) {
	parser := NewParser(zap.NewNop())

	entry := Entry{
		Sys: Sys{ID: "blog-1"},
		Fields: rawFields(t, map[string]interface{}{
			"title":   "Market Update",
			"slug":    "market-update",
			"content": EncodeDocument("Prices are up.\nRates are steady."),
			"excerpt": "A quick look at the market.",
			"author":  "Priya",
			"image":   linkValue("asset-1"),
		}),
	}
	inc := Includes{Assets: map[string]Entry{
		"asset-1": assetEntry(t, "asset-1", "//images.example.com/chart.png"),
	}}

	post := parser.ParseBlog(entry, inc)

	assert.Equal(t, "Market Update", post.Title)
	assert.Equal(t, "Prices are up.\nRates are steady.", post.Content)
	assert.Equal(t, "A quick look at the market.", post.Excerpt)
	assert.Equal(t, "Priya", post.Author)
	assert.Equal(t, "https://images.example.com/chart.png", post.ImageURL)
}

func TestParseNotificationDefaultsActive(t *testing.T) {
	parser := NewParser(zap.NewNop())

	entry := Entry{
		Sys: Sys{ID: "notif-1"},
		Fields: rawFields(t, map[string]interface{}{
			"title":    "New price list",
			"subject":  "Revised pricing effective April",
			"date":     "2024-04-01",
			"document": linkValue("doc-1"),
		}),
	}
	inc := Includes{Assets: map[string]Entry{
		"doc-1": assetEntry(t, "doc-1", "//assets.example.com/prices.pdf"),
	}}

	notif := parser.ParseNotification(entry, inc)

	assert.True(t, notif.IsActive)
	assert.Equal(t, "2024-04-01", notif.Date)
	assert.Equal(t, "https://assets.example.com/prices.pdf", notif.DocumentURL)
}

func TestBuildIncludes(t *testing.T) {
	collection := EntryCollection{}
	collection.Includes.Asset = []Entry{{Sys: Sys{ID: "a1"}}}
	collection.Includes.Entry = []Entry{{Sys: Sys{ID: "e1"}}, {Sys: Sys{ID: "e2"}}}

	inc := collection.BuildIncludes()

	assert.Len(t, inc.Assets, 1)
	assert.Len(t, inc.Entries, 2)
	assert.Contains(t, inc.Entries, "e2")
}
