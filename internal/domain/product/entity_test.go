package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIsValid(t *testing.T) {
	for _, c := range []Category{CategoryKeepsake, CategoryMemorial, CategoryJewelry, CategoryPackage, CategoryDigital} {
		assert.True(t, c.IsValid(), "category %s should be valid", c)
	}
	assert.False(t, Category("electronics").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestTagList(t *testing.T) {
	p := Product{Tags: "featured, bestseller ,new_arrival"}
	assert.Equal(t, []string{"featured", "bestseller", "new_arrival"}, p.TagList())

	empty := Product{}
	assert.Nil(t, empty.TagList())
}

func TestHasTag(t *testing.T) {
	p := Product{Tags: "featured,bestseller"}
	assert.True(t, p.HasTag("featured"))
	assert.True(t, p.HasTag("Bestseller"))
	assert.False(t, p.HasTag("new_arrival"))
}

func TestIsInStock(t *testing.T) {
	assert.True(t, (&Product{StockQuantity: 3}).IsInStock())
	assert.False(t, (&Product{StockQuantity: 0}).IsInStock())
}

func TestPrimaryImageURL(t *testing.T) {
	p := Product{Images: []ProductImage{
		{URL: "https://cdn.example.com/b.jpg", SortOrder: 2},
		{URL: "https://cdn.example.com/a.jpg", SortOrder: 1},
	}}
	assert.Equal(t, "https://cdn.example.com/a.jpg", p.PrimaryImageURL())

	empty := Product{}
	assert.Equal(t, "", empty.PrimaryImageURL())
}
