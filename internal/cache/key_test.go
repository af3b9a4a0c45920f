package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeKey_NoParams(t *testing.T) {
	assert.Equal(t, "products:summary:count-by-department", MakeKey("products:summary:count-by-department", nil))
	assert.Equal(t, "ns", MakeKey("ns", map[string]interface{}{}))
}

func TestMakeKey_SortsParameterNames(t *testing.T) {
	key := MakeKey("products:list", map[string]interface{}{
		"skip":  0,
		"limit": 10,
		"name":  "shirt",
	})

	assert.Equal(t, `products:list|limit=10|name="shirt"|skip=0`, key)
}

func TestMakeKey_PermutationsAreIdentical(t *testing.T) {
	minPrice := 100.0
	first := map[string]interface{}{}
	first["min_price"] = &minPrice
	first["department_id"] = int64(3)
	first["order"] = "desc"
	first["name"] = nil

	second := map[string]interface{}{}
	second["name"] = nil
	second["order"] = "desc"
	second["department_id"] = int64(3)
	second["min_price"] = 100.0

	for i := 0; i < 20; i++ {
		assert.Equal(t, MakeKey("products:list", first), MakeKey("products:list", second))
	}
}

func TestMakeKey_NilValuesAreKept(t *testing.T) {
	var name *string
	var categoryID *int64

	key := MakeKey("products:list", map[string]interface{}{
		"name":        name,
		"category_id": categoryID,
		"max_price":   nil,
	})

	assert.Equal(t, "products:list|category_id=none|max_price=none|name=none", key)
}

func TestMakeKey_StringNoneDiffersFromNil(t *testing.T) {
	none := "none"
	withString := MakeKey("ns", map[string]interface{}{"name": &none})
	withNil := MakeKey("ns", map[string]interface{}{"name": nil})

	assert.NotEqual(t, withString, withNil)
}

func TestMakeKey_ValueFormatting(t *testing.T) {
	stock := int64(20)
	active := true

	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"int", 42, "ns|v=42"},
		{"int64 pointer", &stock, "ns|v=20"},
		{"float", 149.9, "ns|v=149.9"},
		{"whole float", 100.0, "ns|v=100"},
		{"bool", false, "ns|v=false"},
		{"bool pointer", &active, "ns|v=true"},
		{"string", "Men", `ns|v="Men"`},
		{"string with separator", "a|b=c", `ns|v="a|b=c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MakeKey("ns", map[string]interface{}{"v": tt.value}))
		})
	}
}

func TestMakeKey_DifferentValuesDiffer(t *testing.T) {
	a := MakeKey("products:list", map[string]interface{}{"skip": 0, "limit": 10})
	b := MakeKey("products:list", map[string]interface{}{"skip": 10, "limit": 10})
	c := MakeKey("products:summary", map[string]interface{}{"skip": 0, "limit": 10})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}
