package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_Encode(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"empty", NewQuery(), ""},
		{"populate all", NewQuery().Populate("*"), "populate=%2A"},
		{"deep relation", NewQuery().PopulateDeep("Subjects"), "populate[Subjects][populate]=%2A"},
		{"sort", NewQuery().Sort("Order:asc", "Name:asc"), "sort=Order%3Aasc%2CName%3Aasc"},
		{"empty sort ignored", NewQuery().Sort(), ""},
		{
			"filter keeps order",
			NewQuery().Filter("Published", "$eq", "true").Sort("Date:desc"),
			"filters[Published][$eq]=true&sort=Date%3Adesc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Encode())
		})
	}
}

func TestQuery_IsImmutable(t *testing.T) {
	base := NewQuery().Populate("*")
	a := base.Sort("Date:desc")
	b := base.Filter("Slug", "$eq", "sports-day")

	assert.Equal(t, "populate=%2A", base.Encode())
	assert.Equal(t, "populate=%2A&sort=Date%3Adesc", a.Encode())
	assert.Equal(t, "populate=%2A&filters[Slug][$eq]=sports-day", b.Encode())
}

func TestRequest_String(t *testing.T) {
	assert.Equal(t, "/school-profile", Request{Path: "school-profile"}.String())
	assert.Equal(t, "/clubs?populate=%2A", Request{Path: "/clubs", Query: NewQuery().Populate("*")}.String())
}
