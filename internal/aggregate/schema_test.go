package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaResolve(t *testing.T) {
	schema := Schema{
		{ID: "exact", Labels: []string{"عدد  المستفيدين"}},
		{ID: "drifted", Labels: []string{"عدد الساعات التطوعية"}, Contains: []string{"الساعات"}},
		{ID: "missing", Labels: []string{"اسم المدرب"}},
		{ID: "missingFragment", Contains: []string{"المدرب"}},
	}
	records := []Record{
		{"عدد المستفيدين": 1},
		{"مجموع الساعات": 2},
	}

	cols := schema.Resolve(records)

	assert.Equal(t, "عدد المستفيدين", cols.Label("exact"))
	assert.Equal(t, "مجموع الساعات", cols.Label("drifted"))
	assert.Equal(t, "", cols.Label("missing"))
	assert.Equal(t, "", cols.Label("missingFragment"))
	assert.Equal(t, "", cols.Label("unknown"))
}
