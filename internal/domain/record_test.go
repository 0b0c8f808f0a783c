package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRawDefaultsMissingFields(t *testing.T) {
	r := FromRaw(map[string]string{
		"id":     "siteA_42",
		"source": "siteA",
		"title":  "백엔드 신입",
	})

	assert.Equal(t, "siteA_42", r.ID)
	assert.Equal(t, "siteA", r.Source)
	assert.Equal(t, "백엔드 신입", r.Title)
	assert.Empty(t, r.Company)
	assert.Empty(t, r.Link)
	assert.Empty(t, r.Deadline)
	assert.Empty(t, r.HiddenKeyword)
	assert.False(t, r.IsNew)
	assert.True(t, r.ScrapedAt.IsZero(), "scraped_at is set at acceptance, not ingestion")
}

func TestMakeID(t *testing.T) {
	assert.Equal(t, "jobkorea_49021", MakeID("jobkorea", "49021"))
}
