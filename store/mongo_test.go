package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/phillip/venturelink/models"
)

func TestSequencedDoc(t *testing.T) {
	doc, err := sequencedDoc(models.Like{ID: "like-1", IdeaID: "1", UserID: "u1"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "like-1", doc["_id"])
	assert.Equal(t, "1", doc["idea_id"])
	assert.Equal(t, 3, doc[seqField])

	_, err = sequencedDoc(struct {
		Name string `bson:"name"`
	}{"no id"}, 0)
	assert.Error(t, err, "records are upserted by _id")
}
