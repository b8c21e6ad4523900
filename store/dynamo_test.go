package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	models "github.com/phillip/venturelink/models"
)

var errThrottled = errors.New("throttled")

// fakeDynamo is a single-page, in-memory stand-in for the DynamoDB client.
type fakeDynamo struct {
	tables map[string]map[string]map[string]types.AttributeValue

	failTransact bool
	failPutAfter int // PutItem calls allowed before failing; 0 disables
	puts         int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) table(name *string) map[string]map[string]types.AttributeValue {
	t, ok := f.tables[*name]
	if !ok {
		t = map[string]map[string]types.AttributeValue{}
		f.tables[*name] = t
	}
	return t
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	out := &dynamodb.ScanOutput{}
	for _, item := range f.table(in.TableName) {
		copied := map[string]types.AttributeValue{}
		for k, v := range item {
			if in.ProjectionExpression == nil || k == *in.ProjectionExpression {
				copied[k] = v
			}
		}
		out.Items = append(out.Items, copied)
	}
	return out, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts++
	if f.failPutAfter > 0 && f.puts > f.failPutAfter {
		return nil, errThrottled
	}
	f.table(in.TableName)[itemID(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(f.table(in.TableName), itemID(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	if f.failTransact {
		return nil, errThrottled
	}
	for _, op := range in.TransactItems {
		switch {
		case op.Put != nil:
			f.table(op.Put.TableName)[itemID(op.Put.Item)] = op.Put.Item
		case op.Delete != nil:
			delete(f.table(op.Delete.TableName), itemID(op.Delete.Key))
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func likeRecords(n int) []any {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	out := make([]any, n)
	for i := range out {
		out[i] = models.Like{ID: fmt.Sprintf("like-%03d", i), IdeaID: "1", UserID: "u1", CreatedAt: created}
	}
	return out
}

func loadLikes(t *testing.T, b Backend) ([]models.Like, bool) {
	t.Helper()
	var out []models.Like
	found, err := b.Load(context.Background(), Likes, &out)
	require.NoError(t, err)
	return out, found
}

func TestDynamoEmptiedTableStillExists(t *testing.T) {
	ctx := context.Background()
	b := newDynamoBackend(newFakeDynamo(), "test_")

	_, found := loadLikes(t, b)
	assert.False(t, found, "never-written table")

	require.NoError(t, b.Save(ctx, Likes, likeRecords(3)))
	got, found := loadLikes(t, b)
	assert.True(t, found)
	require.Len(t, got, 3)
	assert.Equal(t, "like-000", got[0].ID)
	assert.Equal(t, "like-002", got[2].ID)

	require.NoError(t, b.Save(ctx, Likes, nil))
	got, found = loadLikes(t, b)
	assert.True(t, found, "an emptied collection still exists")
	assert.Empty(t, got)

	require.NoError(t, b.Clear(ctx, Likes))
	_, found = loadLikes(t, b)
	assert.False(t, found)
}

func TestDynamoSavePrunesRemovedRecords(t *testing.T) {
	ctx := context.Background()
	b := newDynamoBackend(newFakeDynamo(), "test_")

	recs := likeRecords(3)
	require.NoError(t, b.Save(ctx, Likes, recs))
	require.NoError(t, b.Save(ctx, Likes, []any{recs[2], recs[0]}))

	got, _ := loadLikes(t, b)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"like-002", "like-000"}, []string{got[0].ID, got[1].ID}, "saved order kept")
}

func TestDynamoFailedTransactionKeepsPreviousRecords(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	b := newDynamoBackend(fake, "test_")
	require.NoError(t, b.Save(ctx, Likes, likeRecords(3)))

	fake.failTransact = true
	assert.ErrorIs(t, b.Save(ctx, Likes, likeRecords(1)), errThrottled)

	got, found := loadLikes(t, b)
	assert.True(t, found)
	assert.Len(t, got, 3)
}

func TestDynamoLargeSaveFailureNeverShrinksTable(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	b := newDynamoBackend(fake, "test_")
	require.NoError(t, b.Save(ctx, Likes, likeRecords(150)))
	before, _ := loadLikes(t, b)
	require.Len(t, before, 150)

	fake.puts = 0
	fake.failPutAfter = 10
	assert.ErrorIs(t, b.Save(ctx, Likes, likeRecords(120)), errThrottled)

	after, found := loadLikes(t, b)
	assert.True(t, found)
	assert.Len(t, after, 150, "no record deleted before every put succeeded")
}

func TestDemoIdeasNotRestoredAfterCatalogueEmptied(t *testing.T) {
	ctx := context.Background()
	st := New(newDynamoBackend(newFakeDynamo(), "test_"), zap.NewNop(), WithDemoIdeas())
	require.NoError(t, st.Seed(ctx))
	require.Len(t, st.Ideas.All(ctx), 2)

	st.Ideas.Save(ctx, []models.Idea{})
	assert.Empty(t, st.Ideas.All(ctx), "demo ideas must not come back")

	require.NoError(t, st.Seed(ctx))
	assert.Empty(t, st.Ideas.All(ctx), "seeding only applies to a never-written collection")
}
