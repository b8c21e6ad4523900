package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// seqAttr records a record's position so scans can be put back in saved order.
	seqAttr = "_seq"
	// markerID is the item that marks a table as written, even when it holds no records.
	markerID = "_venturelink_written"
	// maxTransactItems is DynamoDB's limit for one TransactWriteItems call.
	maxTransactItems = 100
)

type dynamoAPI interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// DynamoBackend keeps one table per Collection, named prefix+collection, with a
// string partition key "id". Tables are provisioned outside this process.
type DynamoBackend struct {
	client dynamoAPI
	prefix string
}

func NewDynamoBackend(ctx context.Context, region, prefix string) (*DynamoBackend, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newDynamoBackend(dynamodb.NewFromConfig(cfg), prefix), nil
}

func newDynamoBackend(client dynamoAPI, prefix string) *DynamoBackend {
	return &DynamoBackend{client: client, prefix: prefix}
}

func (d *DynamoBackend) Name() string { return "dynamo" }

func (d *DynamoBackend) table(coll Collection) *string {
	return aws.String(d.prefix + string(coll))
}

func (d *DynamoBackend) scan(ctx context.Context, coll Collection, projection *string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName:            d.table(coll),
		ProjectionExpression: projection,
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table '%s': %w", *d.table(coll), err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func itemID(item map[string]types.AttributeValue) string {
	if s, ok := item["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func itemSeq(item map[string]types.AttributeValue) int {
	if n, ok := item[seqAttr].(*types.AttributeValueMemberN); ok {
		v, _ := strconv.Atoi(n.Value)
		return v
	}
	return 0
}

func markerItem() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: markerID}}
}

func (d *DynamoBackend) Load(ctx context.Context, coll Collection, out any) (bool, error) {
	items, err := d.scan(ctx, coll, nil)
	if err != nil {
		return false, err
	}

	found := false
	records := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		if itemID(item) == markerID {
			found = true
			continue
		}
		records = append(records, item)
	}
	if !found && len(records) == 0 {
		return false, nil
	}

	sort.SliceStable(records, func(i, j int) bool { return itemSeq(records[i]) < itemSeq(records[j]) })
	for _, item := range records {
		delete(item, seqAttr)
	}
	err = attributevalue.UnmarshalListOfMapsWithOptions(records, out, func(o *attributevalue.DecoderOptions) {
		o.TagKey = "json"
	})
	if err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", coll, err)
	}
	return true, nil
}

// Save replaces the table contents. Collections that fit in one transaction are
// written atomically; larger ones are upserted first and pruned after, so a failure
// part way leaves every earlier record in place.
func (d *DynamoBackend) Save(ctx context.Context, coll Collection, records []any) error {
	existing, err := d.scan(ctx, coll, aws.String("id"))
	if err != nil {
		return err
	}

	keep := map[string]bool{markerID: true}
	puts := make([]map[string]types.AttributeValue, 0, len(records)+1)
	for i, rec := range records {
		item, err := attributevalue.MarshalMapWithOptions(rec, func(o *attributevalue.EncoderOptions) {
			o.TagKey = "json"
		})
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
		item[seqAttr] = &types.AttributeValueMemberN{Value: strconv.Itoa(i)}
		keep[itemID(item)] = true
		puts = append(puts, item)
	}
	puts = append(puts, markerItem())

	var stale []map[string]types.AttributeValue
	for _, key := range existing {
		if !keep[itemID(key)] {
			stale = append(stale, map[string]types.AttributeValue{"id": key["id"]})
		}
	}

	if len(puts)+len(stale) <= maxTransactItems {
		ops := make([]types.TransactWriteItem, 0, len(puts)+len(stale))
		for _, item := range puts {
			ops = append(ops, types.TransactWriteItem{Put: &types.Put{TableName: d.table(coll), Item: item}})
		}
		for _, key := range stale {
			ops = append(ops, types.TransactWriteItem{Delete: &types.Delete{TableName: d.table(coll), Key: key}})
		}
		if _, err := d.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: ops}); err != nil {
			return fmt.Errorf("failed to write table '%s': %w", *d.table(coll), err)
		}
		return nil
	}

	for _, item := range puts {
		if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: d.table(coll), Item: item}); err != nil {
			return fmt.Errorf("failed to put item in table '%s': %w", *d.table(coll), err)
		}
	}
	for _, key := range stale {
		if _, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: d.table(coll), Key: key}); err != nil {
			return fmt.Errorf("failed to delete item from table '%s': %w", *d.table(coll), err)
		}
	}
	return nil
}

// Clear removes every item, the marker included, so the table reads as never written.
func (d *DynamoBackend) Clear(ctx context.Context, coll Collection) error {
	keys, err := d.scan(ctx, coll, aws.String("id"))
	if err != nil {
		return err
	}
	for _, key := range keys {
		_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: d.table(coll),
			Key:       map[string]types.AttributeValue{"id": key["id"]},
		})
		if err != nil {
			return fmt.Errorf("failed to delete item from table '%s': %w", *d.table(coll), err)
		}
	}
	return nil
}

func (d *DynamoBackend) Close(context.Context) error { return nil }
