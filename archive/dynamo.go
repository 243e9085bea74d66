package archive

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DDBClient is the subset of the DynamoDB API used by DynamoRegistry.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoRegistry implements Registry on a DynamoDB table keyed by
// experiment (partition) and version (sort).
type DynamoRegistry struct {
	client    DDBClient
	tableName string
}

// NewDynamoRegistry creates a registry on the given table.
func NewDynamoRegistry(client DDBClient, tableName string) *DynamoRegistry {
	return &DynamoRegistry{
		client:    client,
		tableName: tableName,
	}
}

// DialDynamo creates a DynamoRegistry using the default AWS credential chain.
func DialDynamo(ctx context.Context, tableName, region string) (*DynamoRegistry, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	return NewDynamoRegistry(dynamodb.NewFromConfig(cfg), tableName), nil
}

func (r *DynamoRegistry) Latest(ctx context.Context, experiment string) (Entry, error) {
	entries, err := r.query(ctx, experiment, 1)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNoRuns
	}
	return entries[0], nil
}

func (r *DynamoRegistry) Commit(ctx context.Context, e Entry) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"experiment": &types.AttributeValueMemberS{Value: e.Experiment},
			"version":    &types.AttributeValueMemberN{Value: strconv.FormatUint(e.Version, 10)},
			"report_key": &types.AttributeValueMemberS{Value: e.Key},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("archive: commit version %d: %w", e.Version, err)
	}
	return nil
}

func (r *DynamoRegistry) History(ctx context.Context, experiment string, limit int) ([]Entry, error) {
	return r.query(ctx, experiment, limit)
}

func (r *DynamoRegistry) query(ctx context.Context, experiment string, limit int) ([]Entry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("experiment = :exp"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":exp": &types.AttributeValueMemberS{Value: experiment},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	var out []Entry
	for {
		resp, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("archive: query %s: %w", experiment, err)
		}
		for _, item := range resp.Items {
			e, err := decodeEntry(item)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				return out, nil
			}
		}
		if len(resp.LastEvaluatedKey) == 0 {
			return out, nil
		}
		input.ExclusiveStartKey = resp.LastEvaluatedKey
	}
}

func decodeEntry(item map[string]types.AttributeValue) (Entry, error) {
	exp, ok := item["experiment"].(*types.AttributeValueMemberS)
	if !ok {
		return Entry{}, errors.New("archive: invalid experiment attribute in DynamoDB")
	}
	ver, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return Entry{}, errors.New("archive: invalid version attribute in DynamoDB")
	}
	key, ok := item["report_key"].(*types.AttributeValueMemberS)
	if !ok {
		return Entry{}, errors.New("archive: invalid report_key attribute in DynamoDB")
	}

	version, err := strconv.ParseUint(ver.Value, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("archive: parse version: %w", err)
	}
	return Entry{Experiment: exp.Value, Version: version, Key: key.Value}, nil
}
