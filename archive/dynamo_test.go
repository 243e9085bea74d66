package archive

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/knntune/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDDBClient is an in-memory DynamoDB mock for testing.
type mockDDBClient struct {
	mu    sync.RWMutex
	items map[string]map[string]types.AttributeValue
	err   error
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func itemVersion(item map[string]types.AttributeValue) uint64 {
	v, _ := strconv.ParseUint(item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
	return v
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	exp := params.Item["experiment"].(*types.AttributeValueMemberS).Value
	key := fmt.Sprintf("%s:%d", exp, itemVersion(params.Item))

	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}

	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}

	exp := params.ExpressionAttributeValues[":exp"].(*types.AttributeValueMemberS).Value

	var items []map[string]types.AttributeValue
	for _, item := range m.items {
		if item["experiment"].(*types.AttributeValueMemberS).Value == exp {
			items = append(items, item)
		}
	}

	desc := params.ScanIndexForward != nil && !*params.ScanIndexForward
	sort.Slice(items, func(i, j int) bool {
		if desc {
			return itemVersion(items[i]) > itemVersion(items[j])
		}
		return itemVersion(items[i]) < itemVersion(items[j])
	})

	if params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}

	return &dynamodb.QueryOutput{Items: items}, nil
}

func TestDynamoRegistry_Commits(t *testing.T) {
	ctx := context.Background()
	reg := NewDynamoRegistry(newMockDDBClient(), "knntune-runs")

	_, err := reg.Latest(ctx, "iris")
	assert.ErrorIs(t, err, ErrNoRuns)

	for v := uint64(1); v <= 11; v++ {
		require.NoError(t, reg.Commit(ctx, Entry{Experiment: "iris", Version: v, Key: fmt.Sprintf("iris/run-%02d.report", v)}))
	}

	latest, err := reg.Latest(ctx, "iris")
	require.NoError(t, err)
	assert.Equal(t, Entry{Experiment: "iris", Version: 11, Key: "iris/run-11.report"}, latest)

	history, err := reg.History(ctx, "iris", 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []uint64{11, 10, 9}, []uint64{history[0].Version, history[1].Version, history[2].Version})
}

func TestDynamoRegistry_ConcurrentModification(t *testing.T) {
	ctx := context.Background()
	reg := NewDynamoRegistry(newMockDDBClient(), "knntune-runs")

	require.NoError(t, reg.Commit(ctx, Entry{Experiment: "iris", Version: 1, Key: "a"}))
	err := reg.Commit(ctx, Entry{Experiment: "iris", Version: 1, Key: "b"})
	assert.ErrorIs(t, err, ErrConcurrentModification)

	latest, err := reg.Latest(ctx, "iris")
	require.NoError(t, err)
	assert.Equal(t, "a", latest.Key)
}

func TestDynamoRegistry_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	reg := NewDynamoRegistry(newMockDDBClient(), "knntune-runs")
	arc := New(blobstore.NewMemoryStore(), WithRegistry(reg), WithMaxRetries(20))

	var wg sync.WaitGroup
	for range 8 {
		r := newReport(t, "iris")
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := arc.Save(ctx, r)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := reg.History(ctx, "iris", 0)
	require.NoError(t, err)
	require.Len(t, history, 8)
	for i, e := range history {
		assert.Equal(t, uint64(8-i), e.Version)
	}
}

func TestDynamoRegistry_ClientError(t *testing.T) {
	ddb := newMockDDBClient()
	ddb.err = errors.New("throttled")
	reg := NewDynamoRegistry(ddb, "knntune-runs")

	_, err := reg.Latest(context.Background(), "iris")
	assert.ErrorIs(t, err, ddb.err)

	err = reg.Commit(context.Background(), Entry{Experiment: "iris", Version: 1})
	assert.ErrorIs(t, err, ddb.err)
	assert.NotErrorIs(t, err, ErrConcurrentModification)
}
