package checkers

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	storage "github.com/localassist/leads-api/pkg/storage/dynamo"
)

// DynamoChecker verifies the store is reachable by describing a table.
type DynamoChecker struct {
	client storage.API
	table  string
}

func NewDynamoChecker(client storage.API, table string) *DynamoChecker {
	return &DynamoChecker{client: client, table: table}
}

func (c *DynamoChecker) Name() string { return "dynamodb" }

func (c *DynamoChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	_, err := c.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(c.table),
	})
	return err
}
