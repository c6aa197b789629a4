package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/localassist/leads-api/pkg/auth"
	storage "github.com/localassist/leads-api/pkg/storage/dynamo"
)

// EmailIndex is the users table GSI keyed by email.
const EmailIndex = "email-index"

// UserRepository implements auth.UserRepository backed by DynamoDB.
// The table is keyed by id; email lookups go through [EmailIndex].
type UserRepository struct {
	client storage.API
	table  string
}

func NewUserRepository(client storage.API, table string) *UserRepository {
	return &UserRepository{client: client, table: table}
}

type userItem struct {
	ID           string `dynamodbav:"id"`
	Email        string `dynamodbav:"email"`
	BusinessName string `dynamodbav:"business_name"`
	BusinessID   string `dynamodbav:"business_id"`
	PasswordHash string `dynamodbav:"hashed_password"`
	IsActive     bool   `dynamodbav:"is_active"`
	CreatedAt    string `dynamodbav:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	item, err := attributevalue.MarshalMap(userItem{
		ID:           user.ID,
		Email:        user.Email,
		BusinessName: user.BusinessName,
		BusinessID:   user.BusinessID,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		CreatedAt:    formatTime(user.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("write user to table %s: %w", r.table, err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	output, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &r.table,
		IndexName:              aws.String(EmailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
			":email": &dynamodbtypes.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return auth.User{}, fmt.Errorf("query table %s by email: %w", r.table, err)
	}
	if len(output.Items) == 0 {
		return auth.User{}, auth.ErrNotFound
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(output.Items[0], &item); err != nil {
		return auth.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	return toUser(item)
}

func toUser(item userItem) (auth.User, error) {
	createdAt, err := parseTime(item.CreatedAt)
	if err != nil {
		return auth.User{}, err
	}
	return auth.User{
		ID:           item.ID,
		Email:        item.Email,
		BusinessName: item.BusinessName,
		BusinessID:   item.BusinessID,
		PasswordHash: item.PasswordHash,
		IsActive:     item.IsActive,
		CreatedAt:    createdAt,
	}, nil
}
