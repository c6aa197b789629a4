package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/localassist/leads-api/pkg/lead"
	storage "github.com/localassist/leads-api/pkg/storage/dynamo"
)

// BusinessCreatedIndex is the leads table GSI keyed by
// (business_id, created_at); it backs the tenant-scoped listing.
const BusinessCreatedIndex = "business_id-created_at-index"

// reservedWords are attribute names that collide with DynamoDB's
// expression grammar and must be referenced through an
// ExpressionAttributeNames alias.
var reservedWords = map[string]struct{}{
	"status":    {},
	"name":      {},
	"data":      {},
	"timestamp": {},
}

// LeadRepository implements lead.Repository backed by DynamoDB. The
// table uses the compound key (id, business_id), so every point
// operation is tenant-scoped by construction.
type LeadRepository struct {
	client storage.API
	table  string
	now    func() time.Time
}

func NewLeadRepository(client storage.API, table string) *LeadRepository {
	return &LeadRepository{client: client, table: table, now: time.Now}
}

type leadItem struct {
	ID         string `dynamodbav:"id"`
	BusinessID string `dynamodbav:"business_id"`
	FirstName  string `dynamodbav:"first_name"`
	LastName   string `dynamodbav:"last_name"`
	Email      string `dynamodbav:"email"`
	Phone      string `dynamodbav:"phone"`
	Company    string `dynamodbav:"company"`
	Message    string `dynamodbav:"message"`
	Source     string `dynamodbav:"source"`
	Status     string `dynamodbav:"status"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

func (r *LeadRepository) Create(ctx context.Context, l lead.Lead) error {
	item, err := attributevalue.MarshalMap(fromLead(l))
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("write lead to table %s: %w", r.table, err)
	}
	return nil
}

func (r *LeadRepository) Get(ctx context.Context, id, businessID string) (lead.Lead, error) {
	output, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key:       leadKey(id, businessID),
	})
	if err != nil {
		return lead.Lead{}, fmt.Errorf("get lead from table %s: %w", r.table, err)
	}
	if len(output.Item) == 0 {
		return lead.Lead{}, lead.ErrNotFound
	}
	return unmarshalLead(output.Item)
}

func (r *LeadRepository) List(ctx context.Context, businessID string, status lead.Status, limit int) ([]lead.Lead, error) {
	input := &dynamodb.QueryInput{
		TableName:              &r.table,
		IndexName:              aws.String(BusinessCreatedIndex),
		KeyConditionExpression: aws.String("business_id = :business_id"),
		ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
			":business_id": &dynamodbtypes.AttributeValueMemberS{Value: businessID},
		},
		Limit:            aws.Int32(int32(limit)),
		ScanIndexForward: aws.Bool(false), // most recent first
	}
	if status != "" {
		// "status" is a reserved word in the expression grammar.
		input.FilterExpression = aws.String("#status = :status")
		input.ExpressionAttributeNames = map[string]string{"#status": "status"}
		input.ExpressionAttributeValues[":status"] = &dynamodbtypes.AttributeValueMemberS{Value: string(status)}
	}

	output, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query leads for business %s: %w", businessID, err)
	}

	leads := make([]lead.Lead, 0, len(output.Items))
	for _, item := range output.Items {
		l, err := unmarshalLead(item)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, nil
}

func (r *LeadRepository) Update(ctx context.Context, id, businessID string, patch lead.Patch) (lead.Lead, error) {
	parts := []string{"updated_at = :updated_at"}
	values := map[string]dynamodbtypes.AttributeValue{
		":updated_at": &dynamodbtypes.AttributeValueMemberS{Value: formatTime(r.now())},
	}
	names := map[string]string{}

	appendAssignment := func(field, value string) {
		if _, reserved := reservedWords[field]; reserved {
			names["#"+field] = field
			parts = append(parts, fmt.Sprintf("#%s = :%s", field, field))
		} else {
			parts = append(parts, fmt.Sprintf("%s = :%s", field, field))
		}
		values[":"+field] = &dynamodbtypes.AttributeValueMemberS{Value: value}
	}

	if patch.Status != nil {
		appendAssignment("status", string(*patch.Status))
	}
	if patch.Message != nil {
		appendAssignment("message", *patch.Message)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:        &r.table,
		Key:              leadKey(id, businessID),
		UpdateExpression: aws.String("SET " + strings.Join(parts, ", ")),
		// Without the condition an update on a missing key would create
		// a phantom item instead of failing.
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: values,
		ReturnValues:              dynamodbtypes.ReturnValueAllNew,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	output, err := r.client.UpdateItem(ctx, input)
	if err != nil {
		var conditionFailed *dynamodbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return lead.Lead{}, lead.ErrNotFound
		}
		return lead.Lead{}, fmt.Errorf("update lead in table %s: %w", r.table, err)
	}
	return unmarshalLead(output.Attributes)
}

func (r *LeadRepository) Delete(ctx context.Context, id, businessID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key:       leadKey(id, businessID),
	})
	if err != nil {
		return fmt.Errorf("delete lead from table %s: %w", r.table, err)
	}
	return nil
}

func leadKey(id, businessID string) map[string]dynamodbtypes.AttributeValue {
	return map[string]dynamodbtypes.AttributeValue{
		"id":          &dynamodbtypes.AttributeValueMemberS{Value: id},
		"business_id": &dynamodbtypes.AttributeValueMemberS{Value: businessID},
	}
}

func fromLead(l lead.Lead) leadItem {
	return leadItem{
		ID:         l.ID,
		BusinessID: l.BusinessID,
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		Email:      l.Email,
		Phone:      l.Phone,
		Company:    l.Company,
		Message:    l.Message,
		Source:     string(l.Source),
		Status:     string(l.Status),
		CreatedAt:  formatTime(l.CreatedAt),
		UpdatedAt:  formatTime(l.UpdatedAt),
	}
}

func unmarshalLead(attrs map[string]dynamodbtypes.AttributeValue) (lead.Lead, error) {
	var item leadItem
	if err := attributevalue.UnmarshalMap(attrs, &item); err != nil {
		return lead.Lead{}, fmt.Errorf("unmarshal lead: %w", err)
	}
	createdAt, err := parseTime(item.CreatedAt)
	if err != nil {
		return lead.Lead{}, err
	}
	updatedAt, err := parseTime(item.UpdatedAt)
	if err != nil {
		return lead.Lead{}, err
	}
	return lead.Lead{
		ID:         item.ID,
		BusinessID: item.BusinessID,
		FirstName:  item.FirstName,
		LastName:   item.LastName,
		Email:      item.Email,
		Phone:      item.Phone,
		Company:    item.Company,
		Message:    item.Message,
		Source:     lead.Source(item.Source),
		Status:     lead.Status(item.Status),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}
