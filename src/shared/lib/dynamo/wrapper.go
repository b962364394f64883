package dynamolib

import (
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/guregu/dynamo"
)

var encoder = dynamodbattribute.NewEncoder(func(e *dynamodbattribute.Encoder) {
	e.MarshalOptions.EnableEmptyCollections = true
	e.NullEmptyString = false
	e.NullEmptyByteSlice = false
})

type putMap map[string]any

func (p putMap) MarshalDynamo() (*dynamodb.AttributeValue, error) {
	var fields map[string]any = p
	return encoder.Encode(fields)
}

func NewDynamoDBWrapper(db *dynamo.DB) DynamoDBWrapper {
	return DynamoDBWrapper{DB: db}
}

type DynamoDBWrapper struct {
	*dynamo.DB
}

type DynamoTableWrapper struct {
	dynamo.Table
}

type DynamoUpdateWrapper struct {
	*dynamo.Update
}

func (d DynamoDBWrapper) Table(tableName string) DynamoTableWrapper {
	return DynamoTableWrapper{
		Table: d.DB.Table(tableName),
	}
}

// Put keeps empty strings and collections instead of dropping them
func (d DynamoTableWrapper) Put(input map[string]any) *dynamo.Put {
	return d.Table.Put(putMap(input))
}

func (d DynamoTableWrapper) Update(hashKey string, value any) DynamoUpdateWrapper {
	return DynamoUpdateWrapper{
		Update: d.Table.Update(hashKey, value),
	}
}

func (d DynamoUpdateWrapper) SetFields(values map[string]any) DynamoUpdateWrapper {
	update := d.Update
	for path, value := range values {
		update = update.Set(path, value)
	}

	return DynamoUpdateWrapper{
		Update: update,
	}
}
