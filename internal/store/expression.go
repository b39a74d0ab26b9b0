package store

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UpdateBuilder assembles a DynamoDB SET expression from the fields a
// caller actually supplied. Build always appends the updated_at touch, so
// an update with zero optional fields still advances the timestamp.
type UpdateBuilder struct {
	clauses []string
	names   map[string]string
	values  map[string]types.AttributeValue
	err     error
}

func NewUpdateBuilder() *UpdateBuilder {
	return &UpdateBuilder{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}
}

// Set adds one field to the update. Attribute names are always aliased so
// reserved words like "name" never reach the expression verbatim.
func (b *UpdateBuilder) Set(field string, value any) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	av, err := attributevalue.Marshal(value)
	if err != nil {
		b.err = fmt.Errorf("marshal %s: %w", field, err)
		return b
	}
	n := fmt.Sprintf("#f%d", len(b.clauses))
	v := fmt.Sprintf(":v%d", len(b.clauses))
	b.names[n] = field
	b.values[v] = av
	b.clauses = append(b.clauses, n+" = "+v)
	return b
}

// Build finalizes the expression with the mandatory updated_at clause.
func (b *UpdateBuilder) Build(updatedAt string) (string, map[string]string, map[string]types.AttributeValue, error) {
	b.Set("updated_at", updatedAt)
	if b.err != nil {
		return "", nil, nil, b.err
	}
	return "SET " + strings.Join(b.clauses, ", "), b.names, b.values, nil
}
