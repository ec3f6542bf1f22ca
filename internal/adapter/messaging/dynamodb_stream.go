package messaging

import (
	"github.com/aws/aws-lambda-go/events"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

const (
	attrID      = "id"
	attrSortKey = "SK"
	attrName    = "name"
	attrVersion = "version"
)

// FromDynamoDBEvent converts a DynamoDB Streams delivery into a mutation batch,
// keeping record order. REMOVE maps to DELETE.
func FromDynamoDBEvent(event events.DynamoDBEvent) domain.MutationBatch {
	batch := domain.MutationBatch{Events: make([]domain.MutationEvent, 0, len(event.Records))}
	for _, rec := range event.Records {
		batch.Events = append(batch.Events, domain.MutationEvent{
			Kind:       eventKind(rec.EventName),
			Key:        domain.RecordKey{ID: stringAttr(rec.Change.Keys, attrID), SortKey: stringAttr(rec.Change.Keys, attrSortKey)},
			NewImage:   imageRecord(rec.Change.NewImage),
			OldImage:   imageRecord(rec.Change.OldImage),
			SequenceID: rec.Change.SequenceNumber,
		})
	}
	return batch
}

func eventKind(name string) domain.EventKind {
	switch name {
	case "INSERT":
		return domain.EventInsert
	case "MODIFY":
		return domain.EventModify
	case "REMOVE":
		return domain.EventDelete
	default:
		return domain.EventKind(name)
	}
}

func imageRecord(image map[string]events.DynamoDBAttributeValue) *domain.SoftwareRecord {
	if len(image) == 0 {
		return nil
	}
	return &domain.SoftwareRecord{
		ID:      stringAttr(image, attrID),
		SortKey: stringAttr(image, attrSortKey),
		Name:    stringAttr(image, attrName),
		Version: stringAttr(image, attrVersion),
	}
}

func stringAttr(image map[string]events.DynamoDBAttributeValue, name string) string {
	v, ok := image[name]
	if !ok || v.DataType() != events.DataTypeString {
		return ""
	}
	return v.String()
}
