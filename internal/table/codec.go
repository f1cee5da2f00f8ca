package table

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	apperrors "studio-backend/pkg/errors"
)

// Codec between record structs and the wire-level attribute representation.
// Decoding tolerates missing optional attributes: absent fields come back as
// their zero values. Encoding guarantees the reference-list invariant by
// substituting the sentinel for empty lists before marshalling.

// MarshalRecord encodes a record into wire attributes.
func MarshalRecord(record any) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, apperrors.NewInternal("failed to marshal record", err)
	}
	return item, nil
}

// UnmarshalRecord decodes wire attributes into the given record type.
func UnmarshalRecord[T any](item map[string]types.AttributeValue) (T, error) {
	var record T
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return record, apperrors.NewInternal("failed to unmarshal record", err)
	}
	return record, nil
}

// UnmarshalRecords decodes a list of wire items into records of one kind.
func UnmarshalRecords[T any](items []map[string]types.AttributeValue) ([]T, error) {
	records := make([]T, 0, len(items))
	for _, item := range items {
		record, err := UnmarshalRecord[T](item)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// MarshalVideo encodes a video, normalising its reference lists to the
// sentinel form first.
func MarshalVideo(video Video) (map[string]types.AttributeValue, error) {
	if len(Refs(video.TagIDs)) == 0 {
		video.TagIDs = Sentinel()
	}
	if len(Refs(video.LearningPathIDs)) == 0 {
		video.LearningPathIDs = Sentinel()
	}
	return MarshalRecord(video)
}

// StringSet encodes a reference list as a wire string set, preserving the
// sentinel form for empty lists.
func StringSet(list []string) types.AttributeValue {
	if len(list) == 0 {
		list = Sentinel()
	}
	return &types.AttributeValueMemberSS{Value: list}
}

// MarshalKey encodes a key into its wire form.
func MarshalKey(key Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: key.PK},
		"SK": &types.AttributeValueMemberS{Value: key.SK},
	}
}
