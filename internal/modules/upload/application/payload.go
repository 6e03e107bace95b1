package application

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/saransh1220/limbgen/internal/modules/upload/domain"
)

// NewJSONPayload serializes meta as the metadata part
func NewJSONPayload(file io.Reader, fileName string, meta any) (domain.Payload, error) {
	data, err := json.Marshal(meta)
	if err != nil {
		return domain.Payload{}, &domain.EncodeError{Field: domain.FieldMetadata, Err: err}
	}
	return domain.Payload{
		File:         file,
		FileName:     fileName,
		Metadata:     bytes.NewReader(data),
		MetadataName: domain.DefaultMetadataName,
	}, nil
}
