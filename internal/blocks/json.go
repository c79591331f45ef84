package blocks

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeContent decodes stored content for blockType into its variant.
// Unlike MergeContent it does not apply defaults, so stored blocks round-trip unchanged.
func DecodeContent(blockType BlockType, data json.RawMessage) (Content, error) {
	trimmed := bytes.TrimSpace(data)
	desc, known := builtin.Get(blockType)
	if !known {
		raw := RawContent{}
		if len(trimmed) == 0 || isNull(trimmed) {
			return raw, nil
		}
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", blockType, err)
		}
		return raw, nil
	}

	content := desc.Empty()
	if len(trimmed) == 0 || isNull(trimmed) {
		return content, nil
	}
	if err := json.Unmarshal(trimmed, content); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", blockType, err)
	}
	return content, nil
}

type pageBlockJSON PageBlock

func (b *PageBlock) UnmarshalJSON(data []byte) error {
	aux := struct {
		*pageBlockJSON
		Content json.RawMessage `json:"content"`
	}{pageBlockJSON: (*pageBlockJSON)(b)}

	b.Settings = DefaultSettings()
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	content, err := DecodeContent(b.Type, aux.Content)
	if err != nil {
		return err
	}
	b.Content = content
	return nil
}

func (b PageBlock) MarshalJSON() ([]byte, error) {
	if b.Content == nil {
		b.Content = DefaultContent(b.Type)
	}
	return json.Marshal(pageBlockJSON(b))
}

type rawBlockJSON RawBlock

func (b *RawBlock) UnmarshalJSON(data []byte) error {
	aux := struct {
		*rawBlockJSON
		Content json.RawMessage `json:"content"`
	}{rawBlockJSON: (*rawBlockJSON)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	content, err := DecodeContent(b.Type, aux.Content)
	if err != nil {
		return err
	}
	b.Content = content
	return nil
}

// PageBlocks is a block list stored as a JSON column.
type PageBlocks []PageBlock

func (pb *PageBlocks) Scan(value interface{}) error {
	if value == nil {
		*pb = PageBlocks{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to scan PageBlocks")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		*pb = PageBlocks{}
		return nil
	}
	return json.Unmarshal(data, (*[]PageBlock)(pb))
}

func (pb PageBlocks) Value() (driver.Value, error) {
	if pb == nil {
		return "[]", nil
	}
	encoded, err := json.Marshal([]PageBlock(pb))
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}
