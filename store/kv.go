package store

import (
	json "github.com/goccy/go-json"
)

// Key-value backends keep each collection as one named entry holding a JSON array.
const keyPrefix = "venturelink_"

func storageKey(coll Collection) string {
	return keyPrefix + string(coll)
}

func encodeRecords(records []any) ([]byte, error) {
	if records == nil {
		records = []any{}
	}
	return json.Marshal(records)
}

func decodeRecords(data []byte, out any) error {
	return json.Unmarshal(data, out)
}
