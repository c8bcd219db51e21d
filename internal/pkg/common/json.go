package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ParseJSONBytes 解析 JSON 位元組切片到結構體，拒絕文件後的多餘資料
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v)
}

func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return err
		}
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}
