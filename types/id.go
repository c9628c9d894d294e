package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID 平台主键，JSON 中可能是数字也可能是字符串
type ID uint64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		b = []byte(s)
	}
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", string(b))
	}
	*id = ID(v)
	return nil
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
