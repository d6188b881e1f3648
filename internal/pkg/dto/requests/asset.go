package requests

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// StagedFile is a file picked in the editor that has not reached the asset host yet.
type StagedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// ByteArray encodes as a JSON array of byte values, the shape the asset host's
// Buffer.from expects, instead of the base64 string []byte would produce.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 2+len(b)*4)
	out = append(out, '[')
	for i, v := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	return append(out, ']'), nil
}

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	out := make(ByteArray, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte value %d out of range at index %d", v, i)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

type UploadAsset struct {
	Buffer   ByteArray `json:"buffer"`
	Filename string    `json:"filename"`
}

type DeleteAssets struct {
	URLs []string `json:"urls"`
}
