package videos

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type Status string

const (
	Processing Status = "PROCESSING"
	Published  Status = "PUBLISHED"
	Deleted    Status = "DELETED"
)

// Qualities is the ordered list of rendition labels ("720p", ...) a video
// was published with. Stored as JSON text in sqlite.
type Qualities []string

func (q Qualities) Value() (driver.Value, error) {
	if q == nil {
		q = Qualities{}
	}
	data, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (q *Qualities) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*q = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), q)
	case []byte:
		return json.Unmarshal(v, q)
	}
	return fmt.Errorf("cannot scan %T into Qualities", src)
}

func (q Qualities) Contains(label string) bool {
	for _, have := range q {
		if have == label {
			return true
		}
	}
	return false
}

type Video struct {
	gorm.Model
	Title       string
	Description string
	AuthorID    string
	VideoURL    string // directory holding the renditions
	Duration    int    // seconds
	FileSize    int64  // source size in bytes
	Resolution  string // source "WxH"
	Status      Status
	Qualities   Qualities `gorm:"type:text"`
}
