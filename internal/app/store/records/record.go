package recordstore

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is one content document: an identity plus the flat field values
// declared by its collection's definition. Attachment URLs live in the
// "photo" / "media" fields like any other value.
type Record struct {
	ID        primitive.ObjectID
	Fields    map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarshalJSON flattens the record so clients see the same shape the admin
// console posts: {"id": "...", "<field>": "...", ..., "created_at": ...}.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+3)
	for name, v := range r.Fields {
		out[name] = v
	}
	out["id"] = r.ID.Hex()
	if !r.CreatedAt.IsZero() {
		out["created_at"] = r.CreatedAt.Format(time.RFC3339)
	}
	if !r.UpdatedAt.IsZero() {
		out["updated_at"] = r.UpdatedAt.Format(time.RFC3339)
	}
	return json.Marshal(out)
}
