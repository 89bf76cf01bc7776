// Package content turns raw CMS records into the flat entities pages render.
package content

// Record is a CMS record in one of the two shapes Strapi returns.
type Record interface {
	ID() int
	DocumentID() string
	Fields() Fields
	isRecord()
}

// FlatRecord carries its fields at the top level (Strapi v5).
type FlatRecord struct {
	id         int
	documentID string
	fields     Fields
}

func (r FlatRecord) ID() int            { return r.id }
func (r FlatRecord) DocumentID() string { return r.documentID }
func (r FlatRecord) Fields() Fields     { return r.fields }
func (FlatRecord) isRecord()            {}

// NestedRecord wraps its fields as {id, attributes: {...}} (Strapi v4).
type NestedRecord struct {
	id         int
	documentID string
	attributes Fields
}

func (r NestedRecord) ID() int            { return r.id }
func (r NestedRecord) DocumentID() string { return r.documentID }
func (r NestedRecord) Fields() Fields     { return r.attributes }
func (NestedRecord) isRecord()            {}

// ParseRecord classifies a decoded JSON value. Anything that is not an object
// is rejected.
func ParseRecord(v any) (Record, bool) {
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, false
	}
	top := Fields(obj)
	id, _ := top.Int("id")
	docID := top.String("documentId")

	if attrs, ok := obj["attributes"].(map[string]any); ok {
		attrFields := Fields(attrs)
		if docID == "" {
			docID = attrFields.String("documentId")
		}
		return NestedRecord{id: id, documentID: docID, attributes: attrFields}, true
	}
	return FlatRecord{id: id, documentID: docID, fields: top}, true
}

// Relation unwraps a to-one relation: {data: record}, a bare record, or the
// first element of a list.
func Relation(v any) (Record, bool) {
	records := Relations(v)
	if len(records) == 0 {
		return nil, false
	}
	return records[0], true
}

// Relations unwraps a to-many relation: {data: [...]}, a bare list, or a
// single record. Elements that are not records are skipped.
func Relations(v any) []Record {
	v = unwrapData(v, 0)
	switch t := v.(type) {
	case []any:
		out := make([]Record, 0, len(t))
		for _, item := range t {
			if rec, ok := ParseRecord(item); ok {
				out = append(out, rec)
			}
		}
		return out
	case map[string]any:
		if rec, ok := ParseRecord(t); ok {
			return []Record{rec}
		}
	}
	return nil
}

// unwrapData strips {data: ...} wrappers that carry nothing else.
func unwrapData(v any, depth int) any {
	if depth > maxDepth {
		return nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	data, has := obj["data"]
	if !has || isRecordLike(obj) {
		return v
	}
	return unwrapData(data, depth+1)
}

// isRecordLike reports whether an object is itself a record rather than a
// {data} wrapper.
func isRecordLike(obj map[string]any) bool {
	if _, ok := obj["id"]; ok {
		return true
	}
	_, ok := obj["attributes"]
	return ok
}
