package domain

import "encoding/json"

// itemDetailFields has the fields of ItemDetail without its methods.
type itemDetailFields ItemDetail

// UnmarshalJSON decodes the typed view and keeps the raw object.
func (d *ItemDetail) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var fields itemDetailFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*d = ItemDetail(fields)
	d.raw = raw
	return nil
}

// MarshalJSON writes the upstream object back as received. Records built
// in code encode their typed fields.
func (d ItemDetail) MarshalJSON() ([]byte, error) {
	obj, err := d.object()
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

// object returns a fresh copy of the record as a JSON object.
func (d ItemDetail) object() (map[string]json.RawMessage, error) {
	if d.raw != nil {
		obj := make(map[string]json.RawMessage, len(d.raw)+4)
		for k, v := range d.raw {
			obj[k] = v
		}
		return obj, nil
	}

	data, err := json.Marshal(itemDetailFields(d))
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// enrichment is the part of EnrichedItem added on top of the record.
type enrichment struct {
	CreatorName    string  `json:"creator_name"`
	CreatorProfile *string `json:"creator_profile"`
	ChangeNotes    *string `json:"change_notes,omitempty"`
	Rating         Rating  `json:"rating"`
}

// MarshalJSON overlays the enrichment fields on the upstream record.
// Absent change notes remove any upstream change_notes field.
func (e EnrichedItem) MarshalJSON() ([]byte, error) {
	obj, err := e.ItemDetail.object()
	if err != nil {
		return nil, err
	}

	overlay := map[string]interface{}{
		"creator_name":    e.CreatorName,
		"creator_profile": e.CreatorProfile,
		"rating":          e.Rating,
	}
	if e.ChangeNotes != nil {
		overlay["change_notes"] = *e.ChangeNotes
	} else {
		delete(obj, "change_notes")
	}

	for k, v := range overlay {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		obj[k] = data
	}
	return json.Marshal(obj)
}

// UnmarshalJSON splits an encoded item back into record and enrichment.
func (e *EnrichedItem) UnmarshalJSON(data []byte) error {
	var d ItemDetail
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	var extra enrichment
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}

	*e = EnrichedItem{
		ItemDetail:     d,
		CreatorName:    extra.CreatorName,
		CreatorProfile: extra.CreatorProfile,
		ChangeNotes:    extra.ChangeNotes,
		Rating:         extra.Rating,
	}
	return nil
}
