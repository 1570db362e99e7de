package consent

import (
	"bytes"
	"encoding/json"
)

// Submission is what the visitor chose. Necessary cookies are not a choice.
type Submission struct {
	Functional  bool
	Analytics   bool
	Marketing   bool
	Preferences json.RawMessage
}

// ParseSubmission never fails: a field that is missing, of the wrong type or
// unparseable is treated as not given. An unreadable body yields the zero
// Submission.
func ParseSubmission(body []byte) Submission {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Submission{}
	}
	return Submission{
		Functional:  boolField(raw, "functional"),
		Analytics:   boolField(raw, "analytics"),
		Marketing:   boolField(raw, "marketing"),
		Preferences: objectField(raw, "preferences"),
	}
}

func boolField(raw map[string]json.RawMessage, key string) bool {
	v, ok := raw[key]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return false
	}
	return b
}

func objectField(raw map[string]json.RawMessage, key string) json.RawMessage {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err != nil || obj == nil {
		return nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, v); err != nil {
		return nil
	}
	return compact.Bytes()
}
