package entity

// FieldValue is a single extracted header datum. Invariants: Present is true
// exactly when Value is non-nil, and Confidence is 0 whenever Present is
// false.
type FieldValue struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
	Present    bool    `json:"present"`
}

// FieldSet maps field names to extracted values for one document. Built once
// per run and immutable thereafter.
type FieldSet map[string]FieldValue

// PresentField builds a FieldValue for a successfully extracted value.
func PresentField(value string, confidence float64) FieldValue {
	return FieldValue{Value: &value, Confidence: confidence, Present: true}
}

// AbsentField builds the canonical absent FieldValue.
func AbsentField() FieldValue {
	return FieldValue{Value: nil, Confidence: 0.0, Present: false}
}

// Get returns the value for name, or the absent field when the set has no
// entry for it.
func (fs FieldSet) Get(name string) FieldValue {
	if fv, ok := fs[name]; ok {
		return fv
	}
	return AbsentField()
}
