package tracker

type (
	// Field is a single value of a ticker record as delivered by the API.
	// A nil Value means the field was null.
	Field struct {
		Name  string
		Value *string
	}

	RawRecord []Field

	Record map[string]string

	RecordIndex map[string]Record
)

// Normalize replaces every absent value with NotFound.
func (r RawRecord) Normalize() Record {
	record := make(Record, len(r))

	for _, f := range r {
		if f.Value == nil {
			record[f.Name] = NotFound
			continue
		}

		record[f.Name] = *f.Value
	}

	return record
}

func (r RawRecord) Has(name string) bool {
	for _, f := range r {
		if f.Name == name {
			return true
		}
	}

	return false
}

func (i RecordIndex) Get(symbol string) (Record, error) {
	record, ok := i[symbol]

	if !ok {
		return nil, NewError(LookupError, "unable to get "+symbol+" value", nil)
	}

	return record, nil
}
