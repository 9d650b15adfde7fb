package types

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxAuthorizers is the most signatories a document can carry. Extra
// entries are truncated, never rejected.
const MaxAuthorizers = 3

// Authorizer is a named signatory with a role/title, rendered as a
// signature block on generated documents. It is owned by the statement or
// invoice that embeds it and never persisted on its own.
type Authorizer struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (a Authorizer) IsZero() bool {
	return strings.TrimSpace(a.Name) == "" && strings.TrimSpace(a.Role) == ""
}

// Authorizers is stored as a JSONB column.
type Authorizers []Authorizer

// Truncated drops empty entries and caps the list at MaxAuthorizers.
func (as Authorizers) Truncated() Authorizers {
	out := make(Authorizers, 0, len(as))
	for _, a := range as {
		if a.IsZero() {
			continue
		}
		out = append(out, a)
		if len(out) == MaxAuthorizers {
			break
		}
	}
	return out
}

func (as Authorizers) Value() (driver.Value, error) {
	if as == nil {
		as = Authorizers{}
	}
	return json.Marshal(as)
}

func (as *Authorizers) Scan(src interface{}) error {
	if src == nil {
		*as = Authorizers{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return errors.Newf("unsupported authorizers column type %T", src)
	}
	return json.Unmarshal(b, as)
}
