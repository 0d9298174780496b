package identity

import (
	"encoding/json"
	"strings"
)

// Identifiers carries the lookup keys a client may present. At most one of
// them needs to be set; resolution tries all that are.
type Identifiers struct {
	EliteID string
	ShareID string
	Email   string
}

// Alias columns per canonical field. Legacy imports wrote the same value
// under different column names, so lookups have to fan out over all of them.
var (
	EliteIDColumns = []string{"elite_id", "eliteid"}
	ShareIDColumns = []string{"share_id", "shareid", "student_id"}
	EmailColumns   = []string{"email", "email_address"}
)

// jsonKeyAliases maps accepted request-body keys to the canonical field.
// Keys are matched lowercased, so camelCase variants collapse naturally.
var jsonKeyAliases = map[string]string{
	"eliteid":       "eliteId",
	"elite_id":      "eliteId",
	"shareid":       "shareId",
	"share_id":      "shareId",
	"student_id":    "shareId",
	"studentid":     "shareId",
	"email":         "email",
	"email_address": "email",
	"emailaddress":  "email",
}

// UnmarshalJSON coalesces every accepted key variant into the canonical
// field. When a payload carries several variants of the same field,
// later keys win.
func (id *Identifiers) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		canonical, ok := jsonKeyAliases[strings.ToLower(key)]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			continue
		}
		switch canonical {
		case "eliteId":
			id.EliteID = s
		case "shareId":
			id.ShareID = s
		case "email":
			id.Email = s
		}
	}
	return nil
}

// Normalize trims whitespace on every identifier and lowercases the email.
func (id Identifiers) Normalize() Identifiers {
	return Identifiers{
		EliteID: strings.TrimSpace(id.EliteID),
		ShareID: strings.TrimSpace(id.ShareID),
		Email:   strings.ToLower(strings.TrimSpace(id.Email)),
	}
}

// Empty reports whether no identifier was provided at all.
func (id Identifiers) Empty() bool {
	return id.EliteID == "" && id.ShareID == "" && id.Email == ""
}

// Clause is a SQL fragment plus its bind arguments, ready for gorm's Where.
type Clause struct {
	SQL  string
	Args []interface{}
}

// ExactClause builds a disjunction matching each provided identifier
// against every alias column exactly. Returns a zero clause when no
// identifier is set.
func ExactClause(id Identifiers) Clause {
	var parts []string
	var args []interface{}
	appendCols := func(cols []string, val string) {
		if val == "" {
			return
		}
		for _, col := range cols {
			parts = append(parts, col+" = ?")
			args = append(args, val)
		}
	}
	appendCols(EliteIDColumns, id.EliteID)
	appendCols(ShareIDColumns, id.ShareID)
	appendCols(EmailColumns, id.Email)
	return Clause{SQL: strings.Join(parts, " OR "), Args: args}
}

// FoldedClause is the fallback lookup: case-insensitive whole-value match
// over the same columns. Used only when the exact pass finds nothing, so
// records stored with odd casing still resolve.
func FoldedClause(id Identifiers) Clause {
	var parts []string
	var args []interface{}
	appendCols := func(cols []string, val string) {
		if val == "" {
			return
		}
		for _, col := range cols {
			parts = append(parts, "LOWER("+col+") = ?")
			args = append(args, strings.ToLower(val))
		}
	}
	appendCols(EliteIDColumns, id.EliteID)
	appendCols(ShareIDColumns, id.ShareID)
	appendCols(EmailColumns, id.Email)
	return Clause{SQL: strings.Join(parts, " OR "), Args: args}
}
