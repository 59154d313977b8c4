package go_maplegw

import "strings"

// Ocid is the opaque character identifier issued by the upstream for a character name.
type Ocid string

func (id Ocid) String() string {
	return string(id)
}

func (id Ocid) Valid() bool {
	return len(strings.TrimSpace(string(id))) > 0
}
