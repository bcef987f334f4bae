package http

import (
	"net/http"
	"sort"

	"github.com/republichq/republic/pkg/httpx"
	"github.com/republichq/republic/pkg/republicsdk"
)

func invalidRequest(w http.ResponseWriter, description string) {
	httpx.WriteError(w, http.StatusBadRequest, republicsdk.CodeInvalidRequest, description)
}

// firstMissing returns the alphabetically first empty field name, or "".
func firstMissing(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name, v := range fields {
		if v == "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}
