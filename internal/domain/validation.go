package domain

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

func requireFields(fields map[string]string) error {
	missing := make([]string, 0, len(fields))
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperrors.NewValidationError(
		fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		map[string]any{"fields": missing},
	)
}

func invalidField(name, reason string) error {
	return apperrors.NewValidationError(
		fmt.Sprintf("invalid %s", name),
		map[string]any{"field": name, "reason": reason},
	)
}
