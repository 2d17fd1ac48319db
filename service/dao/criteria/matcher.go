package criteria

import (
	"github.com/viant/idprovider/service/dao"
)

// Match reports whether value satisfies every parameter named field.
// Parameters with other names are ignored.
func Match(field, value string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != field {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if value != actual {
				return false
			}
		case []string:
			if !contains(actual, value) {
				return false
			}
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
