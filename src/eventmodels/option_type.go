package eventmodels

import (
	"fmt"
	"strings"
)

type OptionType string

// ParseOptionType accepts the spellings used by the different brokers ("put", "PUT", "P").
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "put", "p":
		return Put, nil
	case "call", "c":
		return Call, nil
	}

	return "", fmt.Errorf("ParseOptionType: invalid option type: %s", s)
}

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)
