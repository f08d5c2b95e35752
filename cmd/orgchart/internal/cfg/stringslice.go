package cfg

import (
	"flag"
	"strings"
)

const stringSliceSep = ","

// StringSlice is a comma separated list flag.
type StringSlice []string

var _ flag.Value = new(StringSlice)

func (ss *StringSlice) Set(s string) error {
	var parts []string
	for p := range strings.SplitSeq(s, stringSliceSep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	*ss = parts
	return nil
}

func (ss *StringSlice) String() string {
	if ss == nil {
		return ""
	}
	return strings.Join(*ss, stringSliceSep)
}
