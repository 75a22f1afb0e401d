package cli

import (
	"github.com/AndreyAkinshin/hypogen/internal/schema"
)

func cmdSchema(args []string) int {
	if len(args) > 1 {
		return usageError("usage: hypogen schema [experiment|manifest]")
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	data, err := schema.Raw(name)
	if err != nil {
		return usageError("%v", err)
	}
	out.Raw(string(data))
	return 0
}
