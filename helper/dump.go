package helper

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
)

// Output where Dump writes, stdout unless replaced
var Output io.Writer = os.Stdout

// Dump prints the given values, errors in red, scalars in cyan, strings in
// green and everything else as indented JSON
func Dump(values ...interface{}) {
	for _, v := range values {
		if err, ok := v.(error); ok {
			fmt.Fprintln(Output, color.RedString(err.Error()))
			continue
		}

		switch value := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			fmt.Fprintln(Output, color.CyanString("%v", value))
			continue

		case string:
			fmt.Fprintln(Output, color.GreenString(value))
			continue

		case []byte:
			fmt.Fprintln(Output, color.GreenString(string(value)))
			continue
		}

		txt, err := jsoniter.MarshalIndent(v, "", "    ")
		if err != nil {
			fmt.Fprintln(Output, color.RedString(err.Error()))
			continue
		}
		fmt.Fprintln(Output, color.WhiteString(string(txt)))
	}
}
