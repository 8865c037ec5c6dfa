package expect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/wI2L/jsondiff"

	"github.com/snapp-incubator/fetchmock/mock"
)

var printer = newPrinter()

func newPrinter() *pp.PrettyPrinter {
	p := pp.New()
	p.SetColoringEnabled(false)
	return p
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return printer.Sprint(v)
	}
	return string(b)
}

// bodyDiff renders the JSON patch turning expected into received.
func bodyDiff(expected, received any) string {
	patch, err := jsondiff.Compare(expected, received)
	if err != nil {
		return fmt.Sprintf("unable to compute the diff: %v", err)
	}

	var sb strings.Builder
	for _, op := range patch {
		switch op.Type {
		case jsondiff.OperationAdd:
			sb.WriteString(color.GreenString("+ %s: %s", op.Path, compact(op.Value)))
		case jsondiff.OperationRemove:
			sb.WriteString(color.RedString("- %s: %s", op.Path, compact(op.OldValue)))
		default:
			sb.WriteString(color.YellowString("~ %s: %s -> %s", op.Path, compact(op.OldValue), compact(op.Value)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func compact(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func listRequests(reqs []mock.MissingResponse) string {
	var sb strings.Builder
	for _, r := range reqs {
		fmt.Fprintf(&sb, "  %s %s", r.Method, r.URL)
		if r.Body != nil {
			fmt.Fprintf(&sb, " %s", compact(r.Body))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func listDescriptors(descs []mock.Descriptor) string {
	var sb strings.Builder
	for _, d := range descs {
		sb.WriteString(printer.Sprint(d))
		sb.WriteString("\n")
	}
	return sb.String()
}

// descriptorKey is the order-insensitive identity used to compare declared and used descriptors.
func descriptorKey(d mock.Descriptor) string {
	d.Method = d.NormalizedMethod()

	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprintf("%#v", d)
	}
	return string(b)
}
