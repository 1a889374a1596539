// Package settings shows and changes which reflection fields are displayed.
package settings

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

type Settings struct {
	Store *store.Settings
	// Set holds field=bool assignments. Empty only prints.
	Set   []string
	Reset bool
	JSON  bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *Settings) Do(_ context.Context) error {
	fs := n.Store.Load()
	if n.Reset {
		fs = entry.DefaultFieldSettings()
	}
	for _, kv := range n.Set {
		key, on, err := parseAssignment(kv)
		if err != nil {
			return err
		}
		fs[key] = on
	}
	if n.Reset || len(n.Set) > 0 {
		if err := n.Store.Save(fs); err != nil {
			return err
		}
	}

	if n.JSON {
		return printers.JSON(n.Out, fs)
	}
	n.Printer.Title("Fields")
	n.Printer.Settings(fs)
	return nil
}

func parseAssignment(kv string) (entry.FieldKey, bool, error) {
	name, value, ok := strings.Cut(kv, "=")
	if !ok {
		return "", false, fmt.Errorf("%q: expected field=true|false", kv)
	}
	key, known := entry.ParseFieldKey(strings.TrimSpace(name))
	if !known {
		return "", false, fmt.Errorf("%q is not a field", name)
	}
	on, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return "", false, fmt.Errorf("%q: expected true or false", value)
	}
	return key, on, nil
}
