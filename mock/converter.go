package mock

import "github.com/fwojciec/casescout"

var _ casescout.Converter = (*Converter)(nil)

// Converter is a mock implementation of casescout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
