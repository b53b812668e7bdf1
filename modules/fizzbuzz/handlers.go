package fizzbuzz

import (
	"fmt"
	"io"
	"strconv"
)

// Handler answers for the numbers it recognizes.
type Handler interface {
	Handle(n int) (string, bool)
}

// Divisor handles multiples of Divisor.
type Divisor struct {
	Divisor int
	Message string
}

// Handle implements Handler.
func (d *Divisor) Handle(n int) (string, bool) {
	if n%d.Divisor == 0 {
		return d.Message, true
	}
	return "", false
}

// Echo handles every number by printing it.
type Echo struct{}

// Handle implements Handler.
func (Echo) Handle(n int) (string, bool) {
	return strconv.Itoa(n), true
}

// Output collects dispatched results.
type Output struct {
	w      io.Writer
	values []string
}

// NewOutput returns an Output that also writes each result to w when w is
// not nil.
func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

// Append records v.
func (o *Output) Append(v string) {
	o.values = append(o.values, v)
	if o.w != nil {
		fmt.Fprintln(o.w, v)
	}
}

// Values returns the recorded results in order.
func (o *Output) Values() []string {
	return append([]string(nil), o.values...)
}
